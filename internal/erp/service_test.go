package erp

import (
	"context"
	"errors"
	"testing"

	pkgerrors "github.com/boticaviva/backend/pkg/errors"
	"github.com/boticaviva/backend/pkg/logger"
)

type memorySessionRepo struct {
	session *Session
}

func (r *memorySessionRepo) Load(context.Context) (Session, error) {
	if r.session == nil {
		return Session{}, ErrNotConnected
	}
	return *r.session, nil
}

func (r *memorySessionRepo) Save(_ context.Context, session Session) error {
	r.session = &session
	return nil
}

func (r *memorySessionRepo) Clear(context.Context) error {
	r.session = nil
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: discard{}})
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func newNullService(t *testing.T, repo SessionRepo) Service {
	t.Helper()
	svc, err := NewService(NullAdapter{}, repo, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestStatusWithoutStoredSession(t *testing.T) {
	svc := newNullService(t, &memorySessionRepo{})

	status, err := svc.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Connected {
		t.Fatal("expected disconnected status")
	}
}

func TestConnectThroughNullAdapterFails(t *testing.T) {
	repo := &memorySessionRepo{}
	svc := newNullService(t, repo)

	_, err := svc.Connect(context.Background(), ConnectInput{
		URL: "https://erp.example.com", Database: "bv", Username: "admin", APIKey: "key",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if repo.session != nil {
		t.Fatal("no session should be stored on a failed connect")
	}
}

func TestFetchProductsWithoutSession(t *testing.T) {
	svc := newNullService(t, &memorySessionRepo{})

	if _, err := svc.FetchProducts(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
}

func TestFetchProductsThroughNullAdapter(t *testing.T) {
	repo := &memorySessionRepo{session: &Session{URL: "https://erp.example.com", UID: 7}}
	svc := newNullService(t, repo)

	if _, err := svc.FetchProducts(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
}

func TestDisconnectClearsSession(t *testing.T) {
	repo := &memorySessionRepo{session: &Session{URL: "https://erp.example.com", UID: 7}}
	svc := newNullService(t, repo)

	if err := svc.Disconnect(context.Background()); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	status, err := svc.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Connected {
		t.Fatal("expected disconnected status after clear")
	}
}