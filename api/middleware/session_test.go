package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSessionMintsIDWhenAbsent(t *testing.T) {
	var got string
	handler := Session(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionID(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if got == "" {
		t.Fatal("expected a minted session id")
	}
	if w.Header().Get("X-Session-Id") != got {
		t.Fatalf("expected header echo %q, got %q", got, w.Header().Get("X-Session-Id"))
	}
}

func TestSessionCarriesExistingID(t *testing.T) {
	var got string
	handler := Session(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Session-Id", "shopper-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != "shopper-42" {
		t.Fatalf("expected carried id, got %q", got)
	}
}

func TestSessionRejectsOversizedID(t *testing.T) {
	var got string
	handler := Session(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionID(r.Context())
	}))

	long := make([]byte, 80)
	for i := range long {
		long[i] = 'a'
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Session-Id", string(long))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got == string(long) {
		t.Fatal("expected oversized id replaced")
	}
	if got == "" {
		t.Fatal("expected a minted session id")
	}
}
