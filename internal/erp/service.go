package erp

import (
	"context"
	"errors"
	"fmt"

	pkgerrors "github.com/boticaviva/backend/pkg/errors"
	"github.com/boticaviva/backend/pkg/logger"
)

// ConnectInput carries the admin-supplied connection parameters.
type ConnectInput struct {
	URL      string `json:"url" validate:"required,url"`
	Database string `json:"database" validate:"required"`
	Username string `json:"username" validate:"required"`
	APIKey   string `json:"api_key" validate:"required"`
}

// Status reports the stored connection without exposing the key.
type Status struct {
	Connected bool   `json:"connected"`
	URL       string `json:"url,omitempty"`
	Database  string `json:"database,omitempty"`
	Username  string `json:"username,omitempty"`
	UID       int64  `json:"uid,omitempty"`
}

// Service owns the stored ERP session and exposes the admin connection flow
// plus session-aware pass-throughs for the rest of the backend.
type Service interface {
	Connect(ctx context.Context, input ConnectInput) (Status, error)
	Disconnect(ctx context.Context) error
	Status(ctx context.Context) (Status, error)
	Execute(ctx context.Context, model, method string, domain []any, options map[string]any) ([]Record, error)
	FetchProducts(ctx context.Context) ([]ExternalProduct, error)
	FetchCategories(ctx context.Context) ([]ExternalCategory, error)
	CreateSaleOrder(ctx context.Context, input SaleOrderInput) (int64, error)
}

type service struct {
	adapter Adapter
	repo    SessionRepo
	log     *logger.Logger
}

// NewService wires the ERP service.
func NewService(adapter Adapter, repo SessionRepo, log *logger.Logger) (Service, error) {
	if adapter == nil {
		return nil, fmt.Errorf("erp adapter is required")
	}
	if repo == nil {
		return nil, fmt.Errorf("erp session repo is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{adapter: adapter, repo: repo, log: log}, nil
}

func (s *service) Connect(ctx context.Context, input ConnectInput) (Status, error) {
	session, err := s.adapter.Connect(ctx, input.URL, input.Database, input.Username, input.APIKey)
	if err != nil {
		if errors.Is(err, ErrAuthFailed) {
			return Status{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "erp rejected the credentials")
		}
		return Status{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "erp connect failed")
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return Status{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing erp session")
	}

	ctx = s.log.WithFields(ctx, map[string]any{
		"url": session.URL, "database": session.Database, "uid": session.UID,
	})
	s.log.Info(ctx, "erp session established")
	return statusFor(session), nil
}

func (s *service) Disconnect(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing erp session")
	}
	return nil
}

func (s *service) Status(ctx context.Context) (Status, error) {
	session, err := s.repo.Load(ctx)
	if errors.Is(err, ErrNotConnected) {
		return Status{Connected: false}, nil
	}
	if err != nil {
		return Status{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading erp session")
	}
	return statusFor(session), nil
}

func (s *service) Execute(ctx context.Context, model, method string, domain []any, options map[string]any) ([]Record, error) {
	session, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.adapter.Execute(ctx, session, model, method, domain, options)
}

func (s *service) FetchProducts(ctx context.Context) ([]ExternalProduct, error) {
	session, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.adapter.FetchProducts(ctx, session)
}

func (s *service) FetchCategories(ctx context.Context) ([]ExternalCategory, error) {
	session, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.adapter.FetchCategories(ctx, session)
}

func (s *service) CreateSaleOrder(ctx context.Context, input SaleOrderInput) (int64, error) {
	session, err := s.repo.Load(ctx)
	if err != nil {
		return 0, err
	}
	return s.adapter.CreateSaleOrder(ctx, session, input)
}

func statusFor(session Session) Status {
	return Status{
		Connected: true,
		URL:       session.URL,
		Database:  session.Database,
		Username:  session.Username,
		UID:       session.UID,
	}
}
