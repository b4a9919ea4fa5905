package erp

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNotConnected is returned by the null adapter and whenever no session is
// stored. Callers degrade to the bundled catalog, never surface this to shoppers.
var ErrNotConnected = errors.New("erp: not connected")

// ErrAuthFailed signals rejected credentials during the connect flow.
var ErrAuthFailed = errors.New("erp: authentication failed")

// Session carries the connection parameters for the external catalog.
type Session struct {
	URL       string
	Database  string
	Username  string
	APIKey    string
	UID       int64
	CompanyID int64
}

// Record is one generic row returned by the ERP's execute call. It always
// contains at least an "id" key plus the requested fields.
type Record map[string]any

// ExternalProduct is a catalog row mapped out of the ERP's product model.
type ExternalProduct struct {
	ID          int64
	Name        string
	Brand       string
	Price       decimal.Decimal
	ListPrice   decimal.Decimal
	CategoryID  string
	Stock       int
	Description string
	ImageURL    string
}

// ExternalCategory is one node of the ERP's own taxonomy.
type ExternalCategory struct {
	ID   int64
	Name string
}

// SaleOrderInput is the write-through payload for a storefront order.
type SaleOrderInput struct {
	CustomerName  string
	CustomerEmail string
	Reference     string
	Lines         []SaleOrderLine
}

// SaleOrderLine is one product line of the sales order.
type SaleOrderLine struct {
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// Adapter is the capability surface the core composes against. Two
// implementations exist: the live JSON-RPC client and NullAdapter. Core code
// never branches on "is connected"; it calls and falls back on error.
type Adapter interface {
	Connect(ctx context.Context, url, database, username, apiKey string) (Session, error)
	Execute(ctx context.Context, session Session, model, method string, domain []any, options map[string]any) ([]Record, error)
	FetchProducts(ctx context.Context, session Session) ([]ExternalProduct, error)
	FetchCategories(ctx context.Context, session Session) ([]ExternalCategory, error)
	CreateSaleOrder(ctx context.Context, session Session, input SaleOrderInput) (int64, error)
}

// NullAdapter fails every call with ErrNotConnected. It stands in for the live
// client whenever the ERP is unreachable or unconfigured.
type NullAdapter struct{}

func (NullAdapter) Connect(context.Context, string, string, string, string) (Session, error) {
	return Session{}, ErrNotConnected
}

func (NullAdapter) Execute(context.Context, Session, string, string, []any, map[string]any) ([]Record, error) {
	return nil, ErrNotConnected
}

func (NullAdapter) FetchProducts(context.Context, Session) ([]ExternalProduct, error) {
	return nil, ErrNotConnected
}

func (NullAdapter) FetchCategories(context.Context, Session) ([]ExternalCategory, error) {
	return nil, ErrNotConnected
}

func (NullAdapter) CreateSaleOrder(context.Context, Session, SaleOrderInput) (int64, error) {
	return 0, ErrNotConnected
}
