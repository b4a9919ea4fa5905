package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	jsonrpcPath            = "/jsonrpc"
	responseReadLimit      = 8 << 20
	defaultRequestTimeout  = 15 * time.Second
	productModel           = "product.template"
	categoryModel          = "product.category"
	saleOrderModel         = "sale.order"
	methodSearchRead       = "search_read"
	methodCreate           = "create"
)

// Client talks JSON-RPC to an Odoo-style ERP. It implements Adapter.
type Client struct {
	httpClient *http.Client
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient builds the live ERP client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      int64     `json:"id"`
}

type rpcParams struct {
	Service string `json:"service"`
	Method  string `json:"method"`
	Args    []any  `json:"args"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Message string `json:"message"`
	} `json:"data"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

func (c *Client) call(ctx context.Context, baseURL, service, method string, args []any) (json.RawMessage, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(baseURL), "/") + jsonrpcPath

	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  "call",
		Params:  rpcParams{Service: service, Method: method, Args: args},
		ID:      time.Now().UnixNano(),
	})
	if err != nil {
		return nil, fmt.Errorf("encoding rpc request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling erp: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseReadLimit))
	if err != nil {
		return nil, fmt.Errorf("reading erp response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("erp returned status %d", resp.StatusCode)
	}

	var parsed rpcResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding erp response: %w", err)
	}
	if parsed.Error != nil {
		msg := parsed.Error.Data.Message
		if msg == "" {
			msg = parsed.Error.Message
		}
		return nil, fmt.Errorf("erp error: %s", msg)
	}
	return parsed.Result, nil
}

// Connect authenticates against the ERP and returns a session with the
// resolved numeric user id.
func (c *Client) Connect(ctx context.Context, url, database, username, apiKey string) (Session, error) {
	result, err := c.call(ctx, url, "common", "authenticate", []any{database, username, apiKey, map[string]any{}})
	if err != nil {
		return Session{}, err
	}

	var uid int64
	// authenticate returns false (not an error) on bad credentials
	if err := json.Unmarshal(result, &uid); err != nil || uid == 0 {
		return Session{}, ErrAuthFailed
	}

	return Session{
		URL:      url,
		Database: database,
		Username: username,
		APIKey:   apiKey,
		UID:      uid,
	}, nil
}

// Execute performs a generic model call (search_read for reads, create for
// writes) and returns the resulting records.
func (c *Client) Execute(ctx context.Context, session Session, model, method string, domain []any, options map[string]any) ([]Record, error) {
	if session.UID == 0 {
		return nil, ErrNotConnected
	}
	if domain == nil {
		domain = []any{}
	}
	if options == nil {
		options = map[string]any{}
	}

	args := []any{
		session.Database, session.UID, session.APIKey,
		model, method, []any{domain}, options,
	}
	result, err := c.call(ctx, session.URL, "object", "execute_kw", args)
	if err != nil {
		return nil, err
	}

	var records []Record
	if err := json.Unmarshal(result, &records); err == nil {
		return records, nil
	}

	// create returns a bare id rather than a recordset
	var id int64
	if err := json.Unmarshal(result, &id); err != nil {
		return nil, fmt.Errorf("decoding erp records: %w", err)
	}
	return []Record{{"id": id}}, nil
}

// FetchProducts reads the sellable product list.
func (c *Client) FetchProducts(ctx context.Context, session Session) ([]ExternalProduct, error) {
	records, err := c.Execute(ctx, session, productModel, methodSearchRead,
		[]any{[]any{"sale_ok", "=", true}},
		map[string]any{"fields": []string{"name", "list_price", "standard_price", "categ_id", "qty_available", "description_sale"}},
	)
	if err != nil {
		return nil, err
	}

	products := make([]ExternalProduct, 0, len(records))
	for _, record := range records {
		products = append(products, mapProduct(record))
	}
	return products, nil
}

// FetchCategories reads the ERP's own category taxonomy.
func (c *Client) FetchCategories(ctx context.Context, session Session) ([]ExternalCategory, error) {
	records, err := c.Execute(ctx, session, categoryModel, methodSearchRead,
		nil,
		map[string]any{"fields": []string{"name"}},
	)
	if err != nil {
		return nil, err
	}

	categories := make([]ExternalCategory, 0, len(records))
	for _, record := range records {
		categories = append(categories, ExternalCategory{
			ID:   recordInt(record, "id"),
			Name: recordString(record, "name"),
		})
	}
	return categories, nil
}

// CreateSaleOrder writes a storefront order through to the ERP's sales system
// and returns the new order's id.
func (c *Client) CreateSaleOrder(ctx context.Context, session Session, input SaleOrderInput) (int64, error) {
	if session.UID == 0 {
		return 0, ErrNotConnected
	}

	lines := make([]any, 0, len(input.Lines))
	for _, line := range input.Lines {
		price, _ := line.UnitPrice.Float64()
		lines = append(lines, []any{0, 0, map[string]any{
			"product_id":      line.ProductID,
			"product_uom_qty": line.Quantity,
			"price_unit":      price,
		}})
	}

	values := map[string]any{
		"client_order_ref": input.Reference,
		"note":             fmt.Sprintf("storefront order for %s <%s>", input.CustomerName, input.CustomerEmail),
		"order_line":       lines,
	}

	// create takes its values positionally, unlike the read methods
	args := []any{
		session.Database, session.UID, session.APIKey,
		saleOrderModel, methodCreate, []any{values},
	}
	result, err := c.call(ctx, session.URL, "object", "execute_kw", args)
	if err != nil {
		return 0, err
	}

	var id int64
	if err := json.Unmarshal(result, &id); err != nil || id == 0 {
		return 0, fmt.Errorf("erp create returned no id")
	}
	return id, nil
}

func mapProduct(record Record) ExternalProduct {
	product := ExternalProduct{
		ID:          recordInt(record, "id"),
		Name:        recordString(record, "name"),
		Description: recordString(record, "description_sale"),
		Price:       recordDecimal(record, "list_price"),
		ListPrice:   recordDecimal(record, "standard_price"),
		Stock:       int(recordInt(record, "qty_available")),
	}

	// categ_id comes back as [id, display_name]
	if raw, ok := record["categ_id"].([]any); ok && len(raw) > 0 {
		if id, ok := raw[0].(float64); ok {
			product.CategoryID = strconv.FormatInt(int64(id), 10)
		}
	}
	return product
}

func recordString(record Record, key string) string {
	if value, ok := record[key].(string); ok {
		return value
	}
	return ""
}

func recordInt(record Record, key string) int64 {
	switch value := record[key].(type) {
	case float64:
		return int64(value)
	case int64:
		return value
	case json.Number:
		parsed, _ := value.Int64()
		return parsed
	default:
		return 0
	}
}

func recordDecimal(record Record, key string) decimal.Decimal {
	if value, ok := record[key].(float64); ok {
		return decimal.NewFromFloat(value)
	}
	return decimal.Zero
}
