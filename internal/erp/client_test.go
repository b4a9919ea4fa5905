package erp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type rpcCall struct {
	Params struct {
		Service string `json:"service"`
		Method  string `json:"method"`
		Args    []any  `json:"args"`
	} `json:"params"`
}

func rpcServer(t *testing.T, handler func(call rpcCall) any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/jsonrpc" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var call rpcCall
		if err := json.NewDecoder(r.Body).Decode(&call); err != nil {
			t.Fatalf("decoding rpc call: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"result":  handler(call),
		})
	}))
}

func TestConnectReturnsSessionWithUID(t *testing.T) {
	server := rpcServer(t, func(call rpcCall) any {
		if call.Params.Service != "common" || call.Params.Method != "authenticate" {
			t.Fatalf("unexpected rpc %s.%s", call.Params.Service, call.Params.Method)
		}
		return 7
	})
	defer server.Close()

	client := NewClient()
	session, err := client.Connect(context.Background(), server.URL, "botica", "admin@example.com", "key")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if session.UID != 7 {
		t.Fatalf("expected uid 7, got %d", session.UID)
	}
	if session.Database != "botica" {
		t.Fatalf("expected database to carry over, got %q", session.Database)
	}
}

func TestConnectRejectedCredentials(t *testing.T) {
	// authenticate answers false instead of a uid on bad credentials
	server := rpcServer(t, func(rpcCall) any { return false })
	defer server.Close()

	client := NewClient()
	if _, err := client.Connect(context.Background(), server.URL, "botica", "admin@example.com", "bad"); err != ErrAuthFailed {
		t.Fatalf("expected ErrAuthFailed, got %v", err)
	}
}

func TestExecuteRequiresSession(t *testing.T) {
	client := NewClient()
	if _, err := client.Execute(context.Background(), Session{}, "product.template", "search_read", nil, nil); err != ErrNotConnected {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
}

func TestFetchProductsMapsRecords(t *testing.T) {
	server := rpcServer(t, func(call rpcCall) any {
		if call.Params.Service != "object" || call.Params.Method != "execute_kw" {
			t.Fatalf("unexpected rpc %s.%s", call.Params.Service, call.Params.Method)
		}
		return []map[string]any{
			{
				"id":               3,
				"name":             "Paracetamol 500mg",
				"list_price":       12.5,
				"standard_price":   15.0,
				"categ_id":         []any{9, "Analgesics"},
				"qty_available":    24,
				"description_sale": "Box of 20 tablets",
			},
		}
	})
	defer server.Close()

	client := NewClient()
	session := Session{URL: server.URL, Database: "botica", APIKey: "key", UID: 7}

	products, err := client.FetchProducts(context.Background(), session)
	if err != nil {
		t.Fatalf("fetch products: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected one product, got %d", len(products))
	}

	product := products[0]
	if product.ID != 3 || product.Name != "Paracetamol 500mg" {
		t.Fatalf("unexpected product %+v", product)
	}
	if product.Price.String() != "12.5" {
		t.Fatalf("expected price 12.5, got %s", product.Price)
	}
	if product.CategoryID != "9" {
		t.Fatalf("expected category id 9, got %q", product.CategoryID)
	}
	if product.Stock != 24 {
		t.Fatalf("expected stock 24, got %d", product.Stock)
	}
}

func TestCreateSaleOrderReturnsID(t *testing.T) {
	server := rpcServer(t, func(call rpcCall) any { return 41 })
	defer server.Close()

	client := NewClient()
	session := Session{URL: server.URL, Database: "botica", APIKey: "key", UID: 7}

	id, err := client.CreateSaleOrder(context.Background(), session, SaleOrderInput{
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
		Reference:     "S0012345",
	})
	if err != nil {
		t.Fatalf("create sale order: %v", err)
	}
	if id != 41 {
		t.Fatalf("expected id 41, got %d", id)
	}
}

func TestServerErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"error": map[string]any{
				"code":    200,
				"message": "Odoo Server Error",
				"data":    map[string]any{"message": "access denied"},
			},
		})
	}))
	defer server.Close()

	client := NewClient()
	session := Session{URL: server.URL, Database: "botica", APIKey: "key", UID: 7}
	if _, err := client.FetchProducts(context.Background(), session); err == nil {
		t.Fatal("expected server error to surface")
	}
}
