package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/boticaviva/backend/internal/cart"
)

type stubCart struct {
	lastProductID string
	lastQuantity  int
}

func (s *stubCart) Get(context.Context, string) (cart.Cart, error) {
	return cart.Cart{}, nil
}

func (s *stubCart) AddItem(_ context.Context, _ string, productID string, quantity int) (cart.Cart, error) {
	s.lastProductID = productID
	s.lastQuantity = quantity
	return cart.Cart{}, nil
}

func (s *stubCart) UpdateQuantity(_ context.Context, _ string, productID string, quantity int) (cart.Cart, error) {
	s.lastProductID = productID
	s.lastQuantity = quantity
	return cart.Cart{}, nil
}

func (s *stubCart) RemoveItem(_ context.Context, _ string, productID string) (cart.Cart, error) {
	s.lastProductID = productID
	return cart.Cart{}, nil
}

func (s *stubCart) Clear(context.Context, string) error {
	return nil
}

func TestAddCartItemDefaultsQuantityToOne(t *testing.T) {
	svc := &stubCart{}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"product_id":"bv-001"}`))
	AddCartItem(svc, nil)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.lastProductID != "bv-001" || svc.lastQuantity != 1 {
		t.Fatalf("expected add of bv-001 x1, got %q x%d", svc.lastProductID, svc.lastQuantity)
	}
}

func TestAddCartItemKeepsExplicitQuantity(t *testing.T) {
	svc := &stubCart{}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"product_id":"bv-001","quantity":3}`))
	AddCartItem(svc, nil)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.lastQuantity != 3 {
		t.Fatalf("expected quantity 3, got %d", svc.lastQuantity)
	}
}

func TestAddCartItemRejectsNegativeQuantity(t *testing.T) {
	svc := &stubCart{}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"product_id":"bv-001","quantity":-2}`))
	AddCartItem(svc, nil)(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if svc.lastProductID != "" {
		t.Fatal("service should not be called on invalid input")
	}
}