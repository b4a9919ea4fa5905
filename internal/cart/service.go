package cart

import (
	"context"
	"fmt"

	"github.com/boticaviva/backend/internal/catalog"
	pkgerrors "github.com/boticaviva/backend/pkg/errors"
)

// ProductFinder resolves a catalog item for stock checks and line snapshots.
type ProductFinder interface {
	FindProduct(ctx context.Context, productID string) (catalog.Product, error)
}

// Service is the session cart. All mutations load, transform and save the
// full line set; totals are derived on read and never stored.
type Service interface {
	Get(ctx context.Context, sessionID string) (Cart, error)
	AddItem(ctx context.Context, sessionID, productID string, quantity int) (Cart, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (Cart, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	store    Store
	products ProductFinder
}

// NewService wires the cart service.
func NewService(store Store, products ProductFinder) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store is required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder is required")
	}
	return &service{store: store, products: products}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (Cart, error) {
	lines, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}
	return buildCart(lines), nil
}

func (s *service) AddItem(ctx context.Context, sessionID, productID string, quantity int) (Cart, error) {
	if quantity <= 0 {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive").
			WithDetails(map[string]int{"quantity": quantity})
	}

	product, err := s.products.FindProduct(ctx, productID)
	if err != nil {
		return Cart{}, err
	}

	lines, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}

	idx := indexOf(lines, productID)
	requested := quantity
	if idx >= 0 {
		requested += lines[idx].Quantity
	}
	if requested > product.Stock {
		return Cart{}, pkgerrors.New(pkgerrors.CodeConflict, "not enough stock").
			WithDetails(map[string]int{"requested": requested, "available": product.Stock})
	}

	if idx >= 0 {
		lines[idx].Quantity = requested
	} else {
		lines = append(lines, Line{
			ProductID:    product.ID,
			Name:         product.Name,
			Brand:        product.Brand,
			UnitPrice:    product.Price,
			OldPrice:     product.OldPrice,
			Category:     product.Category,
			Prescription: product.Prescription,
			Quantity:     quantity,
		})
	}

	if err := s.store.Save(ctx, sessionID, lines); err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving cart")
	}
	return buildCart(lines), nil
}

// UpdateQuantity sets a line's quantity outright. Zero or negative removes
// the line, same as RemoveItem.
func (s *service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionID, productID)
	}

	lines, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}

	idx := indexOf(lines, productID)
	if idx < 0 {
		return Cart{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart").
			WithDetails(map[string]string{"product_id": productID})
	}

	product, err := s.products.FindProduct(ctx, productID)
	if err == nil && quantity > product.Stock {
		return Cart{}, pkgerrors.New(pkgerrors.CodeConflict, "not enough stock").
			WithDetails(map[string]int{"requested": quantity, "available": product.Stock})
	}

	lines[idx].Quantity = quantity
	if err := s.store.Save(ctx, sessionID, lines); err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving cart")
	}
	return buildCart(lines), nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID, productID string) (Cart, error) {
	lines, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}

	kept := lines[:0]
	for _, line := range lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}

	if len(kept) == 0 {
		if err := s.store.Delete(ctx, sessionID); err != nil {
			return Cart{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart")
		}
		return buildCart(nil), nil
	}

	if err := s.store.Save(ctx, sessionID, kept); err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving cart")
	}
	return buildCart(kept), nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart")
	}
	return nil
}

func indexOf(lines []Line, productID string) int {
	for i, line := range lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
