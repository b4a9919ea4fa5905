package cart

import (
	"github.com/shopspring/decimal"

	"github.com/boticaviva/backend/pkg/enums"
)

// Line is one product entry in a session's cart. The product fields are
// snapshotted at add time so a catalog refresh does not reshape an open cart.
type Line struct {
	ProductID    string                        `json:"product_id"`
	Name         string                        `json:"name"`
	Brand        string                        `json:"brand,omitempty"`
	UnitPrice    decimal.Decimal               `json:"unit_price"`
	OldPrice     *decimal.Decimal              `json:"old_price,omitempty"`
	Category     enums.ProductCategory         `json:"category"`
	Prescription enums.PrescriptionRequirement `json:"prescription"`
	Quantity     int                           `json:"quantity"`
}

// Cart is the storefront view of a session's cart with derived totals.
type Cart struct {
	Lines      []Line          `json:"lines"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func buildCart(lines []Line) Cart {
	cart := Cart{Lines: lines, TotalPrice: decimal.Zero}
	if cart.Lines == nil {
		cart.Lines = []Line{}
	}
	for _, line := range lines {
		cart.TotalItems += line.Quantity
		cart.TotalPrice = cart.TotalPrice.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return cart
}
