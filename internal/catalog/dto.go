package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/boticaviva/backend/pkg/enums"
)

// Product is the storefront view of one catalog item. ERP rows and the
// bundled fallback list both project into this shape.
type Product struct {
	ID           string                        `json:"id"`
	Name         string                        `json:"name"`
	Brand        string                        `json:"brand,omitempty"`
	Description  string                        `json:"description,omitempty"`
	Price        decimal.Decimal               `json:"price"`
	OldPrice     *decimal.Decimal              `json:"old_price,omitempty"`
	Category     enums.ProductCategory         `json:"category"`
	Prescription enums.PrescriptionRequirement `json:"prescription"`
	Stock        int                           `json:"stock"`
	ImageURL     string                        `json:"image_url,omitempty"`
	Published    bool                          `json:"published"`
	ExternalID   int64                         `json:"external_id,omitempty"`
}

// Filter narrows a catalog listing. Both clauses are ANDed; zero values
// match everything.
type Filter struct {
	Query    string
	Category enums.ProductCategory
}
