package enums

import "fmt"

// ProductCategory represents the fixed set of storefront categories.
type ProductCategory string

const (
	ProductCategoryMedicines        ProductCategory = "medicines"
	ProductCategoryVitamins         ProductCategory = "vitamins"
	ProductCategoryPersonalCare     ProductCategory = "personal_care"
	ProductCategoryMotherBaby       ProductCategory = "mother_baby"
	ProductCategoryDermocosmetics   ProductCategory = "dermocosmetics"
	ProductCategoryMedicalEquipment ProductCategory = "medical_equipment"
	ProductCategoryWellness         ProductCategory = "wellness"
)

// DefaultProductCategory is assigned when an external category has no mapping.
const DefaultProductCategory = ProductCategoryMedicines

var validProductCategories = []ProductCategory{
	ProductCategoryMedicines,
	ProductCategoryVitamins,
	ProductCategoryPersonalCare,
	ProductCategoryMotherBaby,
	ProductCategoryDermocosmetics,
	ProductCategoryMedicalEquipment,
	ProductCategoryWellness,
}

// ProductCategories returns every known category in display order.
func ProductCategories() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
