package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/boticaviva/backend/pkg/enums"
)

func price(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func oldPrice(value string) *decimal.Decimal {
	parsed := decimal.RequireFromString(value)
	return &parsed
}

// fallbackProducts is the bundled catalog served whenever the external
// catalog is unreachable or not connected. IDs are stable strings so carts
// and publish flags survive a switch between fallback and live data.
var fallbackProducts = []Product{
	{
		ID:           "bv-001",
		Name:         "Paracetamol 500mg x 20 tabletas",
		Brand:        "Genfar",
		Description:  "Analgésico y antipirético de uso general.",
		Price:        price("12.50"),
		Category:     enums.ProductCategoryMedicines,
		Prescription: enums.PrescriptionNotRequired,
		Stock:        120,
	},
	{
		ID:           "bv-002",
		Name:         "Ibuprofeno 400mg x 10 cápsulas",
		Brand:        "Portugal",
		Description:  "Antiinflamatorio no esteroideo.",
		Price:        price("8.90"),
		OldPrice:     oldPrice("10.50"),
		Category:     enums.ProductCategoryMedicines,
		Prescription: enums.PrescriptionOptional,
		Stock:        85,
	},
	{
		ID:           "bv-003",
		Name:         "Amoxicilina 500mg x 12 cápsulas",
		Brand:        "Farmindustria",
		Description:  "Antibiótico de amplio espectro. Venta con receta médica.",
		Price:        price("18.00"),
		Category:     enums.ProductCategoryMedicines,
		Prescription: enums.PrescriptionRequired,
		Stock:        40,
	},
	{
		ID:           "bv-004",
		Name:         "Vitamina C 1g x 10 tabletas efervescentes",
		Brand:        "Redoxon",
		Description:  "Refuerzo del sistema inmunológico.",
		Price:        price("15.90"),
		OldPrice:     oldPrice("19.90"),
		Category:     enums.ProductCategoryVitamins,
		Prescription: enums.PrescriptionNotRequired,
		Stock:        200,
	},
	{
		ID:           "bv-005",
		Name:         "Complejo B x 30 cápsulas",
		Brand:        "Hersil",
		Description:  "Suplemento vitamínico del complejo B.",
		Price:        price("22.00"),
		Category:     enums.ProductCategoryVitamins,
		Prescription: enums.PrescriptionNotRequired,
		Stock:        150,
	},
	{
		ID:           "bv-006",
		Name:         "Alcohol en gel 380ml",
		Brand:        "Aval",
		Description:  "Desinfectante de manos con 70% de alcohol.",
		Price:        price("9.50"),
		Category:     enums.ProductCategoryPersonalCare,
		Prescription: enums.PrescriptionNotRequired,
		Stock:        300,
	},
	{
		ID:           "bv-007",
		Name:         "Protector solar FPS 50+ 50ml",
		Brand:        "Eucerin",
		Description:  "Protección facial de amplio espectro.",
		Price:        price("68.90"),
		OldPrice:     oldPrice("79.90"),
		Category:     enums.ProductCategoryDermocosmetics,
		Prescription: enums.PrescriptionNotRequired,
		Stock:        60,
	},
	{
		ID:           "bv-008",
		Name:         "Pañales recién nacido x 20 unidades",
		Brand:        "Huggies",
		Description:  "Pañales suaves para recién nacidos hasta 4kg.",
		Price:        price("24.90"),
		Category:     enums.ProductCategoryMotherBaby,
		Prescription: enums.PrescriptionNotRequired,
		Stock:        90,
	},
	{
		ID:           "bv-009",
		Name:         "Tensiómetro digital de brazo",
		Brand:        "Omron",
		Description:  "Monitor de presión arterial automático.",
		Price:        price("189.00"),
		Category:     enums.ProductCategoryMedicalEquipment,
		Prescription: enums.PrescriptionNotRequired,
		Stock:        15,
	},
	{
		ID:           "bv-010",
		Name:         "Termómetro infrarrojo sin contacto",
		Brand:        "Citizen",
		Description:  "Lectura en un segundo, apto para bebés.",
		Price:        price("75.00"),
		OldPrice:     oldPrice("99.00"),
		Category:     enums.ProductCategoryMedicalEquipment,
		Prescription: enums.PrescriptionNotRequired,
		Stock:        25,
	},
	{
		ID:           "bv-011",
		Name:         "Té de manzanilla x 25 sobres",
		Brand:        "Herbi",
		Description:  "Infusión relajante natural.",
		Price:        price("6.50"),
		Category:     enums.ProductCategoryWellness,
		Prescription: enums.PrescriptionNotRequired,
		Stock:        180,
	},
	{
		ID:           "bv-012",
		Name:         "Shampoo anticaspa 375ml",
		Brand:        "H&S",
		Description:  "Control de caspa de uso diario.",
		Price:        price("21.90"),
		Category:     enums.ProductCategoryPersonalCare,
		Prescription: enums.PrescriptionNotRequired,
		Stock:        110,
	},
}

// FallbackProducts returns a copy of the bundled catalog.
func FallbackProducts() []Product {
	out := make([]Product, len(fallbackProducts))
	copy(out, fallbackProducts)
	return out
}
