package models

import (
	"time"

	"github.com/boticaviva/backend/pkg/types"
)

// SettingsRowID is the fixed primary key of the single settings row.
const SettingsRowID = 1

// StoreSettings is the single storefront configuration record. The currency
// triple (symbol, code, locale) must only ever change together through the
// country table.
type StoreSettings struct {
	ID              int                   `gorm:"column:id;primaryKey"`
	StoreName       string                `gorm:"column:store_name;not null"`
	LogoURL         string                `gorm:"column:logo_url"`
	SmallLogoURL    string                `gorm:"column:small_logo_url"`
	PrimaryColor    string                `gorm:"column:primary_color;not null;default:#0f766e"`
	FooterText      string                `gorm:"column:footer_text"`
	Country         string                `gorm:"column:country;not null"`
	CurrencySymbol  string                `gorm:"column:currency_symbol;not null"`
	CurrencyCode    string                `gorm:"column:currency_code;not null"`
	Locale          string                `gorm:"column:locale;not null"`
	AllowDelivery   bool                  `gorm:"column:allow_delivery;not null;default:true"`
	AllowPickup     bool                  `gorm:"column:allow_pickup;not null;default:true"`
	PromoActive     bool                  `gorm:"column:promo_active;not null;default:false"`
	PaymentChannels types.PaymentChannels `gorm:"column:payment_channels;type:jsonb"`
	PromoSlides     types.PromoSlides     `gorm:"column:promo_slides;type:jsonb"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table name for GORM.
func (StoreSettings) TableName() string {
	return "store_settings"
}
