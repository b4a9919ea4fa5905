package models

import "time"

// PublishedProduct is one entry in the storefront allow-list: an external
// product identifier that is visible on the shop pages.
type PublishedProduct struct {
	ProductID string    `gorm:"column:product_id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName pins the table name for GORM.
func (PublishedProduct) TableName() string {
	return "published_products"
}
