package models

import (
	"time"

	"github.com/boticaviva/backend/pkg/enums"
)

// WebCategoryMap associates one external-catalog category with a site category.
// The external id is unique, so inserting a second mapping for the same key is
// an update, never a duplicate.
type WebCategoryMap struct {
	ExternalCategoryID string                `gorm:"column:external_category_id;primaryKey"`
	Category           enums.ProductCategory `gorm:"column:category;not null"`
	CreatedAt          time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table name for GORM.
func (WebCategoryMap) TableName() string {
	return "web_category_maps"
}
