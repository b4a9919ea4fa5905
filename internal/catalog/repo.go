package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/boticaviva/backend/pkg/db/models"
	"github.com/boticaviva/backend/pkg/enums"
)

// MappingRepo stores external-category to site-category associations.
type MappingRepo interface {
	Find(ctx context.Context, externalID string) (models.WebCategoryMap, error)
	Upsert(ctx context.Context, externalID string, category enums.ProductCategory) error
	List(ctx context.Context) ([]models.WebCategoryMap, error)
}

// PublishedRepo stores the storefront allow-list of external product ids.
type PublishedRepo interface {
	IsPublished(ctx context.Context, productID string) (bool, error)
	PublishedSet(ctx context.Context) (map[string]bool, error)
	Publish(ctx context.Context, productIDs []string) error
	Unpublish(ctx context.Context, productIDs []string) error
}

type gormMappingRepo struct {
	db *gorm.DB
}

// NewMappingRepo builds the gorm-backed mapping store.
func NewMappingRepo(db *gorm.DB) MappingRepo {
	return &gormMappingRepo{db: db}
}

func (r *gormMappingRepo) Find(ctx context.Context, externalID string) (models.WebCategoryMap, error) {
	var row models.WebCategoryMap
	err := r.db.WithContext(ctx).
		First(&row, "external_category_id = ?", externalID).Error
	return row, err
}

func (r *gormMappingRepo) Upsert(ctx context.Context, externalID string, category enums.ProductCategory) error {
	row := models.WebCategoryMap{
		ExternalCategoryID: externalID,
		Category:           category,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_category_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"category", "updated_at"}),
	}).Create(&row).Error
}

func (r *gormMappingRepo) List(ctx context.Context) ([]models.WebCategoryMap, error) {
	var rows []models.WebCategoryMap
	err := r.db.WithContext(ctx).
		Order("external_category_id asc").
		Find(&rows).Error
	return rows, err
}

type gormPublishedRepo struct {
	db *gorm.DB
}

// NewPublishedRepo builds the gorm-backed allow-list store.
func NewPublishedRepo(db *gorm.DB) PublishedRepo {
	return &gormPublishedRepo{db: db}
}

func (r *gormPublishedRepo) IsPublished(ctx context.Context, productID string) (bool, error) {
	var row models.PublishedProduct
	err := r.db.WithContext(ctx).First(&row, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *gormPublishedRepo) PublishedSet(ctx context.Context) (map[string]bool, error) {
	var rows []models.PublishedProduct
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(rows))
	for _, row := range rows {
		set[row.ProductID] = true
	}
	return set, nil
}

func (r *gormPublishedRepo) Publish(ctx context.Context, productIDs []string) error {
	if len(productIDs) == 0 {
		return nil
	}
	rows := make([]models.PublishedProduct, 0, len(productIDs))
	for _, id := range productIDs {
		rows = append(rows, models.PublishedProduct{ProductID: id})
	}
	// already-published ids are a no-op, not an error
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoNothing: true,
	}).Create(&rows).Error
}

func (r *gormPublishedRepo) Unpublish(ctx context.Context, productIDs []string) error {
	if len(productIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Delete(&models.PublishedProduct{}).Error
}
