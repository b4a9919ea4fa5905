package pickup

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/boticaviva/backend/pkg/db/models"
)

// Repo persists pickup locations.
type Repo interface {
	List(ctx context.Context) ([]models.PickupLocation, error)
	Find(ctx context.Context, id uuid.UUID) (models.PickupLocation, error)
	Create(ctx context.Context, row models.PickupLocation) error
	Update(ctx context.Context, row models.PickupLocation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormRepo struct {
	db *gorm.DB
}

// NewRepo builds the gorm-backed pickup location store.
func NewRepo(db *gorm.DB) Repo {
	return &gormRepo{db: db}
}

func (r *gormRepo) List(ctx context.Context) ([]models.PickupLocation, error) {
	var rows []models.PickupLocation
	err := r.db.WithContext(ctx).Order("name asc").Find(&rows).Error
	return rows, err
}

func (r *gormRepo) Find(ctx context.Context, id uuid.UUID) (models.PickupLocation, error) {
	var row models.PickupLocation
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	return row, err
}

func (r *gormRepo) Create(ctx context.Context, row models.PickupLocation) error {
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *gormRepo) Update(ctx context.Context, row models.PickupLocation) error {
	return r.db.WithContext(ctx).
		Model(&models.PickupLocation{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"name":    row.Name,
			"address": row.Address,
			"city":    row.City,
			"phone":   row.Phone,
		}).Error
}

func (r *gormRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.PickupLocation{}, "id = ?", id).Error
}
