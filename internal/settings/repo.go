package settings

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/boticaviva/backend/pkg/db/models"
)

// Repo persists the single settings row.
type Repo interface {
	Load(ctx context.Context) (models.StoreSettings, error)
	Save(ctx context.Context, row models.StoreSettings) error
}

type gormRepo struct {
	db *gorm.DB
}

// NewRepo builds the gorm-backed settings store.
func NewRepo(db *gorm.DB) Repo {
	return &gormRepo{db: db}
}

func (r *gormRepo) Load(ctx context.Context) (models.StoreSettings, error) {
	var row models.StoreSettings
	err := r.db.WithContext(ctx).First(&row, "id = ?", models.SettingsRowID).Error
	return row, err
}

func (r *gormRepo) Save(ctx context.Context, row models.StoreSettings) error {
	row.ID = models.SettingsRowID
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&row).Error
}
