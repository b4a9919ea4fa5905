package orders

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/boticaviva/backend/pkg/db/models"
)

// Repo persists orders with their line and stage children.
type Repo interface {
	Create(ctx context.Context, order *models.Order) error
	Find(ctx context.Context, id uuid.UUID) (models.Order, error)
	FindByCode(ctx context.Context, code string) (models.Order, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]models.Order, error)
	CompleteStage(ctx context.Context, order *models.Order, position int) error
}

type gormRepo struct {
	db *gorm.DB
}

// NewRepo builds the gorm-backed order store.
func NewRepo(db *gorm.DB) Repo {
	return &gormRepo{db: db}
}

func (r *gormRepo) Create(ctx context.Context, order *models.Order) error {
	// one insert cascades into lines and stages through the associations
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *gormRepo) Find(ctx context.Context, id uuid.UUID) (models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Stages", func(tx *gorm.DB) *gorm.DB { return tx.Order("position asc") }).
		First(&order, "id = ?", id).Error
	return order, err
}

func (r *gormRepo) FindByCode(ctx context.Context, code string) (models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Stages", func(tx *gorm.DB) *gorm.DB { return tx.Order("position asc") }).
		First(&order, "upper(code) = ?", strings.ToUpper(code)).Error
	return order, err
}

func (r *gormRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var row models.Order
	err := r.db.WithContext(ctx).
		Select("id").
		First(&row, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *gormRepo) List(ctx context.Context) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Stages", func(tx *gorm.DB) *gorm.DB { return tx.Order("position asc") }).
		Order("created_at desc").
		Find(&rows).Error
	return rows, err
}

// CompleteStage flips one stage to completed and mirrors the order status, in
// a single transaction.
func (r *gormRepo) CompleteStage(ctx context.Context, order *models.Order, position int) error {
	var stage *models.OrderStage
	for i := range order.Stages {
		if order.Stages[i].Position == position {
			stage = &order.Stages[i]
			break
		}
	}
	if stage == nil {
		return errors.New("stage position out of range")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.OrderStage{}).
			Where("id = ?", stage.ID).
			Updates(map[string]any{
				"completed":    stage.Completed,
				"completed_at": stage.CompletedAt,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("status", order.Status).Error
	})
}
