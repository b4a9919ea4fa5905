package erp

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/boticaviva/backend/pkg/db/models"
)

// SessionRepo persists the single stored ERP session.
type SessionRepo interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, session Session) error
	Clear(ctx context.Context) error
}

type gormSessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo builds the gorm-backed session store.
func NewSessionRepo(db *gorm.DB) SessionRepo {
	return &gormSessionRepo{db: db}
}

func (r *gormSessionRepo) Load(ctx context.Context) (Session, error) {
	var row models.ERPSession
	err := r.db.WithContext(ctx).First(&row, "id = ?", models.ERPSessionRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Session{}, ErrNotConnected
	}
	if err != nil {
		return Session{}, err
	}
	if row.UserID == 0 {
		return Session{}, ErrNotConnected
	}
	return Session{
		URL:       row.URL,
		Database:  row.Database,
		Username:  row.Username,
		APIKey:    row.APIKey,
		UID:       row.UserID,
		CompanyID: row.CompanyID,
	}, nil
}

func (r *gormSessionRepo) Save(ctx context.Context, session Session) error {
	row := models.ERPSession{
		ID:        models.ERPSessionRowID,
		URL:       session.URL,
		Database:  session.Database,
		Username:  session.Username,
		APIKey:    session.APIKey,
		UserID:    session.UID,
		CompanyID: session.CompanyID,
	}
	if row.CompanyID == 0 {
		row.CompanyID = 1
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&row).Error
}

func (r *gormSessionRepo) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("id = ?", models.ERPSessionRowID).
		Delete(&models.ERPSession{}).Error
}
