package models

import "time"

// ERPSessionRowID is the fixed primary key of the single ERP session row.
// The admin connect flow only ever replaces the session, never accumulates.
const ERPSessionRowID = 1

// ERPSession stores the external catalog connection established by the admin
// panel. Absence of the row means "not connected".
type ERPSession struct {
	ID        int       `gorm:"column:id;primaryKey"`
	URL       string    `gorm:"column:url;not null"`
	Database  string    `gorm:"column:database;not null"`
	Username  string    `gorm:"column:username;not null"`
	APIKey    string    `gorm:"column:api_key;not null"`
	UserID    int64     `gorm:"column:user_id;not null"`
	CompanyID int64     `gorm:"column:company_id;not null;default:1"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table name for GORM.
func (ERPSession) TableName() string {
	return "erp_sessions"
}
