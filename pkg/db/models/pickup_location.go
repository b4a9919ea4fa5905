package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PickupLocation is one physical branch where pickup orders can be collected.
type PickupLocation struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Name      string         `gorm:"column:name;not null"`
	Address   string         `gorm:"column:address;not null"`
	City      string         `gorm:"column:city;not null"`
	Phone     string         `gorm:"column:phone"`
	Schedule  pq.StringArray `gorm:"column:schedule;type:text[];not null;default:ARRAY[]::text[]"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table name for GORM.
func (PickupLocation) TableName() string {
	return "pickup_locations"
}
