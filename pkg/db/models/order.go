package models

import (
	"time"

	"github.com/boticaviva/backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a checkout result. The total is copied from the cart at creation
// time and never recomputed afterwards.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Code          string            `gorm:"column:code;uniqueIndex;not null"`
	CustomerName  string            `gorm:"column:customer_name;not null"`
	CustomerEmail string            `gorm:"column:customer_email;not null"`
	Address       string            `gorm:"column:address"`
	DeliveryMode  string            `gorm:"column:delivery_mode;not null;default:delivery"`
	Total         decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null"`
	Status        enums.OrderStatus `gorm:"column:status;not null"`
	Lines         []OrderLine       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Stages        []OrderStage      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table name for GORM.
func (Order) TableName() string {
	return "orders"
}

// OrderLine snapshots one cart line at purchase time.
type OrderLine struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID   string          `gorm:"column:product_id;not null"`
	ProductName string          `gorm:"column:product_name;not null"`
	Brand       string          `gorm:"column:brand"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// TableName pins the table name for GORM.
func (OrderLine) TableName() string {
	return "order_lines"
}

// OrderStage is one of the five fixed fulfillment milestones attached to every
// order. Position runs 0..4 in the fixed forward sequence; Completed only ever
// flips false to true.
type OrderStage struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	OrderID     uuid.UUID         `gorm:"column:order_id;type:uuid;not null;uniqueIndex:idx_order_stages_order_position"`
	Position    int               `gorm:"column:position;not null;uniqueIndex:idx_order_stages_order_position"`
	Status      enums.OrderStatus `gorm:"column:status;not null"`
	Title       string            `gorm:"column:title;not null"`
	Description string            `gorm:"column:description"`
	Completed   bool              `gorm:"column:completed;not null;default:false"`
	CompletedAt *time.Time        `gorm:"column:completed_at"`
}

// TableName pins the table name for GORM.
func (OrderStage) TableName() string {
	return "order_stages"
}
