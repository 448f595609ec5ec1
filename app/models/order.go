package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending  = "PENDING"
	OrderStatusApproved = "APPROVED"
	OrderStatusRejected = "REJECTED"
)

// Order is a dealer's submitted cart. Items and totals are frozen at placement
// time; only Status changes afterwards.
type Order struct {
	ID          string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	DealerID    string          `gorm:"size:36;index;not null" json:"dealer_id"`
	DealerName  string          `gorm:"size:100" json:"dealer_name"`
	DealerPhone string          `gorm:"size:20" json:"dealer_phone"`
	OrderDate   time.Time       `gorm:"not null;index" json:"order_date"`
	Status      string          `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total_price"`
	TotalLitres float64         `gorm:"not null;default:0" json:"total_litres"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// OrderItem is a cart line snapshot. Product name, size, capacity and price are
// denormalized at add-to-cart time so later catalog edits never rewrite history.
type OrderItem struct {
	ID             string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"-"`
	OrderID        string          `gorm:"size:36;index;not null" json:"-"`
	ProductID      string          `gorm:"size:36;not null" json:"product_id"`
	ProductName    string          `gorm:"size:255;not null" json:"product_name"`
	VariantSize    string          `gorm:"size:50;not null" json:"variant_size"`
	UnitsPerCarton int             `gorm:"not null;default:1" json:"units_per_carton"`
	CartonQuantity int             `gorm:"not null" json:"carton_quantity"`
	PriceAtOrder   decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price_at_order"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return
}
