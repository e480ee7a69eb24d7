package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucasmedina/viandas-backend/pkg/enums"
)

// Order is an append-mostly sales record. Total always equals subtotal plus
// delivery fee; customer_id is a soft reference that may be nil when staff
// typed a free-text name instead of linking a CRM customer.
type Order struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerName string          `gorm:"column:customer_name;not null" json:"customer_name"`
	Phone        string          `gorm:"column:phone;not null;default:''" json:"phone"`
	CustomerID   *uuid.UUID      `gorm:"column:customer_id;type:uuid" json:"customer_id,omitempty"`
	OrderType    enums.OrderType `gorm:"column:order_type;type:order_type;not null" json:"order_type"`
	OtherLabel   *string         `gorm:"column:other_label" json:"other_label,omitempty"`
	Delivery     bool            `gorm:"column:delivery;not null;default:false" json:"delivery"`
	Status       enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'pending'" json:"status"`
	Subtotal     decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null" json:"subtotal"`
	DeliveryFee  decimal.Decimal `gorm:"column:delivery_fee;type:numeric(12,2);not null;default:0" json:"delivery_fee"`
	Total        decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	Notes        string          `gorm:"column:notes;not null;default:''" json:"notes"`
	ItemCount    int             `gorm:"column:item_count;not null;default:0" json:"item_count"`
	OrderDate    time.Time       `gorm:"column:order_date;type:date;not null" json:"order_date"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	CreatedBy    uuid.UUID       `gorm:"column:created_by;type:uuid;not null" json:"created_by"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}
