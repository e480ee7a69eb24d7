package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucasmedina/viandas-backend/pkg/enums"
)

// Customer is CRM master data. Status, total_spent, orders_count and
// last_order_at are derived: the order-creation workflow maintains the
// counters incrementally and status is always recomputed from last_order_at.
type Customer struct {
	ID          uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName    string               `gorm:"column:full_name;not null" json:"full_name"`
	Phone       string               `gorm:"column:phone;not null;default:''" json:"phone"`
	Status      enums.CustomerStatus `gorm:"column:status;type:customer_status;not null;default:'inactive'" json:"status"`
	TotalSpent  decimal.Decimal      `gorm:"column:total_spent;type:numeric(12,2);not null;default:0" json:"total_spent"`
	OrdersCount int                  `gorm:"column:orders_count;not null;default:0" json:"orders_count"`
	Notes       *string              `gorm:"column:notes" json:"notes,omitempty"`
	LastOrderAt *time.Time           `gorm:"column:last_order_at;type:timestamptz" json:"last_order_at"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
