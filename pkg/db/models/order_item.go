package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem is one meal line inside an order. The meal reference is soft: the
// meal may be deleted later and aggregation simply skips unresolved lines.
type OrderItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;not null" json:"order_id"`
	MealID    uuid.UUID `gorm:"column:meal_id;type:uuid;not null" json:"meal_id"`
	Qty       int       `gorm:"column:qty;not null;default:1" json:"qty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Meal *Meal `gorm:"foreignKey:MealID" json:"meal,omitempty"`
}
