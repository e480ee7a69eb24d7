package models

import (
	"time"

	"github.com/google/uuid"
)

// Meal is a catalog entry referenced by order line items. Deleting a meal is
// allowed; historical line items keep their reference and resolve to nothing.
type Meal struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
