package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lucasmedina/viandas-backend/pkg/enums"
)

// Followup is a reminder to contact a customer a few days after a purchase.
// Customer name and phone are denormalized at creation time so the task stays
// actionable even if the originating order or customer row changes.
type Followup struct {
	ID            uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerName  string               `gorm:"column:customer_name;not null" json:"customer_name"`
	CustomerPhone string               `gorm:"column:customer_phone;not null;default:''" json:"customer_phone"`
	OrderID       *uuid.UUID           `gorm:"column:order_id;type:uuid" json:"order_id,omitempty"`
	Type          enums.FollowupType   `gorm:"column:type;type:followup_type;not null" json:"type"`
	Status        enums.FollowupStatus `gorm:"column:status;type:followup_status;not null;default:'pending'" json:"status"`
	DueDate       time.Time            `gorm:"column:due_date;type:date;not null" json:"due_date"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
