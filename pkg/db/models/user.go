package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lucasmedina/viandas-backend/pkg/enums"
)

// User is a staff account able to sign in to the dashboard.
type User struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string           `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string           `gorm:"column:password_hash;not null"`
	FullName     string           `gorm:"column:full_name;not null"`
	Role         enums.MemberRole `gorm:"column:role;type:member_role;not null;default:'staff'"`
	LastLoginAt  *time.Time       `gorm:"column:last_login_at;type:timestamptz"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
}
