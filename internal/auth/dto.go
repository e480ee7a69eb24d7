package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/lucasmedina/viandas-backend/pkg/db/models"
	"github.com/lucasmedina/viandas-backend/pkg/enums"
)

// LoginRequest carries staff credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterRequest creates a staff account. Only served outside production.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2"`
	Role     string `json:"role" validate:"omitempty,oneof=admin staff"`
}

// RefreshRequest rotates a session using the expired access token plus the refresh token.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UserView is the account shape returned to clients.
type UserView struct {
	ID          uuid.UUID        `json:"id"`
	Email       string           `json:"email"`
	FullName    string           `json:"full_name"`
	Role        enums.MemberRole `json:"role"`
	LastLoginAt *time.Time       `json:"last_login_at,omitempty"`
}

// TokenPair bundles the freshly minted credentials.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResult is returned by Login and Refresh.
type LoginResult struct {
	Tokens TokenPair `json:"tokens"`
	User   UserView  `json:"user"`
}

func userView(u *models.User) UserView {
	return UserView{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        u.Role,
		LastLoginAt: u.LastLoginAt,
	}
}
