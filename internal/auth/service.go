package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/lucasmedina/viandas-backend/internal/users"
	pkgauth "github.com/lucasmedina/viandas-backend/pkg/auth"
	"github.com/lucasmedina/viandas-backend/pkg/auth/session"
	"github.com/lucasmedina/viandas-backend/pkg/config"
	"github.com/lucasmedina/viandas-backend/pkg/db"
	"github.com/lucasmedina/viandas-backend/pkg/db/models"
	"github.com/lucasmedina/viandas-backend/pkg/enums"
	pkgerrors "github.com/lucasmedina/viandas-backend/pkg/errors"
	"github.com/lucasmedina/viandas-backend/pkg/logger"
	"github.com/lucasmedina/viandas-backend/pkg/security"
)

// Service defines the authentication operations for staff accounts.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Refresh(ctx context.Context, req RefreshRequest) (*LoginResult, error)
	Logout(ctx context.Context, accessToken string) error
	Register(ctx context.Context, req RegisterRequest) (*UserView, error)
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type service struct {
	repo          users.Repository
	sessions      sessionManager
	jwtCfg        config.JWTConfig
	passwordCfg   config.PasswordConfig
	allowRegister bool
	logg          *logger.Logger
	clock         func() time.Time
}

// NewService wires the auth dependencies. Registration stays closed in production.
func NewService(repo users.Repository, sessions sessionManager, jwtCfg config.JWTConfig, passwordCfg config.PasswordConfig, allowRegister bool, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "users repository required")
	}
	if sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "session manager required")
	}
	return &service{
		repo:          repo,
		sessions:      sessions,
		jwtCfg:        jwtCfg,
		passwordCfg:   passwordCfg,
		allowRegister: allowRegister,
		logg:          logg,
		clock:         func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}

	ok, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	result, err := s.mintPair(ctx, user)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// login already succeeded, don't fail the request over bookkeeping
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "user_id", user.ID.String()), "record last login failed")
		}
	} else {
		result.User.LastLoginAt = &now
	}

	return result, nil
}

func (s *service) Refresh(ctx context.Context, req RefreshRequest) (*LoginResult, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, req.AccessToken)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	if claims.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id")
	}

	newAccessID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, req.RefreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account no longer exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}

	access, err := pkgauth.MintAccessToken(s.jwtCfg, s.clock(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	return &LoginResult{
		Tokens: TokenPair{AccessToken: access, RefreshToken: newRefresh},
		User:   userView(user),
	}, nil
}

func (s *service) Logout(ctx context.Context, accessToken string) error {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, accessToken)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	if claims.ID == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id")
	}
	if err := s.sessions.Revoke(ctx, claims.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*UserView, error) {
	if !s.allowRegister {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "registration disabled")
	}

	role := enums.MemberRoleStaff
	if req.Role != "" {
		parsed, err := enums.ParseMemberRole(req.Role)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role")
		}
		role = parsed
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Role:         role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	view := userView(user)
	return &view, nil
}

func (s *service) mintPair(ctx context.Context, user *models.User) (*LoginResult, error) {
	accessID := session.NewAccessID()
	access, err := pkgauth.MintAccessToken(s.jwtCfg, s.clock(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	refresh, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}

	return &LoginResult{
		Tokens: TokenPair{AccessToken: access, RefreshToken: refresh},
		User:   userView(user),
	}, nil
}
