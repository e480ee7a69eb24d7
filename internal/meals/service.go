package meals

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/lucasmedina/viandas-backend/pkg/db/models"
	pkgerrors "github.com/lucasmedina/viandas-backend/pkg/errors"
)

// Service defines catalog operations.
type Service interface {
	List(ctx context.Context) ([]models.Meal, error)
	Create(ctx context.Context, req CreateRequest) (*models.Meal, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateRequest adds a meal to the catalog.
type CreateRequest struct {
	Name string `json:"name" validate:"required,min=2,max=120"`
}

type service struct {
	repo Repository
}

// NewService wires the catalog dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "meals repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Meal, error) {
	meals, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list meals")
	}
	return meals, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*models.Meal, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "meal name required")
	}

	meal := &models.Meal{Name: name}
	if err := s.repo.Create(ctx, meal); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create meal")
	}
	return meal, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "meal id required")
	}
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete meal")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "meal not found")
	}
	return nil
}
