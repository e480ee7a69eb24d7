package customers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lucasmedina/viandas-backend/pkg/db/models"
	"github.com/lucasmedina/viandas-backend/pkg/enums"
	pkgerrors "github.com/lucasmedina/viandas-backend/pkg/errors"
)

// Service defines CRM operations over customers.
type Service interface {
	List(ctx context.Context, params ListParams) ([]models.Customer, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	Create(ctx context.Context, req CreateRequest) (*models.Customer, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*models.Customer, error)
	ApplyOrder(ctx context.Context, id uuid.UUID, total decimal.Decimal, orderedAt time.Time) error
}

// ListParams filters the customer listing.
type ListParams struct {
	Search string
	Status string
}

// CreateRequest adds a customer to the CRM.
type CreateRequest struct {
	FullName string  `json:"full_name" validate:"required,min=2,max=120"`
	Phone    string  `json:"phone" validate:"omitempty,max=30"`
	Notes    *string `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateRequest edits contact data and notes. Derived counters are not editable.
type UpdateRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=120"`
	Phone    *string `json:"phone" validate:"omitempty,max=30"`
	Notes    *string `json:"notes" validate:"omitempty,max=2000"`
}

type service struct {
	repo  Repository
	clock func() time.Time
}

// NewService wires the CRM dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "customers repository required")
	}
	return &service{
		repo:  repo,
		clock: func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) List(ctx context.Context, params ListParams) ([]models.Customer, error) {
	filter := ListFilter{Search: strings.TrimSpace(params.Search)}
	if raw := strings.TrimSpace(params.Status); raw != "" {
		status, err := enums.ParseCustomerStatus(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		filter.Status = status
	}

	customers, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}

	// stored statuses drift as days pass, refresh them for the response
	now := s.clock()
	for i := range customers {
		customers[i].Status = Classify(customers[i].LastOrderAt, now)
	}
	return customers, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.findCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	customer.Status = Classify(customer.LastOrderAt, s.clock())
	return customer, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*models.Customer, error) {
	name := strings.TrimSpace(req.FullName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}

	customer := &models.Customer{
		FullName:   name,
		Phone:      strings.TrimSpace(req.Phone),
		Status:     enums.CustomerStatusInactive,
		TotalSpent: decimal.Zero,
		Notes:      req.Notes,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
	}
	return customer, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*models.Customer, error) {
	customer, err := s.findCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name cannot be blank")
		}
		customer.FullName = name
	}
	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Notes != nil {
		customer.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer")
	}
	customer.Status = Classify(customer.LastOrderAt, s.clock())
	return customer, nil
}

// ApplyOrder folds a new sale into the customer counters and refreshes the
// lifecycle status. Called after the order row is already committed.
func (s *service) ApplyOrder(ctx context.Context, id uuid.UUID, total decimal.Decimal, orderedAt time.Time) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}

	status := Classify(&orderedAt, s.clock())
	found, err := s.repo.ApplyOrder(ctx, id, total, orderedAt, status)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply order to customer")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}
	return nil
}

func (s *service) findCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find customer")
	}
	return customer, nil
}
