package followups

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lucasmedina/viandas-backend/pkg/db/models"
	"github.com/lucasmedina/viandas-backend/pkg/enums"
	pkgerrors "github.com/lucasmedina/viandas-backend/pkg/errors"
)

// Service defines the follow-up queue operations.
type Service interface {
	List(ctx context.Context, params ListParams) ([]View, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	ScheduleForOrder(ctx context.Context, order *models.Order) (*models.Followup, error)
	CountPending(ctx context.Context) (int64, error)
}

// ListParams filters the follow-up listing.
type ListParams struct {
	Status string
}

// View pairs a stored task with the suggested outreach text for its type.
type View struct {
	models.Followup
	Message string `json:"message"`
}

type service struct {
	repo  Repository
	clock func() time.Time
}

// NewService wires the follow-up dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "followups repository required")
	}
	return &service{
		repo:  repo,
		clock: func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) List(ctx context.Context, params ListParams) ([]View, error) {
	filter := ListFilter{}
	if params.Status != "" {
		status, err := enums.ParseFollowupStatus(params.Status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		filter.Status = status
	}

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list followups")
	}

	views := make([]View, 0, len(rows))
	for _, row := range rows {
		views = append(views, View{Followup: row, Message: MessageFor(row.Type)})
	}
	return views, nil
}

// MarkSent flips a task to sent. Marking an already-sent task is a no-op so
// double taps from the queue UI don't error.
func (s *service) MarkSent(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "followup id required")
	}

	result, err := s.repo.MarkSent(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark followup sent")
	}
	if !result.Found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "followup not found")
	}
	return nil
}

// ScheduleForOrder creates the follow-up a fresh order calls for, if any.
// Returns nil without error when the order type produces no follow-up.
func (s *service) ScheduleForOrder(ctx context.Context, order *models.Order) (*models.Followup, error) {
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order required")
	}

	followupType, delayDays, ok := Decide(order.OrderType)
	if !ok {
		return nil, nil
	}

	followup := &models.Followup{
		CustomerName:  order.CustomerName,
		CustomerPhone: order.Phone,
		OrderID:       &order.ID,
		Type:          followupType,
		Status:        enums.FollowupStatusPending,
		DueDate:       DueDate(s.clock(), delayDays),
	}
	if err := s.repo.Create(ctx, followup); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create followup")
	}
	return followup, nil
}

func (s *service) CountPending(ctx context.Context) (int64, error) {
	count, err := s.repo.CountPending(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pending followups")
	}
	return count, nil
}
