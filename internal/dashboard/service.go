package dashboard

import (
	"context"
	"time"

	"github.com/lucasmedina/viandas-backend/pkg/db/models"
	"github.com/lucasmedina/viandas-backend/pkg/enums"
	pkgerrors "github.com/lucasmedina/viandas-backend/pkg/errors"
)

// Summary is the full dashboard payload for one period.
type Summary struct {
	Period      enums.Period `json:"period"`
	WindowStart time.Time    `json:"window_start"`
	OrderStats
	ActiveClients    int64 `json:"active_clients"`
	RetentionRate    int   `json:"retention_rate"`
	PendingFollowups int64 `json:"pending_followups"`
}

// Service produces dashboard summaries.
type Service interface {
	Summarize(ctx context.Context, period string) (*Summary, error)
}

type ordersSource interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]models.Order, error)
}

type customersSource interface {
	CountActiveSince(ctx context.Context, cutoff time.Time) (int64, error)
	RetentionStats(ctx context.Context) (withOrders, repeat int64, err error)
}

type followupsSource interface {
	CountPending(ctx context.Context) (int64, error)
}

const activeWindowDays = 14

type service struct {
	orders    ordersSource
	customers customersSource
	followups followupsSource
	clock     func() time.Time
}

// NewService wires the dashboard read sources.
func NewService(orders ordersSource, customers customersSource, followups followupsSource) (Service, error) {
	if orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "orders source required")
	}
	if customers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "customers source required")
	}
	if followups == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "followups source required")
	}
	return &service{
		orders:    orders,
		customers: customers,
		followups: followups,
		clock:     func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) Summarize(ctx context.Context, rawPeriod string) (*Summary, error) {
	period := enums.PeriodToday
	if rawPeriod != "" {
		parsed, err := enums.ParsePeriod(rawPeriod)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid period")
		}
		period = parsed
	}

	now := s.clock()
	start := WindowStart(period, now)

	orders, err := s.orders.ListBetween(ctx, start, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load orders window")
	}

	summary := &Summary{
		Period:      period,
		WindowStart: start,
		OrderStats:  Aggregate(orders),
	}

	activeCutoff := WindowStart(enums.PeriodToday, now).AddDate(0, 0, -activeWindowDays)
	active, err := s.customers.CountActiveSince(ctx, activeCutoff)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count active clients")
	}
	summary.ActiveClients = active

	withOrders, repeat, err := s.customers.RetentionStats(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load retention stats")
	}
	summary.RetentionRate = roundedPercent(int(repeat), int(withOrders))

	pending, err := s.followups.CountPending(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pending followups")
	}
	summary.PendingFollowups = pending

	return summary, nil
}
