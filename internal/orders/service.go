package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lucasmedina/viandas-backend/pkg/config"
	"github.com/lucasmedina/viandas-backend/pkg/db/models"
	"github.com/lucasmedina/viandas-backend/pkg/enums"
	pkgerrors "github.com/lucasmedina/viandas-backend/pkg/errors"
	"github.com/lucasmedina/viandas-backend/pkg/logger"
	"github.com/lucasmedina/viandas-backend/pkg/metrics"
)

const orderDateLayout = "2006-01-02"

// Service defines order intake and lifecycle operations.
type Service interface {
	Create(ctx context.Context, actorID uuid.UUID, req CreateOrderRequest) (*models.Order, error)
	List(ctx context.Context, params ListParams) ([]models.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type followupScheduler interface {
	ScheduleForOrder(ctx context.Context, order *models.Order) (*models.Followup, error)
}

type customerStats interface {
	ApplyOrder(ctx context.Context, id uuid.UUID, total decimal.Decimal, orderedAt time.Time) error
}

type service struct {
	repo      Repository
	followups followupScheduler
	customers customerStats
	prices    config.PriceTable
	metrics   *metrics.OrderMetrics
	logg      *logger.Logger
	clock     func() time.Time
}

// NewService wires the order intake dependencies.
func NewService(repo Repository, followups followupScheduler, customers customerStats, prices config.PriceTable, m *metrics.OrderMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "orders repository required")
	}
	if followups == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "followup scheduler required")
	}
	if customers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "customer stats required")
	}
	return &service{
		repo:      repo,
		followups: followups,
		customers: customers,
		prices:    prices,
		metrics:   m,
		logg:      logg,
		clock:     func() time.Time { return time.Now().UTC() },
	}, nil
}

// Create persists the sale, then runs the side effects. The order row is the
// authoritative record: a line-item failure surfaces but leaves the order in
// place, and follow-up or CRM failures are logged and swallowed so a metrics
// hiccup never loses a sale.
func (s *service) Create(ctx context.Context, actorID uuid.UUID, req CreateOrderRequest) (*models.Order, error) {
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor required")
	}

	orderType, err := enums.ParseOrderType(req.OrderType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order type")
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}

	now := s.clock()
	orderDate, err := s.resolveOrderDate(req.OrderDate, now)
	if err != nil {
		return nil, err
	}

	quote := Quote(orderType, s.prices, req.Delivery, req.ManualSubtotal)

	itemCount := 0
	for _, item := range req.Items {
		if item.MealID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item meal id required")
		}
		if item.Qty < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item qty must be positive")
		}
		itemCount += item.Qty
	}

	order := &models.Order{
		CustomerName: name,
		Phone:        strings.TrimSpace(req.Phone),
		CustomerID:   req.CustomerID,
		OrderType:    orderType,
		OtherLabel:   req.OtherLabel,
		Delivery:     req.Delivery,
		Status:       enums.OrderStatusPending,
		Subtotal:     quote.Subtotal,
		DeliveryFee:  quote.DeliveryFee,
		Total:        quote.Total,
		Notes:        strings.TrimSpace(req.Notes),
		ItemCount:    itemCount,
		OrderDate:    orderDate,
		CreatedBy:    actorID,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	s.metrics.IncOrderCreated(string(orderType))

	if len(req.Items) > 0 {
		items := make([]models.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, models.OrderItem{
				OrderID: order.ID,
				MealID:  item.MealID,
				Qty:     item.Qty,
			})
		}
		if err := s.repo.InsertItems(ctx, items); err != nil {
			// the sale is already committed, report the partial write
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "order saved but items failed").
				WithDetails(map[string]any{"order_id": order.ID.String()})
		}
		order.Items = items
	}

	s.runSideEffects(ctx, order, now)

	return order, nil
}

func (s *service) runSideEffects(ctx context.Context, order *models.Order, now time.Time) {
	followup, err := s.followups.ScheduleForOrder(ctx, order)
	if err != nil {
		s.metrics.IncFollowupFailure()
		s.warn(ctx, order.ID, "followup scheduling failed", err)
	} else if followup != nil {
		s.metrics.IncFollowupScheduled(string(followup.Type))
	}

	if order.CustomerID != nil {
		if err := s.customers.ApplyOrder(ctx, *order.CustomerID, order.Total, now); err != nil {
			s.metrics.IncStatsFailure()
			s.warn(ctx, order.ID, "customer stats update failed", err)
		}
	}
}

func (s *service) List(ctx context.Context, params ListParams) ([]models.Order, error) {
	filter := ListFilter{Search: strings.TrimSpace(params.Search)}

	if params.From != "" {
		from, err := time.Parse(orderDateLayout, params.From)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid from date")
		}
		filter.From = &from
	}
	if params.To != "" {
		to, err := time.Parse(orderDateLayout, params.To)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid to date")
		}
		filter.To = &to
	}
	if params.Status != "" {
		status, err := enums.ParseOrderStatus(params.Status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		filter.Status = status
	}
	if params.OrderType != "" {
		orderType, err := enums.ParseOrderType(params.OrderType)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid type filter")
		}
		filter.OrderType = orderType
	}

	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return orders, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find order")
	}
	return order, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	status, err := enums.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
	}

	found, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return nil
}

func (s *service) resolveOrderDate(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	parsed, err := time.Parse(orderDateLayout, raw)
	if err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order date")
	}
	return parsed, nil
}

func (s *service) warn(ctx context.Context, orderID uuid.UUID, msg string, err error) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithFields(ctx, map[string]any{
		"order_id": orderID.String(),
		"error":    err.Error(),
	})
	s.logg.Warn(ctx, msg)
}
