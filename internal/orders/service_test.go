package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lucasmedina/viandas-backend/pkg/config"
	"github.com/lucasmedina/viandas-backend/pkg/db/models"
	"github.com/lucasmedina/viandas-backend/pkg/enums"
	pkgerrors "github.com/lucasmedina/viandas-backend/pkg/errors"
	"github.com/lucasmedina/viandas-backend/pkg/metrics"
)

type stubRepo struct {
	orders     map[uuid.UUID]*models.Order
	items      []models.OrderItem
	itemsErr   error
	createErr  error
	lastFilter ListFilter
}

func newStubRepo() *stubRepo {
	return &stubRepo{orders: map[uuid.UUID]*models.Order{}}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, order *models.Order) error {
	if s.createErr != nil {
		return s.createErr
	}
	order.ID = uuid.New()
	s.orders[order.ID] = order
	return nil
}

func (s *stubRepo) InsertItems(ctx context.Context, items []models.OrderItem) error {
	if s.itemsErr != nil {
		return s.itemsErr
	}
	s.items = append(s.items, items...)
	return nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if o, ok := s.orders[id]; ok {
		clone := *o
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) List(ctx context.Context, params ListFilter) ([]models.Order, error) {
	s.lastFilter = params
	out := []models.Order{}
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (s *stubRepo) ListBetween(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	return nil, nil
}

func (s *stubRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (bool, error) {
	if o, ok := s.orders[id]; ok {
		o.Status = status
		return true, nil
	}
	return false, nil
}

func (s *stubRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, ok := s.orders[id]; ok {
		delete(s.orders, id)
		return true, nil
	}
	return false, nil
}

type stubScheduler struct {
	scheduled []*models.Order
	result    *models.Followup
	err       error
}

func (s *stubScheduler) ScheduleForOrder(ctx context.Context, order *models.Order) (*models.Followup, error) {
	s.scheduled = append(s.scheduled, order)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubCustomerStats struct {
	applied []uuid.UUID
	err     error
}

func (s *stubCustomerStats) ApplyOrder(ctx context.Context, id uuid.UUID, total decimal.Decimal, orderedAt time.Time) error {
	s.applied = append(s.applied, id)
	return s.err
}

func testTable() config.PriceTable {
	return config.PricesConfig{Single: 9800, Pack5: 49000, Pack10: 92000, Delivery: 3300}.Table()
}

func testService(t *testing.T, repo Repository, scheduler followupScheduler, customers customerStats) *service {
	t.Helper()
	svc, err := NewService(repo, scheduler, customers, testTable(), metrics.NewOrderMetrics(prometheus.NewRegistry()), nil)
	require.NoError(t, err)
	impl := svc.(*service)
	impl.clock = func() time.Time { return time.Date(2025, 8, 31, 14, 0, 0, 0, time.UTC) }
	return impl
}

func TestCreate_PricesFromTable(t *testing.T) {
	repo := newStubRepo()
	svc := testService(t, repo, &stubScheduler{}, &stubCustomerStats{})

	order, err := svc.Create(context.Background(), uuid.New(), CreateOrderRequest{
		CustomerName: "Maria Lopez",
		OrderType:    "pack10",
		Delivery:     true,
	})
	require.NoError(t, err)

	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(92000)))
	assert.True(t, order.DeliveryFee.Equal(decimal.NewFromInt(3300)))
	assert.True(t, order.Total.Equal(decimal.NewFromInt(95300)))
	assert.Equal(t, enums.OrderStatusPending, order.Status)
	assert.Equal(t, time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC), order.OrderDate)
}

func TestCreate_OtherUsesManualSubtotal(t *testing.T) {
	repo := newStubRepo()
	svc := testService(t, repo, &stubScheduler{}, &stubCustomerStats{})

	order, err := svc.Create(context.Background(), uuid.New(), CreateOrderRequest{
		CustomerName:   "Jorge",
		OrderType:      "other",
		ManualSubtotal: "garbage",
	})
	require.NoError(t, err)
	assert.True(t, order.Subtotal.IsZero())
	assert.True(t, order.Total.IsZero())
}

func TestCreate_ItemFailureSurfacesButOrderPersists(t *testing.T) {
	repo := newStubRepo()
	repo.itemsErr = errors.New("insert failed")
	svc := testService(t, repo, &stubScheduler{}, &stubCustomerStats{})

	_, err := svc.Create(context.Background(), uuid.New(), CreateOrderRequest{
		CustomerName: "Maria",
		OrderType:    "single",
		Items:        []OrderItemInput{{MealID: uuid.New(), Qty: 2}},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
	// the sale itself is still on record
	assert.Len(t, repo.orders, 1)
}

func TestCreate_FollowupFailureIsSwallowed(t *testing.T) {
	repo := newStubRepo()
	scheduler := &stubScheduler{err: errors.New("redis down")}
	svc := testService(t, repo, scheduler, &stubCustomerStats{})

	order, err := svc.Create(context.Background(), uuid.New(), CreateOrderRequest{
		CustomerName: "Maria",
		OrderType:    "single",
	})
	require.NoError(t, err)
	assert.NotNil(t, order)
	assert.Len(t, scheduler.scheduled, 1)
}

func TestCreate_CustomerStatsFailureIsSwallowed(t *testing.T) {
	repo := newStubRepo()
	customers := &stubCustomerStats{err: errors.New("db timeout")}
	customerID := uuid.New()
	svc := testService(t, repo, &stubScheduler{}, customers)

	order, err := svc.Create(context.Background(), uuid.New(), CreateOrderRequest{
		CustomerName: "Maria",
		OrderType:    "pack5",
		CustomerID:   &customerID,
	})
	require.NoError(t, err)
	assert.NotNil(t, order)
	assert.Equal(t, []uuid.UUID{customerID}, customers.applied)
}

func TestCreate_NoCustomerLinkSkipsStats(t *testing.T) {
	repo := newStubRepo()
	customers := &stubCustomerStats{}
	svc := testService(t, repo, &stubScheduler{}, customers)

	_, err := svc.Create(context.Background(), uuid.New(), CreateOrderRequest{
		CustomerName: "Walk-in",
		OrderType:    "single",
	})
	require.NoError(t, err)
	assert.Empty(t, customers.applied)
}

func TestCreate_ItemCountSumsQuantities(t *testing.T) {
	repo := newStubRepo()
	svc := testService(t, repo, &stubScheduler{}, &stubCustomerStats{})

	order, err := svc.Create(context.Background(), uuid.New(), CreateOrderRequest{
		CustomerName: "Maria",
		OrderType:    "pack5",
		Items: []OrderItemInput{
			{MealID: uuid.New(), Qty: 3},
			{MealID: uuid.New(), Qty: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, order.ItemCount)
	assert.Len(t, repo.items, 2)
}

func TestCreate_InvalidOrderType(t *testing.T) {
	svc := testService(t, newStubRepo(), &stubScheduler{}, &stubCustomerStats{})

	_, err := svc.Create(context.Background(), uuid.New(), CreateOrderRequest{
		CustomerName: "Maria",
		OrderType:    "pack99",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateStatus_Transitions(t *testing.T) {
	repo := newStubRepo()
	svc := testService(t, repo, &stubScheduler{}, &stubCustomerStats{})

	order, err := svc.Create(context.Background(), uuid.New(), CreateOrderRequest{
		CustomerName: "Maria",
		OrderType:    "single",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, UpdateStatusRequest{Status: "paid"})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPaid, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), uuid.New(), UpdateStatusRequest{Status: "paid"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestList_ParsesFilters(t *testing.T) {
	repo := newStubRepo()
	svc := testService(t, repo, &stubScheduler{}, &stubCustomerStats{})

	_, err := svc.List(context.Background(), ListParams{
		From:      "2025-08-01",
		To:        "2025-08-31",
		Status:    "paid",
		OrderType: "pack5",
		Search:    "maria",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter.From)
	assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), *repo.lastFilter.From)
	assert.Equal(t, enums.OrderStatusPaid, repo.lastFilter.Status)
	assert.Equal(t, enums.OrderTypePack5, repo.lastFilter.OrderType)
	assert.Equal(t, "maria", repo.lastFilter.Search)

	_, err = svc.List(context.Background(), ListParams{From: "31/08/2025"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDelete_RemovesOrder(t *testing.T) {
	repo := newStubRepo()
	svc := testService(t, repo, &stubScheduler{}, &stubCustomerStats{})

	order, err := svc.Create(context.Background(), uuid.New(), CreateOrderRequest{
		CustomerName: "Maria",
		OrderType:    "single",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), order.ID))
	assert.Empty(t, repo.orders)

	err = svc.Delete(context.Background(), order.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
