package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lucasmedina/viandas-backend/api/middleware"
	ordersvc "github.com/lucasmedina/viandas-backend/internal/orders"
	"github.com/lucasmedina/viandas-backend/pkg/db/models"
	"github.com/lucasmedina/viandas-backend/pkg/logger"
)

type stubOrdersCreateService struct {
	created   bool
	lastActor uuid.UUID
}

func (s *stubOrdersCreateService) Create(ctx context.Context, actorID uuid.UUID, req ordersvc.CreateOrderRequest) (*models.Order, error) {
	s.created = true
	s.lastActor = actorID
	return &models.Order{ID: uuid.New(), CustomerName: req.CustomerName}, nil
}

func (s *stubOrdersCreateService) List(ctx context.Context, params ordersvc.ListParams) ([]models.Order, error) {
	return []models.Order{}, nil
}

func (s *stubOrdersCreateService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return &models.Order{ID: id}, nil
}

func (s *stubOrdersCreateService) UpdateStatus(ctx context.Context, id uuid.UUID, req ordersvc.UpdateStatusRequest) (*models.Order, error) {
	return &models.Order{ID: id}, nil
}

func (s *stubOrdersCreateService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func TestOrderCreate(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
	userID := uuid.New()

	t.Run("missing user context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		OrderCreate(&stubOrdersCreateService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 without user context, got %d", rec.Code)
		}
	})

	t.Run("invalid payload", func(t *testing.T) {
		ctx := middleware.WithUserID(context.Background(), userID.String())
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader("{"))
		req = req.WithContext(ctx)
		rec := httptest.NewRecorder()
		OrderCreate(&stubOrdersCreateService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for bad JSON, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctx := middleware.WithUserID(context.Background(), userID.String())
		body := `{"customer_name":"Maria Lopez","order_type":"pack5","delivery":true}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
		req = req.WithContext(ctx)

		stub := &stubOrdersCreateService{}
		rec := httptest.NewRecorder()
		OrderCreate(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 on success, got %d", rec.Code)
		}
		if !stub.created {
			t.Fatalf("expected Create to be invoked")
		}
		if stub.lastActor != userID {
			t.Fatalf("expected actor %s, got %s", userID, stub.lastActor)
		}

		var envelope struct {
			Data models.Order `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if envelope.Data.CustomerName != "Maria Lopez" {
			t.Fatalf("expected customer name in response, got %q", envelope.Data.CustomerName)
		}
	})
}

func TestOrderDetailInvalidID(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("orderId", "not-a-uuid")
	ctx := context.WithValue(context.Background(), chi.RouteCtxKey, routeCtx)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", nil)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	OrderDetail(&stubOrdersCreateService{}, logg).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid id, got %d", rec.Code)
	}
}
