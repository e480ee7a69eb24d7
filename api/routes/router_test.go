package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucasmedina/viandas-backend/internal/auth"
	"github.com/lucasmedina/viandas-backend/internal/customers"
	"github.com/lucasmedina/viandas-backend/internal/dashboard"
	"github.com/lucasmedina/viandas-backend/internal/followups"
	"github.com/lucasmedina/viandas-backend/internal/meals"
	"github.com/lucasmedina/viandas-backend/internal/orders"
	pkgAuth "github.com/lucasmedina/viandas-backend/pkg/auth"
	"github.com/lucasmedina/viandas-backend/pkg/auth/session"
	"github.com/lucasmedina/viandas-backend/pkg/config"
	"github.com/lucasmedina/viandas-backend/pkg/db/models"
	"github.com/lucasmedina/viandas-backend/pkg/enums"
	"github.com/lucasmedina/viandas-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionManager struct{}

func (stubSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResult, error) {
	return &auth.LoginResult{}, nil
}

func (stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.LoginResult, error) {
	return &auth.LoginResult{}, nil
}

func (stubAuthService) Logout(ctx context.Context, accessToken string) error {
	return nil
}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.UserView, error) {
	return &auth.UserView{}, nil
}

type stubMealsService struct{}

func (stubMealsService) List(ctx context.Context) ([]models.Meal, error) {
	return []models.Meal{}, nil
}

func (stubMealsService) Create(ctx context.Context, req meals.CreateRequest) (*models.Meal, error) {
	return &models.Meal{Name: req.Name}, nil
}

func (stubMealsService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubCustomersService struct{}

func (stubCustomersService) List(ctx context.Context, params customers.ListParams) ([]models.Customer, error) {
	return []models.Customer{}, nil
}

func (stubCustomersService) Get(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	return &models.Customer{ID: id}, nil
}

func (stubCustomersService) Create(ctx context.Context, req customers.CreateRequest) (*models.Customer, error) {
	return &models.Customer{FullName: req.FullName}, nil
}

func (stubCustomersService) Update(ctx context.Context, id uuid.UUID, req customers.UpdateRequest) (*models.Customer, error) {
	return &models.Customer{ID: id}, nil
}

func (stubCustomersService) ApplyOrder(ctx context.Context, id uuid.UUID, total decimal.Decimal, orderedAt time.Time) error {
	return nil
}

type stubOrdersService struct {
	deleted []uuid.UUID
}

func (s *stubOrdersService) Create(ctx context.Context, actorID uuid.UUID, req orders.CreateOrderRequest) (*models.Order, error) {
	return &models.Order{CustomerName: req.CustomerName}, nil
}

func (s *stubOrdersService) List(ctx context.Context, params orders.ListParams) ([]models.Order, error) {
	return []models.Order{}, nil
}

func (s *stubOrdersService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return &models.Order{ID: id}, nil
}

func (s *stubOrdersService) UpdateStatus(ctx context.Context, id uuid.UUID, req orders.UpdateStatusRequest) (*models.Order, error) {
	return &models.Order{ID: id}, nil
}

func (s *stubOrdersService) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubFollowupsService struct{}

func (stubFollowupsService) List(ctx context.Context, params followups.ListParams) ([]followups.View, error) {
	return []followups.View{}, nil
}

func (stubFollowupsService) MarkSent(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (stubFollowupsService) ScheduleForOrder(ctx context.Context, order *models.Order) (*models.Followup, error) {
	return nil, nil
}

func (stubFollowupsService) CountPending(ctx context.Context) (int64, error) {
	return 0, nil
}

type stubDashboardService struct{}

func (stubDashboardService) Summarize(ctx context.Context, period string) (*dashboard.Summary, error) {
	return &dashboard.Summary{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Cfg:            cfg,
		Logg:           logg,
		DB:             stubPinger{},
		SessionManager: stubSessionManager{},
		Auth:           stubAuthService{},
		Meals:          stubMealsService{},
		Customers:      stubCustomersService{},
		Orders:         &stubOrdersService{},
		Followups:      stubFollowupsService{},
		Dashboard:      stubDashboardService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.MemberRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for live check got %d", resp.Code)
	}
}

func TestProtectedGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/meals", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestProtectedGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/meals", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.MemberRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for meals list got %d", resp.Code)
	}
}

func TestOrderDeleteRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	target := "/api/v1/orders/" + uuid.NewString()

	staff := httptest.NewRequest(http.MethodDelete, target, nil)
	staff.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.MemberRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, staff)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for staff delete got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodDelete, target, nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.MemberRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin delete got %d", resp.Code)
	}
}

func TestLoginRejectsBadJSON(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload got %d", resp.Code)
	}
}

func TestRegisterHiddenInProduction(t *testing.T) {
	cfg := testConfig()
	cfg.App.Env = "production"
	router := newTestRouter(cfg)

	body := `{"email":"ana@example.com","password":"supersecret","full_name":"Ana"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound && resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected register to be unmounted in production got %d", resp.Code)
	}
}

func TestDashboardRouteServesSummary(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?period=week", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.MemberRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for dashboard got %d", resp.Code)
	}
}
