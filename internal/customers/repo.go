package customers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lucasmedina/viandas-backend/pkg/db/models"
	"github.com/lucasmedina/viandas-backend/pkg/enums"
)

// Repository exposes persistence helpers for CRM customers.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	List(ctx context.Context, params ListFilter) ([]models.Customer, error)
	ApplyOrder(ctx context.Context, id uuid.UUID, total decimal.Decimal, orderedAt time.Time, status enums.CustomerStatus) (bool, error)
	CountActiveSince(ctx context.Context, cutoff time.Time) (int64, error)
	RetentionStats(ctx context.Context) (withOrders, repeat int64, err error)
}

// ListFilter narrows the customer listing.
type ListFilter struct {
	Search string
	Status enums.CustomerStatus
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a customers repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *repositoryImpl) Update(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repositoryImpl) List(ctx context.Context, params ListFilter) ([]models.Customer, error) {
	query := r.db.WithContext(ctx).Model(&models.Customer{})
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("full_name ILIKE ? OR phone LIKE ?", like, like)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	var customers []models.Customer
	if err := query.Order("last_order_at DESC NULLS LAST, created_at DESC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// ApplyOrder folds one sale into the running counters. The status column is
// overwritten because a fresh purchase always makes the customer active.
func (r *repositoryImpl) ApplyOrder(ctx context.Context, id uuid.UUID, total decimal.Decimal, orderedAt time.Time, status enums.CustomerStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"orders_count":  gorm.Expr("orders_count + 1"),
			"total_spent":   gorm.Expr("total_spent + ?", total),
			"last_order_at": orderedAt,
			"status":        status,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountActiveSince counts from last_order_at instead of the stored status
// column so the figure stays correct as days pass between writes.
func (r *repositoryImpl) CountActiveSince(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("last_order_at >= ?", cutoff).
		Count(&count).Error
	return count, err
}

func (r *repositoryImpl) RetentionStats(ctx context.Context) (int64, int64, error) {
	var withOrders int64
	if err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("orders_count >= 1").
		Count(&withOrders).Error; err != nil {
		return 0, 0, err
	}

	var repeat int64
	if err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("orders_count >= 2").
		Count(&repeat).Error; err != nil {
		return 0, 0, err
	}
	return withOrders, repeat, nil
}
