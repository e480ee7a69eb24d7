package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lucasmedina/viandas-backend/pkg/db/models"
	"github.com/lucasmedina/viandas-backend/pkg/enums"
)

// Repository exposes persistence helpers for orders and their line items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) error
	InsertItems(ctx context.Context, items []models.OrderItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, params ListFilter) ([]models.Order, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// ListFilter narrows the order listing.
type ListFilter struct {
	From      *time.Time
	To        *time.Time
	Status    enums.OrderStatus
	OrderType enums.OrderType
	Search    string
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an orders repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, order *models.Order) error {
	// Items are inserted separately so an item failure never rolls back the sale.
	return r.db.WithContext(ctx).Omit("Items").Create(order).Error
}

func (r *repositoryImpl) InsertItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items.Meal").
		Where("id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repositoryImpl) List(ctx context.Context, params ListFilter) ([]models.Order, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{}).Preload("Items.Meal")
	if params.From != nil {
		query = query.Where("order_date >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("order_date <= ?", *params.To)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.OrderType != "" {
		query = query.Where("order_type = ?", params.OrderType)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("customer_name ILIKE ? OR phone LIKE ?", like, like)
	}

	var orders []models.Order
	if err := query.Order("order_date DESC, created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListBetween selects by registration time, so a backdated order still counts
// toward the day it was entered.
func (r *repositoryImpl) ListBetween(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items.Meal").
		Where("created_at >= ? AND created_at <= ?", from, to).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
