package followups

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lucasmedina/viandas-backend/pkg/db/models"
	"github.com/lucasmedina/viandas-backend/pkg/enums"
)

// Repository exposes persistence helpers for follow-up tasks.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, followup *models.Followup) error
	List(ctx context.Context, params ListFilter) ([]models.Followup, error)
	MarkSent(ctx context.Context, id uuid.UUID) (markResult, error)
	CountPending(ctx context.Context) (int64, error)
}

// ListFilter narrows the follow-up listing.
type ListFilter struct {
	Status enums.FollowupStatus
}

type markResult struct {
	Updated bool
	Found   bool
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a followups repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, followup *models.Followup) error {
	return r.db.WithContext(ctx).Create(followup).Error
}

func (r *repositoryImpl) List(ctx context.Context, params ListFilter) ([]models.Followup, error) {
	query := r.db.WithContext(ctx).Model(&models.Followup{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	var followups []models.Followup
	if err := query.Order("due_date ASC, created_at ASC").Find(&followups).Error; err != nil {
		return nil, err
	}
	return followups, nil
}

func (r *repositoryImpl) MarkSent(ctx context.Context, id uuid.UUID) (markResult, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Followup{}).
		Where("id = ? AND status = ?", id, enums.FollowupStatusPending).
		UpdateColumn("status", enums.FollowupStatusSent)
	if result.Error != nil {
		return markResult{}, result.Error
	}

	mark := markResult{Updated: result.RowsAffected > 0}
	if result.RowsAffected > 0 {
		mark.Found = true
		return mark, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Followup{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return markResult{}, err
	}
	mark.Found = count > 0
	return mark, nil
}

func (r *repositoryImpl) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Followup{}).
		Where("status = ?", enums.FollowupStatusPending).
		Count(&count).Error
	return count, err
}
