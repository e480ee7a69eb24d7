package meals

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lucasmedina/viandas-backend/pkg/db/models"
	pkgerrors "github.com/lucasmedina/viandas-backend/pkg/errors"
)

type stubRepo struct {
	meals   []models.Meal
	deleted []uuid.UUID
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, meal *models.Meal) error {
	meal.ID = uuid.New()
	s.meals = append(s.meals, *meal)
	return nil
}

func (s *stubRepo) List(ctx context.Context) ([]models.Meal, error) {
	return s.meals, nil
}

func (s *stubRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	for i, m := range s.meals {
		if m.ID == id {
			s.meals = append(s.meals[:i], s.meals[i+1:]...)
			s.deleted = append(s.deleted, id)
			return true, nil
		}
	}
	return false, nil
}

func TestCreate_TrimsName(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(repo)
	require.NoError(t, err)

	meal, err := svc.Create(context.Background(), CreateRequest{Name: "  Milanesa con pure  "})
	require.NoError(t, err)
	assert.Equal(t, "Milanesa con pure", meal.Name)
	assert.NotEqual(t, uuid.Nil, meal.ID)
}

func TestCreate_BlankNameRejected(t *testing.T) {
	svc, err := NewService(&stubRepo{})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateRequest{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDelete_UnknownMeal(t *testing.T) {
	svc, err := NewService(&stubRepo{})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDelete_RemovesMeal(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(repo)
	require.NoError(t, err)

	meal, err := svc.Create(context.Background(), CreateRequest{Name: "Tarta de verdura"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), meal.ID))
	assert.Empty(t, repo.meals)
}
