package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lucasmedina/viandas-backend/pkg/db/models"
	"github.com/lucasmedina/viandas-backend/pkg/enums"
)

// openTestDB hand-creates the schema: the production DDL lives in goose
// migrations and uses postgres defaults sqlite cannot evaluate.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a second connection would see its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range []string{
		`CREATE TABLE orders (
			id TEXT PRIMARY KEY,
			customer_name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			customer_id TEXT,
			order_type TEXT NOT NULL,
			other_label TEXT,
			delivery INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'pending',
			subtotal NUMERIC NOT NULL,
			delivery_fee NUMERIC NOT NULL DEFAULT 0,
			total NUMERIC NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			item_count INTEGER NOT NULL DEFAULT 0,
			order_date DATE NOT NULL,
			created_at DATETIME NOT NULL,
			created_by TEXT NOT NULL
		)`,
		`CREATE TABLE order_items (
			id TEXT PRIMARY KEY,
			order_id TEXT NOT NULL,
			meal_id TEXT NOT NULL,
			qty INTEGER NOT NULL,
			created_at DATETIME
		)`,
		`CREATE TABLE meals (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at DATETIME
		)`,
	} {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}

func seedOrder(t *testing.T, db *gorm.DB, name string, orderDate, createdAt time.Time) uuid.UUID {
	t.Helper()

	order := models.Order{
		ID:           uuid.New(),
		CustomerName: name,
		OrderType:    enums.OrderTypeSingle,
		Status:       enums.OrderStatusPending,
		Subtotal:     decimal.NewFromInt(9800),
		Total:        decimal.NewFromInt(9800),
		ItemCount:    1,
		OrderDate:    orderDate,
		CreatedAt:    createdAt,
		CreatedBy:    uuid.New(),
	}
	require.NoError(t, db.Create(&order).Error)
	return order.ID
}

func TestListBetween_FiltersOnRegistrationTime(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)

	now := time.Date(2025, 8, 29, 14, 0, 0, 0, time.UTC)
	startOfToday := time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC)
	lastWeek := now.AddDate(0, 0, -7)

	// backdated sale entered today must show up in today's window
	backdated := seedOrder(t, db, "Romina", lastWeek, now)
	// a sale registered last week stays out even if it is dated today
	seedOrder(t, db, "Javier", startOfToday, lastWeek)

	got, err := repo.ListBetween(context.Background(), startOfToday, now)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, backdated, got[0].ID)
	assert.Equal(t, "Romina", got[0].CustomerName)
}

func TestListBetween_OrdersByCreatedAtAscending(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)

	base := time.Date(2025, 8, 29, 9, 0, 0, 0, time.UTC)
	later := seedOrder(t, db, "Caro", base, base.Add(2*time.Hour))
	earlier := seedOrder(t, db, "Marta", base, base.Add(time.Hour))

	got, err := repo.ListBetween(context.Background(), base, base.Add(3*time.Hour))
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, earlier, got[0].ID)
	assert.Equal(t, later, got[1].ID)
}
