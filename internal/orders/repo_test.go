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

	"github.com/boticaviva/backend/pkg/db/models"
	"github.com/boticaviva/backend/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ordersTable := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  customer_name TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  address TEXT,
  delivery_mode TEXT NOT NULL DEFAULT 'delivery',
  total TEXT NOT NULL,
  status TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderLines := `
CREATE TABLE IF NOT EXISTS order_lines (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  brand TEXT,
  unit_price TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME
);`
	orderStages := `
CREATE TABLE IF NOT EXISTS order_stages (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  position INTEGER NOT NULL,
  status TEXT NOT NULL,
  title TEXT NOT NULL,
  description TEXT,
  completed INTEGER NOT NULL DEFAULT 0,
  completed_at DATETIME,
  UNIQUE (order_id, position)
);`

	for _, stmt := range []string{ordersTable, orderLines, orderStages} {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func mustCreateTestOrder(t *testing.T, repo Repo, code string, createdAt time.Time) *models.Order {
	t.Helper()

	now := createdAt
	order := &models.Order{
		ID:            uuid.New(),
		Code:          code,
		CustomerName:  "Lucía Paredes",
		CustomerEmail: "lucia@example.com",
		Address:       "Av. Arequipa 1234, Lima",
		DeliveryMode:  "delivery",
		Total:         decimal.RequireFromString("33.90"),
		Status:        enums.OrderStatusReceived,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
		Lines: []models.OrderLine{
			{
				ID:          uuid.New(),
				ProductID:   "bv-001",
				ProductName: "Paracetamol 500mg",
				UnitPrice:   decimal.RequireFromString("12.50"),
				Quantity:    2,
			},
			{
				ID:          uuid.New(),
				ProductID:   "bv-002",
				ProductName: "Ibuprofeno 400mg",
				UnitPrice:   decimal.RequireFromString("8.90"),
				Quantity:    1,
			},
		},
	}
	for position, status := range []enums.OrderStatus{
		enums.OrderStatusReceived,
		enums.OrderStatusValidated,
		enums.OrderStatusPreparing,
		enums.OrderStatusShipped,
		enums.OrderStatusDelivered,
	} {
		stage := models.OrderStage{
			ID:       uuid.New(),
			Position: position,
			Status:   status,
			Title:    string(status),
		}
		if position == 0 {
			stage.Completed = true
			stage.CompletedAt = &now
		}
		order.Stages = append(order.Stages, stage)
	}

	require.NoError(t, repo.Create(context.Background(), order))
	return order
}

func TestRepoCreateAndFind(t *testing.T) {
	repo := NewRepo(setupOrdersTestDB(t))
	created := mustCreateTestOrder(t, repo, "S0010001", time.Now().UTC())

	found, err := repo.Find(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.Code, found.Code)
	assert.True(t, found.Total.Equal(decimal.RequireFromString("33.90")))
	require.Len(t, found.Lines, 2)
	require.Len(t, found.Stages, 5)
	for i, stage := range found.Stages {
		assert.Equal(t, i, stage.Position)
	}
	assert.True(t, found.Stages[0].Completed)
	assert.False(t, found.Stages[1].Completed)
}

func TestRepoFindByCodeIgnoresCase(t *testing.T) {
	repo := NewRepo(setupOrdersTestDB(t))
	created := mustCreateTestOrder(t, repo, "S0010002", time.Now().UTC())

	found, err := repo.FindByCode(context.Background(), "s0010002")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.FindByCode(context.Background(), "S0099999")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepoCodeExists(t *testing.T) {
	repo := NewRepo(setupOrdersTestDB(t))
	mustCreateTestOrder(t, repo, "S0010003", time.Now().UTC())

	taken, err := repo.CodeExists(context.Background(), "S0010003")
	require.NoError(t, err)
	assert.True(t, taken)

	free, err := repo.CodeExists(context.Background(), "S0098765")
	require.NoError(t, err)
	assert.False(t, free)
}

func TestRepoListNewestFirst(t *testing.T) {
	repo := NewRepo(setupOrdersTestDB(t))
	base := time.Now().UTC().Add(-time.Hour)
	older := mustCreateTestOrder(t, repo, "S0010004", base)
	newer := mustCreateTestOrder(t, repo, "S0010005", base.Add(time.Minute))

	rows, err := repo.List(context.Background())
	require.NoError(t, err)

	olderIdx, newerIdx := -1, -1
	for i, row := range rows {
		switch row.ID {
		case older.ID:
			olderIdx = i
		case newer.ID:
			newerIdx = i
		}
	}
	require.NotEqual(t, -1, olderIdx)
	require.NotEqual(t, -1, newerIdx)
	assert.Less(t, newerIdx, olderIdx)
}

func TestRepoCompleteStage(t *testing.T) {
	repo := NewRepo(setupOrdersTestDB(t))
	created := mustCreateTestOrder(t, repo, "S0010006", time.Now().UTC())

	now := time.Now().UTC()
	created.Stages[1].Completed = true
	created.Stages[1].CompletedAt = &now
	created.Status = enums.OrderStatusValidated
	require.NoError(t, repo.CompleteStage(context.Background(), created, 1))

	found, err := repo.Find(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusValidated, found.Status)
	assert.True(t, found.Stages[1].Completed)
	require.NotNil(t, found.Stages[1].CompletedAt)
	assert.False(t, found.Stages[2].Completed)

	err = repo.CompleteStage(context.Background(), created, 9)
	assert.Error(t, err)
}
