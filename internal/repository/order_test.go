package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/database"
	"printshop/internal/model"
	"printshop/internal/repository"
)

// setup connects to TEST_DATABASE_URI and empties the orders table; tests skip without it.
func setup(t *testing.T) (*repository.OrderRepository, *sqlx.DB) {
	t.Helper()

	uri := os.Getenv("TEST_DATABASE_URI")
	if uri == "" {
		t.Skip("TEST_DATABASE_URI is not set")
	}

	require.NoError(t, database.InitSchema(uri))

	db, err := database.NewDB(context.Background(), uri)
	require.NoError(t, err)

	reset := func() {
		_, err := db.Exec(`TRUNCATE TABLE orders RESTART IDENTITY`)
		require.NoError(t, err)
		_, err = db.Exec(`ALTER SEQUENCE order_number_seq RESTART WITH 1`)
		require.NoError(t, err)
	}
	reset()

	t.Cleanup(func() {
		reset()
		database.CloseDB(db)
	})

	return repository.NewOrderRepository(db), db
}

func newOrder(name string) *model.Order {
	return &model.Order{
		Name:      name,
		Copies:    10,
		PaperSize: "A3",
		PrintSide: "double-sided",
		Color:     "color",
		Total:     decimal.NewFromInt(59),
		Status:    model.StatusPending,
		FileInfo:  model.FileInfo(`{"fileId":"1700000000000-1.pdf"}`),
	}
}

func TestOrderRepository_CreateAssignsSequentialIDs(t *testing.T) {
	repo, _ := setup(t)
	ctx := context.Background()

	for i, want := range []string{"ORDER_1", "ORDER_2", "ORDER_3"} {
		created, err := repo.Create(ctx, newOrder("Alice"))
		require.NoError(t, err, "insert %d", i)
		assert.Equal(t, want, created.OrderID)
		assert.Equal(t, model.StatusPending, created.Status)
		assert.True(t, decimal.NewFromInt(59).Equal(created.Total))
		assert.JSONEq(t, `{"fileId":"1700000000000-1.pdf"}`, string(created.FileInfo))
		assert.Nil(t, created.PaymentMethod)
		assert.False(t, created.CreatedAt.IsZero())
	}
}

func TestOrderRepository_GetUpdateAndList(t *testing.T) {
	repo, _ := setup(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, newOrder("Alice"))
	require.NoError(t, err)
	second, err := repo.Create(ctx, newOrder("Bob"))
	require.NoError(t, err)

	got, err := repo.GetByOrderID(ctx, first.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	_, err = repo.GetByOrderID(ctx, "ORDER_404")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	updated, err := repo.UpdateStatus(ctx, first.OrderID, model.StatusPrinting)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPrinting, updated.Status)

	_, err = repo.UpdateStatus(ctx, "ORDER_404", model.StatusReady)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.UpdatePayment(ctx, second.OrderID, "online", "success"))
	paid, err := repo.GetByOrderID(ctx, second.OrderID)
	require.NoError(t, err)
	require.NotNil(t, paid.PaymentMethod)
	assert.Equal(t, "online", *paid.PaymentMethod)
	assert.Equal(t, "success", *paid.PaymentStatus)

	assert.ErrorIs(t, repo.UpdatePayment(ctx, "ORDER_404", "cash", "pending"), repository.ErrNotFound)

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.OrderID, orders[0].OrderID)

	inProgress, err := repo.ListInProgress(ctx, 1)
	require.NoError(t, err)
	require.Len(t, inProgress, 1)
	assert.Equal(t, first.OrderID, inProgress[0].OrderID)
}

func TestOrderRepository_Earnings(t *testing.T) {
	repo, db := setup(t)
	ctx := context.Background()

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := todayStart.AddDate(0, 0, -6)

	e, err := repo.Earnings(ctx, todayStart, weekStart)
	require.NoError(t, err)
	assert.True(t, e.Today.IsZero())
	assert.True(t, e.Weekly.IsZero())

	insert := func(total int64, status model.Status, createdAt time.Time) {
		o := newOrder("Carol")
		o.Total = decimal.NewFromInt(total)
		created, err := repo.Create(ctx, o)
		require.NoError(t, err)
		_, err = db.Exec(`UPDATE orders SET status = $1, created_at = $2 WHERE order_id = $3`, status, createdAt, created.OrderID)
		require.NoError(t, err)
	}

	insert(59, model.StatusCompleted, now)
	insert(11, model.StatusCompleted, todayStart.AddDate(0, 0, -3))
	insert(100, model.StatusReady, now)
	insert(7, model.StatusCompleted, todayStart.AddDate(0, 0, -10))

	e, err = repo.Earnings(ctx, todayStart, weekStart)
	require.NoError(t, err)
	assert.Equal(t, "59.00", e.Today.StringFixed(2))
	assert.Equal(t, "70.00", e.Weekly.StringFixed(2))
}
