package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"printshop/internal/model"
)

var (
	ErrNotFound         = errors.New("order not found")
	ErrDuplicateOrderID = errors.New("order id already exists")
)

const orderColumns = `id, order_id, name, copies, paper_size, print_side, color, total, status,
	payment_method, payment_status, file_info, created_at`

type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts the order and assigns its public ORDER_<n> id from order_number_seq in the same
// statement, so concurrent inserts never compute the same number.
func (r *OrderRepository) Create(ctx context.Context, o *model.Order) (*model.Order, error) {
	query := `
		WITH next AS (SELECT nextval('order_number_seq') AS n)
		INSERT INTO orders (order_id, name, copies, paper_size, print_side, color, total, status, file_info)
		SELECT 'ORDER_' || next.n, $1, $2, $3, $4, $5, $6, $7, $8 FROM next
		RETURNING ` + orderColumns

	var created model.Order
	err := r.db.GetContext(ctx, &created, query,
		o.Name, o.Copies, o.PaperSize, o.PrintSide, o.Color, o.Total, o.Status, o.FileInfo,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrDuplicateOrderID
		}
		return nil, fmt.Errorf("insert order: %w", err)
	}

	return &created, nil
}

func (r *OrderRepository) GetByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	var o model.Order
	err := r.db.GetContext(ctx, &o, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	return &o, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]model.Order, error) {
	orders := make([]model.Order, 0)
	err := r.db.SelectContext(ctx, &orders, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	return orders, nil
}

// ListInProgress returns up to limit orders that have not reached the terminal status, oldest first.
func (r *OrderRepository) ListInProgress(ctx context.Context, limit int) ([]model.Order, error) {
	orders := make([]model.Order, 0, limit)
	err := r.db.SelectContext(ctx, &orders, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE status <> $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2
	`, model.StatusCompleted, limit)
	if err != nil {
		return nil, fmt.Errorf("query in-progress orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID string, status model.Status) (*model.Order, error) {
	var o model.Order
	err := r.db.GetContext(ctx, &o,
		`UPDATE orders SET status = $1 WHERE order_id = $2 RETURNING `+orderColumns,
		status, orderID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update order status %s: %w", orderID, err)
	}
	return &o, nil
}

func (r *OrderRepository) UpdatePayment(ctx context.Context, orderID, method, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET payment_method = $1, payment_status = $2 WHERE order_id = $3`,
		method, status, orderID,
	)
	if err != nil {
		return fmt.Errorf("update payment %s: %w", orderID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update payment %s: %w", orderID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Earnings sums totals of completed orders created at or after each window start.
func (r *OrderRepository) Earnings(ctx context.Context, todayStart, weekStart time.Time) (*model.Earnings, error) {
	var e model.Earnings
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(total) FILTER (WHERE created_at >= $1), 0),
			COALESCE(SUM(total) FILTER (WHERE created_at >= $2), 0)
		FROM orders
		WHERE status = $3
	`, todayStart, weekStart, model.StatusCompleted).Scan(&e.Today, &e.Weekly)
	if err != nil {
		return nil, fmt.Errorf("sum earnings: %w", err)
	}
	return &e, nil
}
