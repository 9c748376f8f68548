package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/zullfi95/paulpay/internal/domain/errors"
	"github.com/zullfi95/paulpay/internal/domain/model"
	"github.com/zullfi95/paulpay/internal/domain/repository"
)

// pool abstracts pgxpool.Pool so tests can substitute a mock.
type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage is the order repository backed by PostgreSQL.
type Storage struct {
	pool   pool
	logger *slog.Logger
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pgPool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pgPool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pgPool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Orders returns the order repository view of this storage.
func (s *Storage) Orders() repository.OrderRepository {
	return s
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            status TEXT NOT NULL,
            final_amount TEXT NOT NULL,
            currency TEXT NOT NULL,
            customer_ref TEXT NOT NULL DEFAULT '',
            description TEXT NOT NULL DEFAULT '',
            payment_status TEXT NOT NULL,
            payment_attempts INT NOT NULL DEFAULT 0,
            algoritma_order_id TEXT UNIQUE,
            payment_url TEXT,
            amount_charged TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_reconcile ON orders(updated_at)
            WHERE status = 'pending_payment' AND algoritma_order_id IS NOT NULL`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const orderColumns = `id, status, final_amount, currency, customer_ref, description,
       payment_status, payment_attempts, algoritma_order_id, payment_url, amount_charged,
       created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.Status, &o.FinalAmount, &o.Currency, &o.CustomerRef, &o.Description,
		&o.PaymentStatus, &o.PaymentAttempts, &o.AlgoritmaOrderID, &o.PaymentURL, &o.AmountCharged,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persists a new order and returns it with generated fields filled in.
func (s *Storage) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (status, final_amount, currency, customer_ref, description, payment_status)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, created_at, updated_at`
	created := *order
	err := s.pool.QueryRow(ctx, query,
		order.Status, order.FinalAmount, order.Currency, order.CustomerRef, order.Description, order.PaymentStatus,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetByID fetches one order or returns ErrNotFound.
func (s *Storage) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// ClaimPaymentAttempt increments the attempt counter under the creation guards
// in a single conditional update. On a miss the order is re-read to name the
// violated guard.
func (s *Storage) ClaimPaymentAttempt(ctx context.Context, orderID int64, maxAttempts int) (int, error) {
	const query = `UPDATE orders
                   SET payment_attempts = payment_attempts + 1, updated_at = NOW()
                   WHERE id = $1
                     AND status IN ('submitted', 'pending_payment')
                     AND payment_attempts < $2
                     AND algoritma_order_id IS NULL
                   RETURNING payment_attempts`
	var attempts int
	err := s.pool.QueryRow(ctx, query, orderID, maxAttempts).Scan(&attempts)
	if err == nil {
		return attempts, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	order, err := s.GetByID(ctx, orderID)
	if err != nil {
		return 0, err
	}
	switch {
	case order.HasPayment():
		return 0, domainErrors.ErrAlreadyExists
	case !order.Status.Payable():
		return 0, domainErrors.ErrOrderNotPayable
	default:
		return 0, domainErrors.ErrAttemptsExceeded
	}
}

// AttachPayment records the created gateway order. The algoritma_order_id
// column is written at most once per order.
func (s *Storage) AttachPayment(ctx context.Context, orderID int64, gatewayOrderID, paymentURL string) error {
	const query = `UPDATE orders
                   SET algoritma_order_id = $2, payment_url = $3, status = 'pending_payment', updated_at = NOW()
                   WHERE id = $1 AND algoritma_order_id IS NULL`
	tag, err := s.pool.Exec(ctx, query, orderID, gatewayOrderID, paymentURL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrAlreadyExists
	}
	return nil
}

// SetPaymentStatus persists a payment status without touching the order status.
func (s *Storage) SetPaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error {
	const query = `UPDATE orders SET payment_status = $2, updated_at = NOW() WHERE id = $1`
	tag, err := s.pool.Exec(ctx, query, orderID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// MarkPaid transitions the order to paid exactly once.
func (s *Storage) MarkPaid(ctx context.Context, orderID int64, amountCharged string) (bool, error) {
	const query = `UPDATE orders
                   SET payment_status = 'charged', status = 'paid', amount_charged = $2, updated_at = NOW()
                   WHERE id = $1 AND status <> 'paid'`
	tag, err := s.pool.Exec(ctx, query, orderID, amountCharged)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SelectBatchForReconcile picks pending payments least recently touched,
// bumping updated_at so concurrent sweeps rotate through the backlog.
func (s *Storage) SelectBatchForReconcile(ctx context.Context, limit int) ([]model.Order, error) {
	selectQuery := `SELECT ` + orderColumns + `
                    FROM orders
                    WHERE status = 'pending_payment'
                      AND algoritma_order_id IS NOT NULL
                      AND payment_status IN ('pending', 'authorized')
                    ORDER BY updated_at
                    LIMIT $1
                    FOR UPDATE SKIP LOCKED`

	var orders []model.Order
	err := s.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			order, err := scanOrder(rows)
			if err != nil {
				return err
			}
			orders = append(orders, *order)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for _, order := range orders {
			if _, err := tx.Exec(ctx, `UPDATE orders SET updated_at=NOW() WHERE id=$1`, order.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
