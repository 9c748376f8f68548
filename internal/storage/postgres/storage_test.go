package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/zullfi95/paulpay/internal/domain/errors"
	"github.com/zullfi95/paulpay/internal/domain/model"
)

func newMockStorage(t *testing.T) (*Storage, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(mock.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &Storage{pool: mock, logger: logger}, mock
}

func orderRow(id int64, status model.OrderStatus, attempts int, gatewayID, paymentURL *string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "status", "final_amount", "currency", "customer_ref", "description",
		"payment_status", "payment_attempts", "algoritma_order_id", "payment_url", "amount_charged",
		"created_at", "updated_at",
	}).AddRow(
		id, status, "100.00", "AZN", "John Doe", "Catering order",
		model.PaymentStatusPending, attempts, gatewayID, paymentURL, (*string)(nil),
		now, now,
	)
}

func strPtr(s string) *string { return &s }

func TestCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(model.OrderStatusSubmitted, "100.00", "AZN", "John Doe", "Catering order", model.PaymentStatusPending).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	created, err := storage.Create(context.Background(), &model.Order{
		Status:        model.OrderStatusSubmitted,
		FinalAmount:   "100.00",
		Currency:      "AZN",
		CustomerRef:   "John Doe",
		Description:   "Catering order",
		PaymentStatus: model.PaymentStatusPending,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 7 {
		t.Fatalf("expected generated id 7, got %d", created.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	if _, err := storage.GetByID(context.Background(), 99); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetByID(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(orderRow(1, model.OrderStatusPendingPayment, 1, strPtr("123456789"), strPtr("https://payment.example.com/hpp/123456789")))

	order, err := storage.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != 1 || !order.HasPayment() || order.PaymentAttempts != 1 {
		t.Fatalf("unexpected order %+v", order)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestClaimPaymentAttempt(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery("UPDATE orders").
		WithArgs(int64(1), 3).
		WillReturnRows(pgxmock.NewRows([]string{"payment_attempts"}).AddRow(2))

	attempts, err := storage.ClaimPaymentAttempt(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected attempts=2, got %d", attempts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestClaimPaymentAttemptGuards(t *testing.T) {
	tests := []struct {
		name    string
		row     *pgxmock.Rows
		wantErr error
	}{
		{
			name:    "payment already attached",
			row:     orderRow(1, model.OrderStatusPendingPayment, 1, strPtr("123456789"), strPtr("url")),
			wantErr: domainErrors.ErrAlreadyExists,
		},
		{
			name:    "order not payable",
			row:     orderRow(1, model.OrderStatusCompleted, 0, nil, nil),
			wantErr: domainErrors.ErrOrderNotPayable,
		},
		{
			name:    "attempts exhausted",
			row:     orderRow(1, model.OrderStatusSubmitted, 3, nil, nil),
			wantErr: domainErrors.ErrAttemptsExceeded,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, mock := newMockStorage(t)

			mock.ExpectQuery("UPDATE orders").
				WithArgs(int64(1), 3).
				WillReturnError(pgx.ErrNoRows)
			mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").
				WithArgs(int64(1)).
				WillReturnRows(tt.row)

			if _, err := storage.ClaimPaymentAttempt(context.Background(), 1, 3); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestAttachPayment(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectExec("UPDATE orders").
		WithArgs(int64(1), "123456789", "https://payment.example.com/hpp/123456789").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := storage.AttachPayment(context.Background(), 1, "123456789", "https://payment.example.com/hpp/123456789")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAttachPaymentOnlyOnce(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectExec("UPDATE orders").
		WithArgs(int64(1), "987654321", "https://payment.example.com/hpp/987654321").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := storage.AttachPayment(context.Background(), 1, "987654321", "https://payment.example.com/hpp/987654321")
	if !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSetPaymentStatus(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectExec("UPDATE orders SET payment_status").
		WithArgs(int64(1), model.PaymentStatusFailed).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := storage.SetPaymentStatus(context.Background(), 1, model.PaymentStatusFailed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestMarkPaid(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectExec("UPDATE orders").
		WithArgs(int64(1), "100.00").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	transitioned, err := storage.MarkPaid(context.Background(), 1, "100.00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !transitioned {
		t.Fatal("expected a transition on the first mark")
	}

	mock.ExpectExec("UPDATE orders").
		WithArgs(int64(1), "100.00").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	transitioned, err = storage.MarkPaid(context.Background(), 1, "100.00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transitioned {
		t.Fatal("expected no transition on an already paid order")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSelectBatchForReconcile(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FOR UPDATE SKIP LOCKED").
		WithArgs(10).
		WillReturnRows(orderRow(1, model.OrderStatusPendingPayment, 1, strPtr("123456789"), strPtr("url")))
	mock.ExpectExec("UPDATE orders SET updated_at").
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	orders, err := storage.SelectBatchForReconcile(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != 1 {
		t.Fatalf("unexpected batch %+v", orders)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSelectBatchForReconcileRollsBackOnError(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FOR UPDATE SKIP LOCKED").
		WithArgs(10).
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	if _, err := storage.SelectBatchForReconcile(context.Background(), 10); err == nil {
		t.Fatal("expected query error to propagate")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestHealthCheck(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectPing()
	if err := storage.HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
