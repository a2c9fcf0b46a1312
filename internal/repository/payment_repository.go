package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/hafiz27/billflow/internal/models"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) (int64, error)
	GetByBillID(ctx context.Context, billID string) (*models.Payment, bool, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.Payment, error)
	MarkPaid(ctx context.Context, billID string, paidAt time.Time) (bool, error)
	MarkFailed(ctx context.Context, billID string) (bool, error)
}

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) (int64, error) {
	query := `
		INSERT INTO payments (user_id, subscription_id, amount, currency, status,
			payment_method, billplz_bill_id, billplz_url, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, payment.UserID, payment.SubscriptionID,
		payment.Amount, payment.Currency, payment.Status, payment.PaymentMethod,
		payment.BillplzBillID, payment.BillplzURL, payment.Metadata).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *paymentRepository) GetByBillID(ctx context.Context, billID string) (*models.Payment, bool, error) {
	var payment models.Payment
	query := `
		SELECT id, user_id, subscription_id, amount, currency, status,
			payment_method, billplz_bill_id, billplz_url, paid_at, metadata, created_at
		FROM payments
		WHERE billplz_bill_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, billID).Scan(
		&payment.ID, &payment.UserID, &payment.SubscriptionID, &payment.Amount,
		&payment.Currency, &payment.Status, &payment.PaymentMethod,
		&payment.BillplzBillID, &payment.BillplzURL, &payment.PaidAt,
		&payment.Metadata, &payment.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &payment, true, nil
}

func (r *paymentRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Payment, error) {
	query := `
		SELECT id, user_id, subscription_id, amount, currency, status,
			payment_method, billplz_bill_id, billplz_url, paid_at, metadata, created_at
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		var payment models.Payment
		err := rows.Scan(&payment.ID, &payment.UserID, &payment.SubscriptionID,
			&payment.Amount, &payment.Currency, &payment.Status, &payment.PaymentMethod,
			&payment.BillplzBillID, &payment.BillplzURL, &payment.PaidAt,
			&payment.Metadata, &payment.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		payments = append(payments, &payment)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return payments, nil
}

// MarkPaid only moves a pending payment to paid. Terminal states written
// earlier by the gateway callback are never overwritten.
func (r *paymentRepository) MarkPaid(ctx context.Context, billID string, paidAt time.Time) (bool, error) {
	query := `
		UPDATE payments
		SET status = 'paid',
			paid_at = $1
		WHERE billplz_bill_id = $2 AND status = 'pending'
	`
	result, err := r.db.ExecContext(ctx, query, paidAt, billID)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	count, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return count > 0, nil
}

func (r *paymentRepository) MarkFailed(ctx context.Context, billID string) (bool, error) {
	query := `
		UPDATE payments
		SET status = 'failed'
		WHERE billplz_bill_id = $1 AND status = 'pending'
	`
	result, err := r.db.ExecContext(ctx, query, billID)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	count, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return count > 0, nil
}
