package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/hafiz27/billflow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	subID := int64(5)
	payment := &models.Payment{
		UserID:         10,
		SubscriptionID: &subID,
		Amount:         19.99,
		Currency:       "MYR",
		Status:         models.PaymentStatusPending,
		PaymentMethod:  "billplz",
		BillplzBillID:  "abc123",
		BillplzURL:     "https://www.billplz.com/bills/abc123",
		Metadata:       `{"plan_id":2}`,
	}

	mock.ExpectQuery("INSERT INTO payments").
		WithArgs(payment.UserID, payment.SubscriptionID, payment.Amount, payment.Currency,
			payment.Status, payment.PaymentMethod, payment.BillplzBillID,
			payment.BillplzURL, payment.Metadata).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	r := NewPaymentRepository(db)

	id, err := r.Create(context.Background(), payment)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentGetByBillID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "subscription_id", "amount", "currency", "status",
		"payment_method", "billplz_bill_id", "billplz_url", "paid_at", "metadata", "created_at",
	}).AddRow(int64(7), int64(10), int64(5), 19.99, "MYR", "pending",
		"billplz", "abc123", "https://www.billplz.com/bills/abc123", nil, "{}", now)

	mock.ExpectQuery("SELECT id, user_id, subscription_id").
		WithArgs("abc123").
		WillReturnRows(rows)

	r := NewPaymentRepository(db)

	payment, isExist, err := r.GetByBillID(context.Background(), "abc123")
	require.NoError(t, err)
	require.True(t, isExist)
	assert.Equal(t, int64(7), payment.ID)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.Nil(t, payment.PaidAt)
}

func TestPaymentGetByBillID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, user_id, subscription_id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	r := NewPaymentRepository(db)

	payment, isExist, err := r.GetByBillID(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, isExist)
	assert.Nil(t, payment)
}

func TestPaymentListByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	paidAt := now.Add(-time.Hour)
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "subscription_id", "amount", "currency", "status",
		"payment_method", "billplz_bill_id", "billplz_url", "paid_at", "metadata", "created_at",
	}).AddRow(int64(8), int64(10), int64(5), 19.99, "MYR", "paid",
		"billplz", "def456", "https://www.billplz.com/bills/def456", paidAt, "{}", now).
		AddRow(int64(7), int64(10), int64(5), 19.99, "MYR", "failed",
			"billplz", "abc123", "https://www.billplz.com/bills/abc123", nil, "{}", now.Add(-24*time.Hour))

	mock.ExpectQuery("SELECT id, user_id, subscription_id").
		WithArgs(int64(10)).
		WillReturnRows(rows)

	r := NewPaymentRepository(db)

	payments, err := r.ListByUserID(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, models.PaymentStatusPaid, payments[0].Status)
	require.NotNil(t, payments[0].PaidAt)
	assert.Equal(t, models.PaymentStatusFailed, payments[1].Status)
}

func TestPaymentMarkPaid(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	paidAt := time.Now()
	mock.ExpectExec("UPDATE payments").
		WithArgs(paidAt, "abc123").
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := NewPaymentRepository(db)

	updated, err := r.MarkPaid(context.Background(), "abc123", paidAt)
	require.NoError(t, err)
	assert.True(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentMarkPaid_AlreadyTerminal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	paidAt := time.Now()
	mock.ExpectExec("UPDATE payments").
		WithArgs(paidAt, "abc123").
		WillReturnResult(sqlmock.NewResult(0, 0))

	r := NewPaymentRepository(db)

	updated, err := r.MarkPaid(context.Background(), "abc123", paidAt)
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestPaymentMarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE payments").
		WithArgs("abc123").
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := NewPaymentRepository(db)

	updated, err := r.MarkFailed(context.Background(), "abc123")
	require.NoError(t, err)
	assert.True(t, updated)
}
