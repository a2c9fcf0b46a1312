package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/hafiz27/billflow/internal/models"
	"github.com/hafiz27/billflow/internal/transfer"
)

type fakeUserRepo struct {
	getByID func(ctx context.Context, id int64) (*models.User, bool, error)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, bool, error) {
	return f.getByID(ctx, id)
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	return nil, false, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *sql.Tx, user *models.User) (int64, error) {
	return 0, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	return nil
}

type fakePlanRepo struct {
	listActive func(ctx context.Context) ([]*models.SubscriptionPlan, error)
	getByID    func(ctx context.Context, id int64) (*models.SubscriptionPlan, bool, error)
}

func (f *fakePlanRepo) ListActive(ctx context.Context) ([]*models.SubscriptionPlan, error) {
	return f.listActive(ctx)
}

func (f *fakePlanRepo) GetByID(ctx context.Context, id int64) (*models.SubscriptionPlan, bool, error) {
	return f.getByID(ctx, id)
}

type fakeSubscriptionRepo struct {
	getCurrent  func(ctx context.Context, userID int64) (*models.UserSubscription, bool, error)
	createTrial func(ctx context.Context, userID int64) (int64, error)
	activate    func(ctx context.Context, subscriptionID, planID int64) (bool, error)
	cancel      func(ctx context.Context, subscriptionID int64) error
	markExpired func(ctx context.Context, now time.Time) (int64, error)
}

func (f *fakeSubscriptionRepo) GetCurrentByUserID(ctx context.Context, userID int64) (*models.UserSubscription, bool, error) {
	return f.getCurrent(ctx, userID)
}

func (f *fakeSubscriptionRepo) CreateTrial(ctx context.Context, userID int64) (int64, error) {
	return f.createTrial(ctx, userID)
}

func (f *fakeSubscriptionRepo) Activate(ctx context.Context, subscriptionID, planID int64) (bool, error) {
	return f.activate(ctx, subscriptionID, planID)
}

func (f *fakeSubscriptionRepo) Cancel(ctx context.Context, subscriptionID int64) error {
	return f.cancel(ctx, subscriptionID)
}

func (f *fakeSubscriptionRepo) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	return f.markExpired(ctx, now)
}

type fakePaymentRepo struct {
	create       func(ctx context.Context, payment *models.Payment) (int64, error)
	getByBillID  func(ctx context.Context, billID string) (*models.Payment, bool, error)
	listByUserID func(ctx context.Context, userID int64) ([]*models.Payment, error)
	markPaid     func(ctx context.Context, billID string, paidAt time.Time) (bool, error)
	markFailed   func(ctx context.Context, billID string) (bool, error)
}

func (f *fakePaymentRepo) Create(ctx context.Context, payment *models.Payment) (int64, error) {
	return f.create(ctx, payment)
}

func (f *fakePaymentRepo) GetByBillID(ctx context.Context, billID string) (*models.Payment, bool, error) {
	return f.getByBillID(ctx, billID)
}

func (f *fakePaymentRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.Payment, error) {
	return f.listByUserID(ctx, userID)
}

func (f *fakePaymentRepo) MarkPaid(ctx context.Context, billID string, paidAt time.Time) (bool, error) {
	return f.markPaid(ctx, billID, paidAt)
}

func (f *fakePaymentRepo) MarkFailed(ctx context.Context, billID string) (bool, error) {
	return f.markFailed(ctx, billID)
}

type fakeBillplzService struct {
	createBill     func(ctx context.Context, req *transfer.CreateBillRequest) (*transfer.CheckoutSession, error)
	verifyCallback func(data *transfer.BillplzCallback) bool
}

func (f *fakeBillplzService) CreateBill(ctx context.Context, req *transfer.CreateBillRequest) (*transfer.CheckoutSession, error) {
	return f.createBill(ctx, req)
}

func (f *fakeBillplzService) VerifyCallback(data *transfer.BillplzCallback) bool {
	if f.verifyCallback == nil {
		return true
	}
	return f.verifyCallback(data)
}
