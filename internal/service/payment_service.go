package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/hafiz27/billflow/internal/models"
	"github.com/hafiz27/billflow/internal/repository"
	"github.com/hafiz27/billflow/internal/transfer"
	"github.com/hafiz27/billflow/pkg/apperrors"
)

type PaymentService interface {
	CreateCheckout(ctx context.Context, userID, planID int64, idempotencyKey string) (*transfer.CheckoutResponse, error)
	History(ctx context.Context, userID int64) ([]*models.Payment, error)
	CheckPayment(ctx context.Context, billID string, paidHint bool) (*transfer.PaymentVerification, error)
	ProcessCallback(ctx context.Context, data *transfer.BillplzCallback) error
	ExpirePayment(ctx context.Context, billID string) error
}

type paymentService struct {
	u  repository.UserRepository
	pl repository.PlanRepository
	s  repository.SubscriptionRepository
	p  repository.PaymentRepository
	b  BillplzService
	r  *ReceiptService
}

func NewPaymentService(
	u repository.UserRepository,
	pl repository.PlanRepository,
	s repository.SubscriptionRepository,
	p repository.PaymentRepository,
	b BillplzService,
	r *ReceiptService) PaymentService {
	return &paymentService{
		u:  u,
		pl: pl,
		s:  s,
		p:  p,
		b:  b,
		r:  r,
	}
}

func (s *paymentService) CreateCheckout(ctx context.Context, userID, planID int64, idempotencyKey string) (*transfer.CheckoutResponse, error) {
	user, isExist, err := s.u.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrStoreUnavailable(err)
	}

	if !isExist || user.Email == "" {
		return nil, apperrors.ErrUnauthenticated("User identity could not be resolved")
	}

	plan, isExist, err := s.pl.GetByID(ctx, planID)
	if err != nil {
		return nil, apperrors.ErrStoreUnavailable(err)
	}

	if !isExist || !plan.IsActive {
		return nil, apperrors.ErrPlanNotFound("Subscription plan not found")
	}

	customerName := user.Name
	if customerName == "" {
		customerName = EmailLocalPart(user.Email)
	}

	if idempotencyKey == "" {
		idempotencyKey, err = gonanoid.New()
		if err != nil {
			slog.Info(err.Error())
			return nil, fmt.Errorf("Error generating checkout reference")
		}
	}

	session, err := s.b.CreateBill(ctx, &transfer.CreateBillRequest{
		UserID:         userID,
		PlanID:         planID,
		Amount:         plan.Price,
		Currency:       plan.Currency,
		Description:    fmt.Sprintf("%s subscription", plan.Name),
		CustomerEmail:  user.Email,
		CustomerName:   customerName,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	return &transfer.CheckoutResponse{
		Success:    true,
		PaymentID:  session.BillID,
		PaymentURL: session.PaymentURL,
	}, nil
}

func (s *paymentService) History(ctx context.Context, userID int64) ([]*models.Payment, error) {
	payments, err := s.p.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrStoreUnavailable(err)
	}
	return payments, nil
}

// CheckPayment serves the browser return trip. The stored row is the
// system of record; the redirect "paid" flag only lifts the confirmed
// flag for immediate UI feedback while the callback is still in flight.
func (s *paymentService) CheckPayment(ctx context.Context, billID string, paidHint bool) (*transfer.PaymentVerification, error) {
	if billID == "" {
		return nil, apperrors.ErrInvalidRequest("Bill id is required")
	}

	payment, isExist, err := s.p.GetByBillID(ctx, billID)
	if err != nil {
		return nil, apperrors.ErrStoreUnavailable(err)
	}

	if !isExist {
		return nil, apperrors.ErrNotFound("Payment not found")
	}

	return &transfer.PaymentVerification{
		BillID:    payment.BillplzBillID,
		Status:    string(payment.Status),
		Confirmed: payment.Status == models.PaymentStatusPaid || paidHint,
		Amount:    payment.Amount,
		Currency:  payment.Currency,
		PaidAt:    payment.PaidAt,
	}, nil
}

func (s *paymentService) ProcessCallback(ctx context.Context, data *transfer.BillplzCallback) error {
	if !s.b.VerifyCallback(data) {
		err := errors.New("callback signature mismatch")
		slog.Info(err.Error())
		return apperrors.ErrInvalidRequest("Invalid callback signature")
	}

	if data.Paid != "true" && data.Paid != "1" {
		updated, err := s.p.MarkFailed(ctx, data.ID)
		if err != nil {
			return apperrors.ErrStoreUnavailable(err)
		}
		if updated {
			slog.Info(fmt.Sprintf("payment %s marked failed via callback", data.ID))
		}
		return nil
	}

	paidAt := parsePaidAt(data.PaidAt)

	updated, err := s.p.MarkPaid(ctx, data.ID, paidAt)
	if err != nil {
		return apperrors.ErrStoreUnavailable(err)
	}

	if !updated {
		// Already terminal, duplicate delivery. Nothing left to do.
		slog.Info(fmt.Sprintf("payment %s already settled, ignoring callback", data.ID))
		return nil
	}

	payment, isExist, err := s.p.GetByBillID(ctx, data.ID)
	if err != nil || !isExist {
		if err != nil {
			return apperrors.ErrStoreUnavailable(err)
		}
		return apperrors.ErrNotFound("Payment not found")
	}

	planID := planIDFromMetadata(payment.Metadata)
	if payment.SubscriptionID != nil && planID != 0 {
		ok, err := s.s.Activate(ctx, *payment.SubscriptionID, planID)
		if err != nil {
			return apperrors.ErrStoreUnavailable(err)
		}
		if !ok {
			slog.Info(fmt.Sprintf("activation refused for subscription %d", *payment.SubscriptionID))
		}
	}

	if s.r != nil {
		plan, isExist, err := s.pl.GetByID(ctx, planID)
		if err != nil || !isExist {
			plan = nil
		}
		if err := s.r.Archive(ctx, payment, plan); err != nil {
			slog.Info(fmt.Sprintf("receipt archive failed for bill %s: %v", data.ID, err))
		}
	}

	return nil
}

// ExpirePayment marks a checkout session failed if the gateway never
// confirmed it within the due window.
func (s *paymentService) ExpirePayment(ctx context.Context, billID string) error {
	updated, err := s.p.MarkFailed(ctx, billID)
	if err != nil {
		return err
	}

	if updated {
		slog.Info(fmt.Sprintf("pending payment %s expired", billID))
	}
	return nil
}

func parsePaidAt(value string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05 -0700", "2006-01-02T15:04:05.000-07:00"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Now()
}

func planIDFromMetadata(metadata string) int64 {
	var meta struct {
		PlanID int64 `json:"plan_id"`
	}
	if err := json.Unmarshal([]byte(metadata), &meta); err != nil {
		slog.Info(err.Error())
		return 0
	}
	return meta.PlanID
}
