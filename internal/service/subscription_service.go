package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hafiz27/billflow/internal/models"
	"github.com/hafiz27/billflow/internal/repository"
	"github.com/hafiz27/billflow/internal/transfer"
	"github.com/hafiz27/billflow/pkg/apperrors"
)

type SubscriptionService interface {
	GetCurrent(ctx context.Context, userID int64) (*models.UserSubscription, bool, error)
	GetOrProvision(ctx context.Context, userID int64) (*models.UserSubscription, error)
	Status(ctx context.Context, userID int64) (*transfer.SubscriptionInfo, error)
	Cancel(ctx context.Context, userID int64) error
	ProcessExpired(ctx context.Context) (int64, error)
}

type subscriptionService struct {
	s repository.SubscriptionRepository
}

func NewSubscriptionService(s repository.SubscriptionRepository) SubscriptionService {
	return &subscriptionService{
		s: s,
	}
}

func (s *subscriptionService) GetCurrent(ctx context.Context, userID int64) (*models.UserSubscription, bool, error) {
	sub, isExist, err := s.s.GetCurrentByUserID(ctx, userID)
	if err != nil {
		return nil, false, apperrors.ErrStoreUnavailable(err)
	}
	return sub, isExist, nil
}

// GetOrProvision returns the current subscription, creating a 7-day trial
// on first access. Provisioning itself is not idempotent, so the existence
// check always runs first.
func (s *subscriptionService) GetOrProvision(ctx context.Context, userID int64) (*models.UserSubscription, error) {
	sub, isExist, err := s.s.GetCurrentByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrStoreUnavailable(err)
	}

	if isExist {
		return sub, nil
	}

	_, err = s.s.CreateTrial(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrStoreUnavailable(err)
	}

	sub, isExist, err = s.s.GetCurrentByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrStoreUnavailable(err)
	}

	if !isExist {
		err = errors.New("trial subscription missing after provisioning")
		slog.Info(err.Error())
		return nil, err
	}

	return sub, nil
}

func (s *subscriptionService) Status(ctx context.Context, userID int64) (*transfer.SubscriptionInfo, error) {
	sub, err := s.GetOrProvision(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &transfer.SubscriptionInfo{
		ID:                 sub.ID,
		Status:             string(sub.Status),
		PlanID:             sub.PlanID,
		TrialEnd:           sub.TrialEnd,
		RemainingTrialDays: RemainingTrialDays(sub, now),
		CurrentPeriodEnd:   sub.CurrentPeriodEnd,
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
		CanTransact:        CanTransact(sub, now),
	}, nil
}

func (s *subscriptionService) Cancel(ctx context.Context, userID int64) error {
	sub, isExist, err := s.s.GetCurrentByUserID(ctx, userID)
	if err != nil {
		return apperrors.ErrStoreUnavailable(err)
	}

	if !isExist {
		return apperrors.ErrNotFound("No subscription to cancel")
	}

	if sub.Status == models.SubscriptionStatusExpired || sub.Status == models.SubscriptionStatusCancelled {
		return apperrors.ErrInvalidRequest("Subscription is not active")
	}

	err = s.s.Cancel(ctx, sub.ID)
	if err != nil {
		return apperrors.ErrStoreUnavailable(err)
	}
	return nil
}

func (s *subscriptionService) ProcessExpired(ctx context.Context) (int64, error) {
	count, err := s.s.MarkExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	if count > 0 {
		slog.Info(fmt.Sprintf("%d subscriptions marked expired", count))
	}
	return count, nil
}
