package service

import (
	"context"

	"github.com/hafiz27/billflow/internal/models"
	"github.com/hafiz27/billflow/internal/repository"
	"github.com/hafiz27/billflow/pkg/apperrors"
)

type PlanService interface {
	ListActive(ctx context.Context) ([]*models.SubscriptionPlan, error)
	Get(ctx context.Context, planID int64) (*models.SubscriptionPlan, error)
}

type planService struct {
	p repository.PlanRepository
}

func NewPlanService(p repository.PlanRepository) PlanService {
	return &planService{
		p: p,
	}
}

func (s *planService) ListActive(ctx context.Context) ([]*models.SubscriptionPlan, error) {
	plans, err := s.p.ListActive(ctx)
	if err != nil {
		return nil, apperrors.ErrStoreUnavailable(err)
	}
	return plans, nil
}

func (s *planService) Get(ctx context.Context, planID int64) (*models.SubscriptionPlan, error) {
	plan, isExist, err := s.p.GetByID(ctx, planID)
	if err != nil {
		return nil, apperrors.ErrStoreUnavailable(err)
	}

	if !isExist || !plan.IsActive {
		return nil, apperrors.ErrPlanNotFound("Subscription plan not found")
	}

	return plan, nil
}
