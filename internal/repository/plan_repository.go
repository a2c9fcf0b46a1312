package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/hafiz27/billflow/internal/models"
)

type PlanRepository interface {
	ListActive(ctx context.Context) ([]*models.SubscriptionPlan, error)
	GetByID(ctx context.Context, id int64) (*models.SubscriptionPlan, bool, error)
}

type planRepository struct {
	db *sql.DB
}

func NewPlanRepository(db *sql.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) ListActive(ctx context.Context) ([]*models.SubscriptionPlan, error) {
	query := `
		SELECT id, name, description, price, currency, interval_type, features, is_active
		FROM subscription_plans
		WHERE is_active = true
		ORDER BY price ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var plans []*models.SubscriptionPlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return plans, nil
}

func (r *planRepository) GetByID(ctx context.Context, id int64) (*models.SubscriptionPlan, bool, error) {
	query := `
		SELECT id, name, description, price, currency, interval_type, features, is_active
		FROM subscription_plans
		WHERE id = $1
	`
	plan, err := scanPlan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return plan, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	var features []byte

	err := row.Scan(&plan.ID, &plan.Name, &plan.Description, &plan.Price,
		&plan.Currency, &plan.IntervalType, &features, &plan.IsActive)
	if err != nil {
		return nil, err
	}

	if len(features) > 0 {
		if err := json.Unmarshal(features, &plan.Features); err != nil {
			return nil, err
		}
	}

	return &plan, nil
}
