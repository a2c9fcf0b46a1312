package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/hafiz27/billflow/internal/models"
)

type SubscriptionRepository interface {
	GetCurrentByUserID(ctx context.Context, userID int64) (*models.UserSubscription, bool, error)
	CreateTrial(ctx context.Context, userID int64) (int64, error)
	Activate(ctx context.Context, subscriptionID, planID int64) (bool, error)
	Cancel(ctx context.Context, subscriptionID int64) error
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
}

type subscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetCurrentByUserID(ctx context.Context, userID int64) (*models.UserSubscription, bool, error) {
	var sub models.UserSubscription
	query := `
		SELECT id, user_id, status, plan_id, trial_start, trial_end,
			current_period_start, current_period_end, cancel_at_period_end,
			cancelled_at, created_at, updated_at
		FROM user_subscriptions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&sub.ID, &sub.UserID, &sub.Status, &sub.PlanID, &sub.TrialStart, &sub.TrialEnd,
		&sub.CurrentPeriodStart, &sub.CurrentPeriodEnd, &sub.CancelAtPeriodEnd,
		&sub.CancelledAt, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &sub, true, nil
}

// CreateTrial calls the create_trial_subscription stored procedure so the
// 7-day window is computed and inserted in a single atomic statement.
func (r *subscriptionRepository) CreateTrial(ctx context.Context, userID int64) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, "SELECT create_trial_subscription($1)", userID).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

// Activate calls the activate_subscription stored procedure. The status
// change and plan binding happen in one statement, so a concurrent
// webhook write cannot interleave with a read-modify-write from here.
func (r *subscriptionRepository) Activate(ctx context.Context, subscriptionID, planID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, "SELECT activate_subscription($1, $2)", subscriptionID, planID).Scan(&ok)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return ok, nil
}

func (r *subscriptionRepository) Cancel(ctx context.Context, subscriptionID int64) error {
	query := `
		UPDATE user_subscriptions
		SET cancel_at_period_end = true,
			cancelled_at = $1,
			updated_at = $1
		WHERE id = $2
	`
	_, err := r.db.ExecContext(ctx, query, time.Now(), subscriptionID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}

func (r *subscriptionRepository) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE user_subscriptions
		SET status = 'expired',
			updated_at = $1
		WHERE (status = 'trial' AND trial_end < $1)
			OR (status = 'active' AND current_period_end < $1)
	`
	result, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	count, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}
