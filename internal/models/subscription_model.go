package models

import (
	"time"
)

type SubscriptionStatus string

const (
	SubscriptionStatusTrial     SubscriptionStatus = "trial"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

type UserSubscription struct {
	ID                 int64              `db:"id" json:"id"`
	UserID             int64              `db:"user_id" json:"user_id"`
	Status             SubscriptionStatus `db:"status" json:"status"`
	PlanID             *int64             `db:"plan_id" json:"plan_id"`
	TrialStart         *time.Time         `db:"trial_start" json:"trial_start"`
	TrialEnd           *time.Time         `db:"trial_end" json:"trial_end"`
	CurrentPeriodStart *time.Time         `db:"current_period_start" json:"current_period_start"`
	CurrentPeriodEnd   *time.Time         `db:"current_period_end" json:"current_period_end"`
	CancelAtPeriodEnd  bool               `db:"cancel_at_period_end" json:"cancel_at_period_end"`
	CancelledAt        *time.Time         `db:"cancelled_at" json:"cancelled_at"`
	CreatedAt          time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `db:"updated_at" json:"updated_at"`
}
