package service

import (
	"math"
	"time"

	"github.com/hafiz27/billflow/internal/models"
)

// Pure subscription policy checks. Callers pass the clock so tests can
// pin "now".

func IsTrialActive(sub *models.UserSubscription, now time.Time) bool {
	if sub == nil || sub.Status != models.SubscriptionStatusTrial {
		return false
	}
	if sub.TrialEnd == nil {
		return false
	}
	return sub.TrialEnd.After(now)
}

func RemainingTrialDays(sub *models.UserSubscription, now time.Time) int {
	if sub == nil || sub.Status != models.SubscriptionStatusTrial || sub.TrialEnd == nil {
		return 0
	}

	days := int(math.Ceil(sub.TrialEnd.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// CanTransact is the authorization gate for paid actions: an unexpired
// trial or an active subscription whose period has not ended.
func CanTransact(sub *models.UserSubscription, now time.Time) bool {
	if sub == nil {
		return false
	}

	if sub.Status == models.SubscriptionStatusTrial && sub.TrialEnd != nil {
		return sub.TrialEnd.After(now)
	}

	if sub.Status == models.SubscriptionStatusActive && sub.CurrentPeriodEnd != nil {
		return sub.CurrentPeriodEnd.After(now)
	}

	return false
}
