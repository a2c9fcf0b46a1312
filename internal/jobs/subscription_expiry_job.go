package job

import (
	"context"
	"log/slog"

	"github.com/hafiz27/billflow/internal/service"
)

type SubscriptionExpiryJob struct {
	s service.SubscriptionService
}

func NewSubscriptionExpiryJob(s service.SubscriptionService) *SubscriptionExpiryJob {
	return &SubscriptionExpiryJob{
		s: s,
	}
}

// ProcessExpired flips trial and active subscriptions whose window has
// passed to expired. Runs on a cron schedule.
func (c *SubscriptionExpiryJob) ProcessExpired() {
	ctx := context.Background()

	_, err := c.s.ProcessExpired(ctx)
	if err != nil {
		slog.Info(err.Error())
	}
}
