package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

func (q *Queue) HandlePaymentExpireTask(ctx context.Context, t *asynq.Task) error {
	var payload PaymentExpirePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		slog.Info(err.Error())
		return err
	}

	return q.p.ExpirePayment(ctx, payload.BillID)
}
