package queue

import (
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"
)

// EnqueuePaymentExpiry schedules a fail-safe for a checkout session: if
// the gateway never confirms the bill within the delay, the pending
// payment row is marked failed.
func EnqueuePaymentExpiry(asynqClient *asynq.Client, payload PaymentExpirePayload, delay time.Duration) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypePaymentExpire, taskPayload)

	_, err = asynqClient.Enqueue(task, asynq.ProcessIn(delay))
	if err != nil {
		return err
	}

	log.Printf("Payment expiry scheduled: %+v", payload)
	return nil
}
