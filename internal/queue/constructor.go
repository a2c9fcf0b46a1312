package queue

import (
	"github.com/hafiz27/billflow/internal/service"
)

type Queue struct {
	p service.PaymentService
}

func NewQueue(p service.PaymentService) *Queue {
	return &Queue{
		p: p,
	}
}

const TaskTypePaymentExpire = "payment:expire"

type PaymentExpirePayload struct {
	BillID string `json:"bill_id"`
}
