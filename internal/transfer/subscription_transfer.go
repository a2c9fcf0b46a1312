package transfer

import "time"

type SubscriptionInfo struct {
	ID                 int64      `json:"id"`
	Status             string     `json:"status"`
	PlanID             *int64     `json:"plan_id"`
	TrialEnd           *time.Time `json:"trial_end"`
	RemainingTrialDays int        `json:"remaining_trial_days"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end"`
	CancelAtPeriodEnd  bool       `json:"cancel_at_period_end"`
	CanTransact        bool       `json:"can_transact"`
}

type CheckoutRequest struct {
	PlanID         int64  `json:"plan_id"`
	IdempotencyKey string `json:"idempotency_key"`
}

type CheckoutResponse struct {
	Success    bool   `json:"success"`
	PaymentID  string `json:"payment_id"`
	PaymentURL string `json:"payment_url"`
}

type PaymentVerification struct {
	BillID    string     `json:"bill_id"`
	Status    string     `json:"status"`
	Confirmed bool       `json:"confirmed"`
	Amount    float64    `json:"amount"`
	Currency  string     `json:"currency"`
	PaidAt    *time.Time `json:"paid_at"`
}
