package models

import (
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type Payment struct {
	ID             int64         `db:"id" json:"id"`
	UserID         int64         `db:"user_id" json:"user_id"`
	SubscriptionID *int64        `db:"subscription_id" json:"subscription_id"`
	Amount         float64       `db:"amount" json:"amount"`
	Currency       string        `db:"currency" json:"currency"`
	Status         PaymentStatus `db:"status" json:"status"`
	PaymentMethod  string        `db:"payment_method" json:"payment_method"`
	BillplzBillID  string        `db:"billplz_bill_id" json:"billplz_bill_id"`
	BillplzURL     string        `db:"billplz_url" json:"billplz_url"`
	PaidAt         *time.Time    `db:"paid_at" json:"paid_at"`
	Metadata       string        `db:"metadata" json:"metadata"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
}
