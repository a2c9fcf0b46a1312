package models

import "time"

type SubscriptionPlan struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  string    `db:"description" json:"description"`
	Price        float64   `db:"price" json:"price"`
	Currency     string    `db:"currency" json:"currency"`
	IntervalType string    `db:"interval_type" json:"interval_type"`
	Features     []string  `db:"features" json:"features"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
