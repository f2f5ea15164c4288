package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts de commande.
const (
	OrderStatusPaid   = "paid"
	OrderStatusFailed = "failed"
)

type Order struct {
	ID              gocql.UUID `json:"id" db:"order_id"`
	Receipt         string     `json:"receipt" db:"receipt"`
	RazorpayOrderID string     `json:"razorpay_order_id" db:"razorpay_order_id"`
	PaymentID       string     `json:"payment_id" db:"payment_id"`
	Email           string     `json:"email" db:"email"`
	Items           []CartItem `json:"items"`
	AmountTotal     int64      `json:"amount_total" db:"amount_total"` // unités mineures
	Currency        string     `json:"currency" db:"currency"`
	Status          string     `json:"status" db:"status"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}
