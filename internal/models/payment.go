package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment statuses. Overdue is never assigned at creation time; the periodic
// reconciliation sweep flips Pending payments past their due date.
const (
	PaymentStatusPending       = "Pending"
	PaymentStatusPartiallyPaid = "PartiallyPaid"
	PaymentStatusPaid          = "Paid"
	PaymentStatusOverdue       = "Overdue"
)

type Payment struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	LeaseID     uuid.UUID  `json:"lease_id" db:"lease_id"`
	AmountDue   float64    `json:"amount_due" db:"amount_due"`
	AmountPaid  float64    `json:"amount_paid" db:"amount_paid"`
	DueDate     time.Time  `json:"due_date" db:"due_date"`
	PaymentDate time.Time  `json:"payment_date" db:"payment_date"`
	Status      string     `json:"status" db:"status"`
	ReceiptKey  *string    `json:"receipt_key" db:"receipt_key"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// ComputePaymentStatus derives a payment's status from the amounts at
// creation time. The due date plays no part here.
func ComputePaymentStatus(amountPaid, amountDue float64) string {
	switch {
	case amountPaid >= amountDue:
		return PaymentStatusPaid
	case amountPaid > 0 && amountPaid < amountDue:
		return PaymentStatusPartiallyPaid
	default:
		return PaymentStatusPending
	}
}
