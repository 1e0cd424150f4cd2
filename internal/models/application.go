package models

import (
	"time"

	"github.com/google/uuid"
)

// Application statuses. Pending is the initial state; Approved and Denied are
// both terminal, there is no transition back.
const (
	ApplicationStatusPending  = "Pending"
	ApplicationStatusApproved = "Approved"
	ApplicationStatusDenied   = "Denied"
)

type Application struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	PropertyID      uuid.UUID  `json:"property_id" db:"property_id"`
	TenantID        uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	ApplicationDate time.Time  `json:"application_date" db:"application_date"`
	Status          string     `json:"status" db:"status"`
	Message         *string    `json:"message" db:"message"`
	LeaseID         *uuid.UUID `json:"lease_id" db:"lease_id"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// Decided reports whether the application has left the Pending state.
func (a *Application) Decided() bool {
	return a.Status != ApplicationStatusPending
}
