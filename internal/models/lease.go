package models

import (
	"time"

	"github.com/google/uuid"
)

// Lease is created only when an application is approved and is immutable
// afterwards: there is no update path.
type Lease struct {
	ID         uuid.UUID `json:"id" db:"id"`
	PropertyID uuid.UUID `json:"property_id" db:"property_id"`
	TenantID   uuid.UUID `json:"tenant_id" db:"tenant_id"`
	StartDate  time.Time `json:"start_date" db:"start_date"`
	EndDate    time.Time `json:"end_date" db:"end_date"`
	Rent       float64   `json:"rent" db:"rent"`
	Deposit    float64   `json:"deposit" db:"deposit"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
