package models

import (
	"time"

	"github.com/google/uuid"
)

type Manager struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CognitoID   string    `json:"cognito_id" db:"cognito_id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email" db:"email"`
	PhoneNumber *string   `json:"phone_number" db:"phone_number"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
