package models

import (
	"time"

	"github.com/google/uuid"
)

// PropertySearchFilter holds search and filter criteria for property queries.
// Pointer fields are omitted from the generated SQL when nil.
type PropertySearchFilter struct {
	City          *string  `json:"city,omitempty"`
	State         *string  `json:"state,omitempty"`
	Country       *string  `json:"country,omitempty"`
	PriceMin      *float64 `json:"price_min,omitempty"`
	PriceMax      *float64 `json:"price_max,omitempty"`
	Beds          *int     `json:"beds,omitempty"`         // minimum bedrooms
	Baths         *int     `json:"baths,omitempty"`        // minimum bathrooms
	PropertyType  *string  `json:"property_type,omitempty"`
	SquareFeetMin *int     `json:"square_feet_min,omitempty"`
	SquareFeetMax *int     `json:"square_feet_max,omitempty"`
	Amenities     []string `json:"amenities,omitempty"` // property must carry all of them
	Limit         int      `json:"limit,omitempty"`     // page size (default: 50)
	Offset        int      `json:"offset,omitempty"`
}

type Property struct {
	ID              uuid.UUID `json:"id" db:"id"`
	ManagerID       uuid.UUID `json:"manager_id" db:"manager_id"`
	Name            string    `json:"name" db:"name"`
	Description     *string   `json:"description" db:"description"`
	PricePerMonth   float64   `json:"price_per_month" db:"price_per_month"`
	SecurityDeposit float64   `json:"security_deposit" db:"security_deposit"`
	ApplicationFee  float64   `json:"application_fee" db:"application_fee"`
	Beds            int       `json:"beds" db:"beds"`
	Baths           int       `json:"baths" db:"baths"`
	SquareFeet      int       `json:"square_feet" db:"square_feet"`
	PropertyType    string    `json:"property_type" db:"property_type"`
	Amenities       []string  `json:"amenities" db:"amenities"`
	PhotoKeys       []string  `json:"photo_keys" db:"photo_keys"`
	Address         string    `json:"address" db:"address"`
	City            string    `json:"city" db:"city"`
	State           string    `json:"state" db:"state"`
	Country         string    `json:"country" db:"country"`
	PostalCode      string    `json:"postal_code" db:"postal_code"`
	Latitude        float64   `json:"latitude" db:"latitude"`
	Longitude       float64   `json:"longitude" db:"longitude"`
	Closed          bool      `json:"closed" db:"closed"`
	PostedDate      time.Time `json:"posted_date" db:"posted_date"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
