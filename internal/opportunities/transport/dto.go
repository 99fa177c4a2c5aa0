package transport

import (
	"time"

	"github.com/google/uuid"
)

type OpportunityResponse struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Stage            string     `json:"stage"`
	AmountMicros     *int64     `json:"amount_micros"`
	CurrencyCode     string     `json:"currency_code"`
	CloseDate        *string    `json:"close_date"`
	CompanyID        *uuid.UUID `json:"company_id"`
	PointOfContactID *uuid.UUID `json:"point_of_contact_id"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
