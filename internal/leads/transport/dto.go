package transport

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreateLeadRequest is the body of POST /api/leads and the lead-capture
// webhook. Presence rules for first name and email are applied by the
// service so the business messages stay stable.
type CreateLeadRequest struct {
	FirstName   string  `json:"first_name" validate:"max=100"`
	LastName    string  `json:"last_name" validate:"max=100"`
	Email       string  `json:"email" validate:"max=254"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=40"`
	CompanyName *string `json:"company_name,omitempty" validate:"omitempty,max=200"`
	JobTitle    *string `json:"job_title,omitempty" validate:"omitempty,max=200"`
	Source      string  `json:"source,omitempty" validate:"max=40"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=5000"`
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"max=40"`
}

type ConvertLeadRequest struct {
	CreatePerson      bool    `json:"create_person"`
	CreateCompany     bool    `json:"create_company"`
	CreateOpportunity bool    `json:"create_opportunity"`
	OpportunityName   *string `json:"opportunity_name,omitempty" validate:"omitempty,max=200"`
	OpportunityAmount *int64  `json:"opportunity_amount,omitempty" validate:"omitempty,min=0"`
}

type ListLeadsRequest struct {
	Status string `form:"status"`
	Source string `form:"source"`
}

// Response DTOs

type LeadResponse struct {
	ID                     uuid.UUID  `json:"id"`
	FirstName              string     `json:"first_name"`
	LastName               string     `json:"last_name"`
	Email                  string     `json:"email"`
	Phone                  *string    `json:"phone"`
	CompanyName            *string    `json:"company_name"`
	JobTitle               *string    `json:"job_title"`
	Source                 string     `json:"source"`
	Status                 string     `json:"status"`
	Score                  int        `json:"score"`
	Notes                  *string    `json:"notes"`
	ConvertedPersonID      *uuid.UUID `json:"converted_person_id,omitempty"`
	ConvertedCompanyID     *uuid.UUID `json:"converted_company_id,omitempty"`
	ConvertedOpportunityID *uuid.UUID `json:"converted_opportunity_id,omitempty"`
	ConvertedAt            *time.Time `json:"converted_at,omitempty"`
	LastContactedAt        *time.Time `json:"last_contacted_at"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

type ConvertLeadResponse struct {
	Lead          LeadResponse `json:"lead"`
	PersonID      *uuid.UUID   `json:"person_id"`
	CompanyID     *uuid.UUID   `json:"company_id"`
	OpportunityID *uuid.UUID   `json:"opportunity_id"`
}

type TimelineEventResponse struct {
	ID        uuid.UUID      `json:"id"`
	ActorType string         `json:"actor_type"`
	ActorName string         `json:"actor_name"`
	EventType string         `json:"event_type"`
	Title     string         `json:"title"`
	Summary   *string        `json:"summary,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
