// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"crm_backend/platform/events"
	"crm_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// Event names.
const (
	LeadCreatedName       = "leads.lead.created"
	LeadStatusChangedName = "leads.lead.status_changed"
	LeadConvertedName     = "leads.lead.converted"
	LeadDeletedName       = "leads.lead.deleted"
)

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published after a lead has been committed.
type LeadCreated struct {
	BaseEvent
	LeadID        uuid.UUID `json:"lead_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Company       string    `json:"company_name,omitempty"`
	JobTitle      string    `json:"job_title,omitempty"`
	Source        string    `json:"source"`
	SourceDisplay string    `json:"source_display"`
	Score         int       `json:"lead_score"`
	CreatedAt     time.Time `json:"created_at"`
}

func (e LeadCreated) EventName() string { return LeadCreatedName }

// LeadStatusChanged is published when a lead moves between open statuses.
type LeadStatusChanged struct {
	BaseEvent
	LeadID    uuid.UUID `json:"lead_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
}

func (e LeadStatusChanged) EventName() string { return LeadStatusChangedName }

// LeadConverted is published once per lead after the conversion commits.
type LeadConverted struct {
	BaseEvent
	LeadID        uuid.UUID  `json:"lead_id"`
	PersonID      *uuid.UUID `json:"person_id,omitempty"`
	CompanyID     *uuid.UUID `json:"company_id,omitempty"`
	OpportunityID *uuid.UUID `json:"opportunity_id,omitempty"`
}

func (e LeadConverted) EventName() string { return LeadConvertedName }

// LeadDeleted is published when a lead is soft-deleted.
type LeadDeleted struct {
	BaseEvent
	LeadID uuid.UUID `json:"lead_id"`
}

func (e LeadDeleted) EventName() string { return LeadDeletedName }
