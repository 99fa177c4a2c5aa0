// Package ports declares what the leads module needs from other bounded
// contexts. Implementations live in internal/adapters.
package ports

import (
	"context"
	"time"

	"crm_backend/platform/db"

	"github.com/google/uuid"
)

// NewPerson describes a person produced by conversion.
type NewPerson struct {
	Name  string
	Email string
}

// NewOpportunity describes an opportunity produced by conversion.
type NewOpportunity struct {
	Name             string
	AmountMicros     *int64
	CompanyID        *uuid.UUID
	PointOfContactID *uuid.UUID
}

// ContactCreator creates people and companies inside the caller's transaction.
type ContactCreator interface {
	CreatePerson(ctx context.Context, q db.DBTX, in NewPerson) (uuid.UUID, error)
	CreateCompany(ctx context.Context, q db.DBTX, name string) (uuid.UUID, error)
	AssignCompany(ctx context.Context, q db.DBTX, personID, companyID uuid.UUID) error
}

// OpportunityCreator creates opportunities inside the caller's transaction.
type OpportunityCreator interface {
	CreateOpportunity(ctx context.Context, q db.DBTX, in NewOpportunity) (uuid.UUID, error)
}

// TimelineEntry is one activity on a lead's history.
type TimelineEntry struct {
	ID        uuid.UUID
	LeadID    uuid.UUID
	ActorType string
	ActorName string
	EventType string
	Title     string
	Summary   *string
	Metadata  map[string]any
	CreatedAt time.Time
}

// TimelineWriter records lead activities inside the caller's transaction.
type TimelineWriter interface {
	RecordLeadEvent(ctx context.Context, q db.DBTX, entry TimelineEntry) error
}

// TimelineReader lists a lead's activities, newest first.
type TimelineReader interface {
	ListLeadEvents(ctx context.Context, q db.DBTX, leadID uuid.UUID) ([]TimelineEntry, error)
}

// Timeline combines both directions.
type Timeline interface {
	TimelineWriter
	TimelineReader
}
