package adapters

import (
	"context"

	contactsvc "crm_backend/internal/contacts/service"
	"crm_backend/internal/leads/ports"
	"crm_backend/platform/db"

	"github.com/google/uuid"
)

// LeadContactCreator adapts the contacts service to the conversion port.
type LeadContactCreator struct {
	svc *contactsvc.Service
}

// NewLeadContactCreator creates a new contact creator adapter.
func NewLeadContactCreator(svc *contactsvc.Service) *LeadContactCreator {
	return &LeadContactCreator{svc: svc}
}

// CreatePerson creates a person without a company; AssignCompany links it later.
func (a *LeadContactCreator) CreatePerson(ctx context.Context, q db.DBTX, in ports.NewPerson) (uuid.UUID, error) {
	var email *string
	if in.Email != "" {
		email = &in.Email
	}
	person, err := a.svc.CreatePerson(ctx, q, in.Name, email, nil)
	if err != nil {
		return uuid.Nil, err
	}
	return person.ID, nil
}

func (a *LeadContactCreator) CreateCompany(ctx context.Context, q db.DBTX, name string) (uuid.UUID, error) {
	company, err := a.svc.CreateCompany(ctx, q, name)
	if err != nil {
		return uuid.Nil, err
	}
	return company.ID, nil
}

func (a *LeadContactCreator) AssignCompany(ctx context.Context, q db.DBTX, personID, companyID uuid.UUID) error {
	return a.svc.AssignCompany(ctx, q, personID, companyID)
}

// Compile-time check.
var _ ports.ContactCreator = (*LeadContactCreator)(nil)
