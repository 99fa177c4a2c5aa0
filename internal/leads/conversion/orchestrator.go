// Package conversion turns a lead into durable CRM records.
package conversion

import (
	"context"
	"errors"
	"strings"
	"time"

	"crm_backend/internal/leads/domain"
	"crm_backend/internal/leads/ports"
	"crm_backend/internal/leads/repository"
	"crm_backend/internal/timeline"
	"crm_backend/platform/apperr"
	"crm_backend/platform/db"

	"github.com/google/uuid"
)

const (
	msgLeadNotFound     = "Lead not found"
	msgConversionFailed = "Lead conversion failed"
)

// Options selects which records conversion produces.
type Options struct {
	CreatePerson      bool
	CreateCompany     bool
	CreateOpportunity bool
	OpportunityName   *string
	OpportunityAmount *int64
}

// Created holds the ids of the records a conversion produced. A nil id means
// the record was not requested or could not be derived from the lead.
type Created struct {
	PersonID      *uuid.UUID
	CompanyID     *uuid.UUID
	OpportunityID *uuid.UUID
}

// Result is the converted lead plus what was created.
type Result struct {
	Lead repository.Lead
	Created
}

type Orchestrator struct {
	uow           db.UnitOfWork
	leads         repository.LeadWriter
	contacts      ports.ContactCreator
	opportunities ports.OpportunityCreator
	timeline      ports.TimelineWriter
	now           func() time.Time
}

func New(uow db.UnitOfWork, leads repository.LeadWriter, contacts ports.ContactCreator, opportunities ports.OpportunityCreator, tl ports.TimelineWriter) *Orchestrator {
	return &Orchestrator{
		uow:           uow,
		leads:         leads,
		contacts:      contacts,
		opportunities: opportunities,
		timeline:      tl,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Convert runs the whole conversion in one transaction. Any failure rolls
// back every record created so far and leaves the lead untouched.
func (o *Orchestrator) Convert(ctx context.Context, leadID uuid.UUID, opts Options) (Result, error) {
	var result Result
	err := o.uow.WithTx(ctx, func(q db.DBTX) error {
		lead, err := o.leads.GetByIDForUpdate(ctx, q, leadID)
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(msgLeadNotFound)
		}
		if err != nil {
			return err
		}

		if err := domain.ValidateConversion(lead.Status); err != nil {
			return err
		}

		created, err := o.createRecords(ctx, q, lead, opts)
		if err != nil {
			return apperr.Conversion(msgConversionFailed, err)
		}

		converted, err := o.leads.MarkConverted(ctx, q, repository.MarkConvertedParams{
			ID:            lead.ID,
			PersonID:      created.PersonID,
			CompanyID:     created.CompanyID,
			OpportunityID: created.OpportunityID,
			ConvertedAt:   o.now(),
		})
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.InvalidState(domain.MsgAlreadyConverted)
		}
		if err != nil {
			return apperr.Conversion(msgConversionFailed, err)
		}

		if err := o.timeline.RecordLeadEvent(ctx, q, conversionEntry(converted, opts, created)); err != nil {
			return apperr.Conversion(msgConversionFailed, err)
		}

		result = Result{Lead: converted, Created: created}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

func (o *Orchestrator) createRecords(ctx context.Context, q db.DBTX, lead repository.Lead, opts Options) (Created, error) {
	var created Created

	if opts.CreatePerson {
		id, err := o.contacts.CreatePerson(ctx, q, ports.NewPerson{Name: lead.FullName(), Email: lead.Email})
		if err != nil {
			return Created{}, err
		}
		created.PersonID = &id
	}

	if opts.CreateCompany {
		if name := companyName(lead); name != "" {
			id, err := o.contacts.CreateCompany(ctx, q, name)
			if err != nil {
				return Created{}, err
			}
			created.CompanyID = &id

			if created.PersonID != nil {
				if err := o.contacts.AssignCompany(ctx, q, *created.PersonID, id); err != nil {
					return Created{}, err
				}
			}
		}
	}

	if opts.CreateOpportunity {
		id, err := o.opportunities.CreateOpportunity(ctx, q, ports.NewOpportunity{
			Name:             opportunityName(lead, opts.OpportunityName),
			AmountMicros:     opts.OpportunityAmount,
			CompanyID:        created.CompanyID,
			PointOfContactID: created.PersonID,
		})
		if err != nil {
			return Created{}, err
		}
		created.OpportunityID = &id
	}

	return created, nil
}

func companyName(lead repository.Lead) string {
	if lead.CompanyName == nil {
		return ""
	}
	return strings.TrimSpace(*lead.CompanyName)
}

func opportunityName(lead repository.Lead, requested *string) string {
	if requested != nil {
		if name := strings.TrimSpace(*requested); name != "" {
			return name
		}
	}
	return "Opportunity for " + lead.FullName()
}

func conversionEntry(lead repository.Lead, opts Options, created Created) ports.TimelineEntry {
	title := "Lead converted to Contact"
	if opts.CreateOpportunity {
		title = "Lead converted to Opportunity"
	}

	metadata := map[string]any{}
	if created.PersonID != nil {
		metadata["person_id"] = created.PersonID.String()
	}
	if created.CompanyID != nil {
		metadata["company_id"] = created.CompanyID.String()
	}
	if created.OpportunityID != nil {
		metadata["opportunity_id"] = created.OpportunityID.String()
	}

	return ports.TimelineEntry{
		LeadID:    lead.ID,
		ActorType: timeline.ActorTypeSystem,
		ActorName: timeline.ActorNameLeadService,
		EventType: timeline.EventTypeLeadConverted,
		Title:     title,
		Metadata:  metadata,
	}
}
