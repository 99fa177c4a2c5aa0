package adapters

import (
	"context"

	"crm_backend/internal/leads/ports"
	oppdomain "crm_backend/internal/opportunities/domain"
	oppsvc "crm_backend/internal/opportunities/service"
	"crm_backend/platform/db"

	"github.com/google/uuid"
)

// LeadOpportunityCreator adapts the opportunities service to the conversion port.
type LeadOpportunityCreator struct {
	svc *oppsvc.Service
}

// NewLeadOpportunityCreator creates a new opportunity creator adapter.
func NewLeadOpportunityCreator(svc *oppsvc.Service) *LeadOpportunityCreator {
	return &LeadOpportunityCreator{svc: svc}
}

// CreateOpportunity opens the opportunity at Prospecting in the default currency.
func (a *LeadOpportunityCreator) CreateOpportunity(ctx context.Context, q db.DBTX, in ports.NewOpportunity) (uuid.UUID, error) {
	opp, err := a.svc.Create(ctx, q, oppsvc.CreateInput{
		Name:             in.Name,
		Stage:            oppdomain.StageProspecting,
		AmountMicros:     in.AmountMicros,
		CompanyID:        in.CompanyID,
		PointOfContactID: in.PointOfContactID,
	})
	if err != nil {
		return uuid.Nil, err
	}
	return opp.ID, nil
}

// Compile-time check.
var _ ports.OpportunityCreator = (*LeadOpportunityCreator)(nil)
