package adapters

import (
	"context"

	"crm_backend/internal/exports"
	leadrepo "crm_backend/internal/leads/repository"
	leadsvc "crm_backend/internal/leads/service"
)

// LeadExportSource feeds live leads from the leads service into CSV exports.
type LeadExportSource struct {
	svc *leadsvc.Service
}

func NewLeadExportSource(svc *leadsvc.Service) *LeadExportSource {
	return &LeadExportSource{svc: svc}
}

func (a *LeadExportSource) ExportRows(ctx context.Context) ([]exports.Row, error) {
	leads, err := a.svc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]exports.Row, 0, len(leads))
	for _, lead := range leads {
		rows = append(rows, toExportRow(lead))
	}
	return rows, nil
}

func toExportRow(lead leadrepo.Lead) exports.Row {
	return exports.Row{
		ID:              lead.ID.String(),
		FirstName:       lead.FirstName,
		LastName:        lead.LastName,
		Email:           lead.Email,
		Phone:           valueOrEmpty(lead.Phone),
		CompanyName:     valueOrEmpty(lead.CompanyName),
		JobTitle:        valueOrEmpty(lead.JobTitle),
		Source:          lead.Source.String(),
		Status:          lead.Status.String(),
		Score:           lead.Score,
		LastContactedAt: lead.LastContactedAt,
		ConvertedAt:     lead.ConvertedAt,
		CreatedAt:       lead.CreatedAt,
	}
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ exports.LeadSource = (*LeadExportSource)(nil)
