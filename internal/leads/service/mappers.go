package service

import (
	"crm_backend/internal/leads/repository"
	"crm_backend/internal/leads/transport"
)

// ToLeadResponse renders status and source in their titled wire form.
func ToLeadResponse(lead repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:                     lead.ID,
		FirstName:              lead.FirstName,
		LastName:               lead.LastName,
		Email:                  lead.Email,
		Phone:                  lead.Phone,
		CompanyName:            lead.CompanyName,
		JobTitle:               lead.JobTitle,
		Source:                 lead.Source.String(),
		Status:                 lead.Status.String(),
		Score:                  lead.Score,
		Notes:                  lead.Notes,
		ConvertedPersonID:      lead.ConvertedPersonID,
		ConvertedCompanyID:     lead.ConvertedCompanyID,
		ConvertedOpportunityID: lead.ConvertedOpportunityID,
		ConvertedAt:            lead.ConvertedAt,
		LastContactedAt:        lead.LastContactedAt,
		CreatedAt:              lead.CreatedAt,
		UpdatedAt:              lead.UpdatedAt,
	}
}
