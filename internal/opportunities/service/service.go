// Package service implements opportunity management.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"crm_backend/internal/opportunities/domain"
	"crm_backend/internal/opportunities/repository"
	"crm_backend/platform/apperr"
	"crm_backend/platform/db"

	"github.com/google/uuid"
)

const notFoundMsg = "Opportunity not found"

// Store is the persistence surface the service needs.
type Store interface {
	Create(ctx context.Context, q db.DBTX, params repository.CreateParams) (repository.Opportunity, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.Opportunity, error)
}

type Service struct {
	store           Store
	defaultCurrency string
}

func New(store Store, defaultCurrency string) *Service {
	currency := strings.ToUpper(strings.TrimSpace(defaultCurrency))
	if currency == "" {
		currency = "USD"
	}
	return &Service{store: store, defaultCurrency: currency}
}

// CreateInput describes a new opportunity. Stage defaults to Prospecting and
// currency to the configured default.
type CreateInput struct {
	Name             string
	Stage            domain.Stage
	AmountMicros     *int64
	CurrencyCode     string
	CloseDate        *time.Time
	CompanyID        *uuid.UUID
	PointOfContactID *uuid.UUID
}

func (s *Service) Create(ctx context.Context, q db.DBTX, in CreateInput) (repository.Opportunity, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return repository.Opportunity{}, apperr.Validation("opportunity name is required")
	}
	if in.AmountMicros != nil && *in.AmountMicros < 0 {
		return repository.Opportunity{}, apperr.Validation("opportunity amount cannot be negative")
	}

	stage := in.Stage
	if stage == "" {
		stage = domain.StageProspecting
	}
	if _, ok := domain.ParseStage(string(stage)); !ok {
		return repository.Opportunity{}, apperr.Validation("invalid opportunity stage")
	}

	currency := strings.ToUpper(strings.TrimSpace(in.CurrencyCode))
	if currency == "" {
		currency = s.defaultCurrency
	}

	return s.store.Create(ctx, q, repository.CreateParams{
		Name:             name,
		Stage:            stage,
		AmountMicros:     in.AmountMicros,
		CurrencyCode:     currency,
		CloseDate:        in.CloseDate,
		CompanyID:        in.CompanyID,
		PointOfContactID: in.PointOfContactID,
	})
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (repository.Opportunity, error) {
	opp, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Opportunity{}, apperr.NotFound(notFoundMsg)
	}
	return opp, err
}
