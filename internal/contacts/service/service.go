// Package service implements person and company management.
package service

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"crm_backend/internal/contacts/repository"
	"crm_backend/platform/apperr"
	"crm_backend/platform/db"

	"github.com/google/uuid"
)

const (
	personNotFoundMsg  = "Person not found"
	companyNotFoundMsg = "Company not found"
)

// Store is the persistence surface the service needs.
type Store interface {
	CreatePerson(ctx context.Context, q db.DBTX, params repository.CreatePersonParams) (repository.Person, error)
	CreateCompany(ctx context.Context, q db.DBTX, params repository.CreateCompanyParams) (repository.Company, error)
	AssignCompany(ctx context.Context, q db.DBTX, personID, companyID uuid.UUID) error
	GetPerson(ctx context.Context, id uuid.UUID) (repository.Person, error)
	GetCompany(ctx context.Context, id uuid.UUID) (repository.Company, error)
}

type Service struct {
	store Store
}

func New(store Store) *Service {
	return &Service{store: store}
}

// DomainFromName derives a placeholder web domain from a company name:
// lower-cased, whitespace removed, ".com" appended.
func DomainFromName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return b.String() + ".com"
}

// CreatePerson inserts a person through q.
func (s *Service) CreatePerson(ctx context.Context, q db.DBTX, name string, email *string, companyID *uuid.UUID) (repository.Person, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return repository.Person{}, apperr.Validation("person name is required")
	}
	return s.store.CreatePerson(ctx, q, repository.CreatePersonParams{
		Name:      trimmed,
		Email:     email,
		CompanyID: companyID,
	})
}

// CreateCompany inserts a company through q, deriving its domain from the name.
func (s *Service) CreateCompany(ctx context.Context, q db.DBTX, name string) (repository.Company, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return repository.Company{}, apperr.Validation("company name is required")
	}
	return s.store.CreateCompany(ctx, q, repository.CreateCompanyParams{
		Name:       trimmed,
		DomainName: DomainFromName(trimmed),
	})
}

// AssignCompany links an existing person to a company through q.
func (s *Service) AssignCompany(ctx context.Context, q db.DBTX, personID, companyID uuid.UUID) error {
	err := s.store.AssignCompany(ctx, q, personID, companyID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(personNotFoundMsg)
	}
	return err
}

func (s *Service) GetPerson(ctx context.Context, id uuid.UUID) (repository.Person, error) {
	person, err := s.store.GetPerson(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Person{}, apperr.NotFound(personNotFoundMsg)
	}
	return person, err
}

func (s *Service) GetCompany(ctx context.Context, id uuid.UUID) (repository.Company, error) {
	company, err := s.store.GetCompany(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Company{}, apperr.NotFound(companyNotFoundMsg)
	}
	return company, err
}
