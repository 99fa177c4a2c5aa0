// Package memstore is an in-memory, transactional stand-in for the lead
// persistence and collaborator ports. Tests use it to exercise the service
// and conversion rollback without a database.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"crm_backend/internal/leads/domain"
	"crm_backend/internal/leads/ports"
	"crm_backend/internal/leads/repository"
	"crm_backend/platform/db"

	"github.com/google/uuid"
)

// Person is a stored conversion person.
type Person struct {
	ports.NewPerson
	CompanyID *uuid.UUID
}

type state struct {
	leads         map[uuid.UUID]repository.Lead
	people        map[uuid.UUID]Person
	companies     map[uuid.UUID]string
	opportunities map[uuid.UUID]ports.NewOpportunity
	timeline      []ports.TimelineEntry
}

func (s state) clone() state {
	out := state{
		leads:         make(map[uuid.UUID]repository.Lead, len(s.leads)),
		people:        make(map[uuid.UUID]Person, len(s.people)),
		companies:     make(map[uuid.UUID]string, len(s.companies)),
		opportunities: make(map[uuid.UUID]ports.NewOpportunity, len(s.opportunities)),
		timeline:      append([]ports.TimelineEntry(nil), s.timeline...),
	}
	for k, v := range s.leads {
		out.leads[k] = v
	}
	for k, v := range s.people {
		out.people[k] = v
	}
	for k, v := range s.companies {
		out.companies[k] = v
	}
	for k, v := range s.opportunities {
		out.opportunities[k] = v
	}
	return out
}

// Store implements repository.LeadStore, ports.ContactCreator,
// ports.OpportunityCreator, ports.Timeline and db.UnitOfWork.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	data state
	tick time.Time

	// Failure injection for collaborator calls.
	FailCreatePerson      error
	FailCreateCompany     error
	FailCreateOpportunity error
	FailTimeline          error

	Commits   int
	Rollbacks int
}

func New() *Store {
	return &Store{
		data: state{}.clone(),
		tick: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

var (
	_ repository.LeadStore     = (*Store)(nil)
	_ ports.ContactCreator     = (*Store)(nil)
	_ ports.OpportunityCreator = (*Store)(nil)
	_ ports.Timeline           = (*Store)(nil)
	_ db.UnitOfWork            = (*Store)(nil)
)

// now advances a fake clock so created_at ordering is deterministic.
func (s *Store) now() time.Time {
	s.tick = s.tick.Add(time.Second)
	return s.tick
}

// ---- db.UnitOfWork ----

func (s *Store) Conn() db.DBTX { return nil }

// WithTx serializes transactions and restores the snapshot when fn fails.
func (s *Store) WithTx(ctx context.Context, fn func(q db.DBTX) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(nil); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.Rollbacks++
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.Commits++
	s.mu.Unlock()
	return nil
}

// ---- repository.LeadStore ----

func (s *Store) LockEmail(ctx context.Context, q db.DBTX, email string) error { return nil }

func (s *Store) EmailExists(ctx context.Context, q db.DBTX, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, lead := range s.data.leads {
		if lead.DeletedAt == nil && lead.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) Create(ctx context.Context, q db.DBTX, params repository.CreateLeadParams) (repository.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, lead := range s.data.leads {
		if lead.DeletedAt == nil && lead.Email == params.Email {
			return repository.Lead{}, repository.ErrDuplicateEmail
		}
	}

	now := s.now()
	lead := repository.Lead{
		ID:          uuid.New(),
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		Email:       params.Email,
		Phone:       params.Phone,
		CompanyName: params.CompanyName,
		JobTitle:    params.JobTitle,
		Source:      params.Source,
		Status:      domain.StatusNew,
		Score:       params.Score,
		Notes:       params.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.data.leads[lead.ID] = lead
	return lead, nil
}

func (s *Store) GetByID(ctx context.Context, q db.DBTX, id uuid.UUID) (repository.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lead, ok := s.data.leads[id]
	if !ok || lead.DeletedAt != nil {
		return repository.Lead{}, repository.ErrNotFound
	}
	return lead, nil
}

func (s *Store) GetByIDForUpdate(ctx context.Context, q db.DBTX, id uuid.UUID) (repository.Lead, error) {
	return s.GetByID(ctx, q, id)
}

func (s *Store) List(ctx context.Context, q db.DBTX, params repository.ListParams) ([]repository.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	leads := make([]repository.Lead, 0, len(s.data.leads))
	for _, lead := range s.data.leads {
		if lead.DeletedAt != nil {
			continue
		}
		if params.Status != nil && lead.Status != *params.Status {
			continue
		}
		if params.Source != nil && lead.Source != *params.Source {
			continue
		}
		leads = append(leads, lead)
	}
	sort.Slice(leads, func(i, j int) bool { return leads[i].CreatedAt.After(leads[j].CreatedAt) })
	return leads, nil
}

func (s *Store) UpdateStatus(ctx context.Context, q db.DBTX, params repository.UpdateStatusParams) (repository.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lead, ok := s.data.leads[params.ID]
	if !ok || lead.DeletedAt != nil || lead.Status == domain.StatusConverted {
		return repository.Lead{}, repository.ErrNotFound
	}
	lead.Status = params.Status
	if lead.LastContactedAt == nil && params.ContactedAt != nil {
		contacted := *params.ContactedAt
		lead.LastContactedAt = &contacted
	}
	lead.UpdatedAt = s.now()
	s.data.leads[lead.ID] = lead
	return lead, nil
}

func (s *Store) MarkConverted(ctx context.Context, q db.DBTX, params repository.MarkConvertedParams) (repository.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lead, ok := s.data.leads[params.ID]
	if !ok || lead.DeletedAt != nil || lead.Status == domain.StatusConverted {
		return repository.Lead{}, repository.ErrNotFound
	}
	convertedAt := params.ConvertedAt
	lead.Status = domain.StatusConverted
	lead.ConvertedPersonID = params.PersonID
	lead.ConvertedCompanyID = params.CompanyID
	lead.ConvertedOpportunityID = params.OpportunityID
	lead.ConvertedAt = &convertedAt
	lead.UpdatedAt = s.now()
	s.data.leads[lead.ID] = lead
	return lead, nil
}

func (s *Store) SoftDelete(ctx context.Context, q db.DBTX, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	lead, ok := s.data.leads[id]
	if !ok || lead.DeletedAt != nil {
		return repository.ErrNotFound
	}
	deletedAt := s.now()
	lead.DeletedAt = &deletedAt
	s.data.leads[id] = lead
	return nil
}

// ---- ports.ContactCreator ----

func (s *Store) CreatePerson(ctx context.Context, q db.DBTX, in ports.NewPerson) (uuid.UUID, error) {
	if s.FailCreatePerson != nil {
		return uuid.Nil, s.FailCreatePerson
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.data.people[id] = Person{NewPerson: in}
	return id, nil
}

func (s *Store) CreateCompany(ctx context.Context, q db.DBTX, name string) (uuid.UUID, error) {
	if s.FailCreateCompany != nil {
		return uuid.Nil, s.FailCreateCompany
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.data.companies[id] = name
	return id, nil
}

func (s *Store) AssignCompany(ctx context.Context, q db.DBTX, personID, companyID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	person, ok := s.data.people[personID]
	if !ok {
		return repository.ErrNotFound
	}
	person.CompanyID = &companyID
	s.data.people[personID] = person
	return nil
}

// ---- ports.OpportunityCreator ----

func (s *Store) CreateOpportunity(ctx context.Context, q db.DBTX, in ports.NewOpportunity) (uuid.UUID, error) {
	if s.FailCreateOpportunity != nil {
		return uuid.Nil, s.FailCreateOpportunity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.data.opportunities[id] = in
	return id, nil
}

// ---- ports.Timeline ----

func (s *Store) RecordLeadEvent(ctx context.Context, q db.DBTX, entry ports.TimelineEntry) error {
	if s.FailTimeline != nil {
		return s.FailTimeline
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = uuid.New()
	entry.CreatedAt = s.now()
	s.data.timeline = append(s.data.timeline, entry)
	return nil
}

func (s *Store) ListLeadEvents(ctx context.Context, q db.DBTX, leadID uuid.UUID) ([]ports.TimelineEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.TimelineEntry, 0)
	for i := len(s.data.timeline) - 1; i >= 0; i-- {
		if s.data.timeline[i].LeadID == leadID {
			out = append(out, s.data.timeline[i])
		}
	}
	return out, nil
}

// ---- inspection helpers ----

func (s *Store) People() map[uuid.UUID]Person {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.clone().people
}

func (s *Store) Companies() map[uuid.UUID]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.clone().companies
}

func (s *Store) Opportunities() map[uuid.UUID]ports.NewOpportunity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.clone().opportunities
}

func (s *Store) Timeline() []ports.TimelineEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ports.TimelineEntry(nil), s.data.timeline...)
}
