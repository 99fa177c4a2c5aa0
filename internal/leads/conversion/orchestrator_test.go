package conversion

import (
	"context"
	"errors"
	"testing"

	"crm_backend/internal/leads/domain"
	"crm_backend/internal/leads/memstore"
	"crm_backend/internal/leads/repository"
	"crm_backend/platform/apperr"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func seedLead(t *testing.T, store *memstore.Store, company *string) repository.Lead {
	t.Helper()
	lead, err := store.Create(context.Background(), nil, repository.CreateLeadParams{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		CompanyName: company,
		Source:      domain.SourceManualEntry,
	})
	if err != nil {
		t.Fatalf("seed lead: %v", err)
	}
	return lead
}

func newOrchestrator(store *memstore.Store) *Orchestrator {
	return New(store, store, store, store, store)
}

func TestConvertPersonOnly(t *testing.T) {
	store := memstore.New()
	lead := seedLead(t, store, strPtr("Acme Corp"))

	result, err := newOrchestrator(store).Convert(context.Background(), lead.ID, Options{CreatePerson: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.PersonID == nil || result.CompanyID != nil || result.OpportunityID != nil {
		t.Fatalf("unexpected created ids: %+v", result.Created)
	}
	if result.Lead.Status != domain.StatusConverted {
		t.Fatalf("expected converted status, got %q", result.Lead.Status)
	}
	if result.Lead.ConvertedAt == nil {
		t.Fatal("expected converted_at to be set")
	}

	person := store.People()[*result.PersonID]
	if person.Name != "Ada Lovelace" || person.Email != "ada@example.com" {
		t.Fatalf("unexpected person: %+v", person)
	}
}

func TestConvertAllRecordsLinksOpportunity(t *testing.T) {
	store := memstore.New()
	lead := seedLead(t, store, strPtr("Acme Corp"))
	amount := int64(5_000_000_000)

	result, err := newOrchestrator(store).Convert(context.Background(), lead.ID, Options{
		CreatePerson:      true,
		CreateCompany:     true,
		CreateOpportunity: true,
		OpportunityName:   strPtr("Enterprise deal"),
		OpportunityAmount: &amount,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PersonID == nil || result.CompanyID == nil || result.OpportunityID == nil {
		t.Fatalf("expected all ids, got %+v", result.Created)
	}

	opp := store.Opportunities()[*result.OpportunityID]
	if opp.Name != "Enterprise deal" || opp.AmountMicros == nil || *opp.AmountMicros != amount {
		t.Fatalf("unexpected opportunity: %+v", opp)
	}
	if opp.CompanyID == nil || *opp.CompanyID != *result.CompanyID {
		t.Fatal("opportunity company_id must reference the new company")
	}
	if opp.PointOfContactID == nil || *opp.PointOfContactID != *result.PersonID {
		t.Fatal("opportunity point_of_contact_id must reference the new person")
	}

	person := store.People()[*result.PersonID]
	if person.CompanyID == nil || *person.CompanyID != *result.CompanyID {
		t.Fatal("person must be linked to the new company")
	}

	if got := result.Lead.ConvertedOpportunityID; got == nil || *got != *result.OpportunityID {
		t.Fatal("lead must record converted_opportunity_id")
	}

	entries := store.Timeline()
	if len(entries) != 1 || entries[0].Title != "Lead converted to Opportunity" {
		t.Fatalf("unexpected timeline: %+v", entries)
	}
}

func TestConvertCompanyWithoutCompanyNameIsSkipped(t *testing.T) {
	store := memstore.New()
	lead := seedLead(t, store, nil)

	result, err := newOrchestrator(store).Convert(context.Background(), lead.ID, Options{CreateCompany: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CompanyID != nil {
		t.Fatal("expected no company without company_name")
	}
	if len(store.Companies()) != 0 {
		t.Fatal("expected no company rows")
	}
	if result.Lead.Status != domain.StatusConverted {
		t.Fatal("conversion must still succeed")
	}
	if entries := store.Timeline(); entries[0].Title != "Lead converted to Contact" {
		t.Fatalf("unexpected timeline title %q", entries[0].Title)
	}
}

func TestConvertDefaultsOpportunityName(t *testing.T) {
	store := memstore.New()
	lead := seedLead(t, store, nil)

	result, err := newOrchestrator(store).Convert(context.Background(), lead.ID, Options{
		CreateOpportunity: true,
		OpportunityName:   strPtr("   "),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opp := store.Opportunities()[*result.OpportunityID]
	if opp.Name != "Opportunity for Ada Lovelace" {
		t.Fatalf("unexpected default name %q", opp.Name)
	}
	if opp.CompanyID != nil || opp.PointOfContactID != nil {
		t.Fatal("expected no back-references without person/company")
	}
}

func TestConvertTwiceIsRejectedWithoutDuplicates(t *testing.T) {
	store := memstore.New()
	lead := seedLead(t, store, strPtr("Acme Corp"))
	orch := newOrchestrator(store)
	opts := Options{CreatePerson: true, CreateCompany: true, CreateOpportunity: true}

	if _, err := orch.Convert(context.Background(), lead.ID, opts); err != nil {
		t.Fatalf("first conversion failed: %v", err)
	}

	_, err := orch.Convert(context.Background(), lead.ID, opts)
	if !apperr.Is(err, apperr.KindInvalidState) || err.Error() != domain.MsgAlreadyConverted {
		t.Fatalf("expected already converted error, got %v", err)
	}

	if len(store.People()) != 1 || len(store.Companies()) != 1 || len(store.Opportunities()) != 1 {
		t.Fatal("second conversion must not create records")
	}
}

func TestConvertRollsBackOnCollaboratorFailure(t *testing.T) {
	cases := []struct {
		name   string
		inject func(*memstore.Store)
	}{
		{"company", func(s *memstore.Store) { s.FailCreateCompany = errors.New("company insert failed") }},
		{"opportunity", func(s *memstore.Store) { s.FailCreateOpportunity = errors.New("opportunity insert failed") }},
		{"timeline", func(s *memstore.Store) { s.FailTimeline = errors.New("timeline insert failed") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := memstore.New()
			lead := seedLead(t, store, strPtr("Acme Corp"))
			tc.inject(store)

			_, err := newOrchestrator(store).Convert(context.Background(), lead.ID, Options{
				CreatePerson:      true,
				CreateCompany:     true,
				CreateOpportunity: true,
			})
			if !apperr.Is(err, apperr.KindConversion) {
				t.Fatalf("expected conversion failure, got %v", err)
			}

			if len(store.People()) != 0 || len(store.Companies()) != 0 || len(store.Opportunities()) != 0 {
				t.Fatal("partial records must be rolled back")
			}
			reloaded, _ := store.GetByID(context.Background(), nil, lead.ID)
			if reloaded.Status != domain.StatusNew || reloaded.ConvertedAt != nil {
				t.Fatalf("lead must be unchanged, got %+v", reloaded)
			}
			if store.Rollbacks != 1 {
				t.Fatalf("expected one rollback, got %d", store.Rollbacks)
			}
		})
	}
}

func TestConvertUnknownLead(t *testing.T) {
	store := memstore.New()
	_, err := newOrchestrator(store).Convert(context.Background(), uuid.New(), Options{CreatePerson: true})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestConvertSoftDeletedLeadIsNotFound(t *testing.T) {
	store := memstore.New()
	lead := seedLead(t, store, nil)
	if err := store.SoftDelete(context.Background(), nil, lead.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	_, err := newOrchestrator(store).Convert(context.Background(), lead.ID, Options{})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
