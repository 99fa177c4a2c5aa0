// Package service is the lead lifecycle entry point used by the HTTP
// handlers and the lead-capture webhook.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"crm_backend/internal/events"
	"crm_backend/internal/leads/conversion"
	"crm_backend/internal/leads/domain"
	"crm_backend/internal/leads/guard"
	"crm_backend/internal/leads/ports"
	"crm_backend/internal/leads/repository"
	"crm_backend/internal/leads/transport"
	"crm_backend/internal/timeline"
	"crm_backend/platform/apperr"
	"crm_backend/platform/db"
	"crm_backend/platform/logger"
	"crm_backend/platform/phone"
	"crm_backend/platform/sanitize"
	"crm_backend/platform/validator"

	"github.com/google/uuid"
)

// Validation messages.
const (
	MsgFirstNameRequired = "First name cannot be empty"
	MsgLastNameRequired  = "Last name cannot be empty"
	MsgInvalidEmail      = "Invalid email"
	MsgLeadNotFound      = "Lead not found"
)

// Deps wires the service. Timeline is optional.
type Deps struct {
	UoW         db.UnitOfWork
	Leads       repository.LeadStore
	Timeline    ports.Timeline
	Converter   *conversion.Orchestrator
	Bus         events.Bus
	Validator   *validator.Validator
	PhoneRegion string
	Log         *logger.Logger
}

type Service struct {
	uow         db.UnitOfWork
	leads       repository.LeadStore
	guard       *guard.Guard
	timeline    ports.Timeline
	converter   *conversion.Orchestrator
	bus         events.Bus
	val         *validator.Validator
	phoneRegion string
	log         *logger.Logger
	now         func() time.Time
}

func New(deps Deps) *Service {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	val := deps.Validator
	if val == nil {
		val = validator.New()
	}
	return &Service{
		uow:         deps.UoW,
		leads:       deps.Leads,
		guard:       guard.New(deps.Leads),
		timeline:    deps.Timeline,
		converter:   deps.Converter,
		bus:         deps.Bus,
		val:         val,
		phoneRegion: deps.PhoneRegion,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// actor identifies who produced a lead for the timeline.
type actor struct {
	kind string
	name string
}

// Create validates, scores and stores a new lead.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	source := domain.ParseSource(req.Source)
	return s.create(ctx, req, source, actor{kind: timeline.ActorTypeUser, name: timeline.ActorNameLeadService})
}

// CreateFromWebhook stores a lead captured by a public form. The source is
// always WebForm whatever the payload says.
func (s *Service) CreateFromWebhook(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	return s.create(ctx, req, domain.SourceWebForm, actor{kind: timeline.ActorTypeLead, name: timeline.ActorNameWebhook})
}

func (s *Service) create(ctx context.Context, req transport.CreateLeadRequest, source domain.Source, by actor) (transport.LeadResponse, error) {
	params, err := s.prepareCreate(req, source)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	var lead repository.Lead
	err = s.uow.WithTx(ctx, func(q db.DBTX) error {
		if err := s.guard.CheckUnique(ctx, q, params.Email); err != nil {
			return err
		}

		created, err := s.leads.Create(ctx, q, params)
		if err != nil {
			return guard.MapInsertError(err)
		}

		if err := s.recordTimeline(ctx, q, ports.TimelineEntry{
			LeadID:    created.ID,
			ActorType: by.kind,
			ActorName: by.name,
			EventType: timeline.EventTypeLeadCaptured,
			Title:     "Lead captured via " + created.Source.DisplayName(),
			Summary:   timeline.TruncateSummary(derefString(created.Notes), timeline.SummaryMaxLen),
			Metadata:  map[string]any{"score": created.Score, "source": created.Source.String()},
		}); err != nil {
			return err
		}

		lead = created
		return nil
	})
	if err != nil {
		if apperr.GetKind(err) == apperr.KindUnknown {
			s.log.WithContext(ctx).DatabaseError("create_lead", err)
		}
		return transport.LeadResponse{}, err
	}

	leadsCreatedTotal.WithLabelValues(string(lead.Source)).Inc()
	s.log.WithContext(ctx).LeadEvent("lead_created", lead.ID.String(), "source", lead.Source.String(), "score", lead.Score)
	s.publish(ctx, events.LeadCreated{
		BaseEvent:     events.NewBaseEvent(),
		LeadID:        lead.ID,
		FirstName:     lead.FirstName,
		LastName:      lead.LastName,
		Email:         lead.Email,
		Phone:         derefString(lead.Phone),
		Company:       derefString(lead.CompanyName),
		JobTitle:      derefString(lead.JobTitle),
		Source:        lead.Source.String(),
		SourceDisplay: lead.Source.DisplayName(),
		Score:         lead.Score,
		CreatedAt:     lead.CreatedAt,
	})

	return ToLeadResponse(lead), nil
}

// prepareCreate applies the field rules in order: first name, email, last name.
// Company name and job title are stored as sent, trimmed, so the score counts
// every non-blank value.
func (s *Service) prepareCreate(req transport.CreateLeadRequest, source domain.Source) (repository.CreateLeadParams, error) {
	firstName := sanitize.Line(req.FirstName)
	if firstName == "" {
		return repository.CreateLeadParams{}, apperr.Validation(MsgFirstNameRequired)
	}

	email := strings.TrimSpace(req.Email)
	if !s.val.IsEmail(email) {
		return repository.CreateLeadParams{}, apperr.Validation(MsgInvalidEmail)
	}

	lastName := sanitize.Line(req.LastName)
	if lastName == "" {
		return repository.CreateLeadParams{}, apperr.Validation(MsgLastNameRequired)
	}

	params := repository.CreateLeadParams{
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		Phone:       normalizePhone(req.Phone, s.phoneRegion),
		CompanyName: optionalTrimmed(req.CompanyName),
		JobTitle:    optionalTrimmed(req.JobTitle),
		Source:      source,
		Notes:       optionalText(req.Notes),
	}
	params.Score = domain.Score(domain.ScoreInput{
		Email:       params.Email,
		Phone:       derefString(params.Phone),
		CompanyName: derefString(params.CompanyName),
		JobTitle:    derefString(params.JobTitle),
	})
	return params, nil
}

// GetByID returns a live lead.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.leads.GetByID(ctx, s.uow.Conn(), id)
	if err != nil {
		return transport.LeadResponse{}, mapNotFound(err)
	}
	return ToLeadResponse(lead), nil
}

// List returns live leads, newest first, optionally filtered.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) ([]transport.LeadResponse, error) {
	params, err := parseListFilters(req)
	if err != nil {
		return nil, err
	}

	leads, err := s.leads.List(ctx, s.uow.Conn(), params)
	if err != nil {
		return nil, err
	}

	out := make([]transport.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		out = append(out, ToLeadResponse(lead))
	}
	return out, nil
}

// Snapshot returns every live lead for exports.
func (s *Service) Snapshot(ctx context.Context) ([]repository.Lead, error) {
	return s.leads.List(ctx, s.uow.Conn(), repository.ListParams{})
}

func parseListFilters(req transport.ListLeadsRequest) (repository.ListParams, error) {
	var params repository.ListParams
	if strings.TrimSpace(req.Status) != "" {
		status, ok := domain.ParseStatus(req.Status)
		if !ok {
			return params, apperr.Validation(domain.MsgInvalidStatus)
		}
		params.Status = &status
	}
	if strings.TrimSpace(req.Source) != "" {
		source, ok := domain.LookupSource(req.Source)
		if !ok {
			return params, apperr.Validation("Invalid source")
		}
		params.Source = &source
	}
	return params, nil
}

// UpdateStatus moves a lead between open statuses. The lead row is locked
// for the duration of the check and write.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req transport.UpdateLeadStatusRequest) (transport.LeadResponse, error) {
	var (
		updated  repository.Lead
		previous domain.Status
	)
	err := s.uow.WithTx(ctx, func(q db.DBTX) error {
		lead, err := s.leads.GetByIDForUpdate(ctx, q, id)
		if err != nil {
			return mapNotFound(err)
		}
		if lead.Status.IsTerminal() {
			return apperr.InvalidState(domain.MsgConvertedLeadImmutable)
		}

		target, ok := domain.ParseStatus(req.Status)
		if !ok {
			return apperr.Validation(domain.MsgInvalidStatus)
		}
		if err := domain.ValidateStatusChange(lead.Status, target); err != nil {
			return err
		}

		params := repository.UpdateStatusParams{ID: id, Status: target}
		if domain.SetsLastContacted(target) {
			contactedAt := s.now()
			params.ContactedAt = &contactedAt
		}

		updated, err = s.leads.UpdateStatus(ctx, q, params)
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.InvalidState(domain.MsgConvertedLeadImmutable)
		}
		if err != nil {
			return err
		}
		previous = lead.Status

		return s.recordTimeline(ctx, q, ports.TimelineEntry{
			LeadID:    id,
			ActorType: timeline.ActorTypeUser,
			ActorName: timeline.ActorNameLeadService,
			EventType: timeline.EventTypeStatusChanged,
			Title:     "Lead status changed to " + target.String(),
			Metadata:  map[string]any{"old_status": previous.String(), "new_status": target.String()},
		})
	})
	if err != nil {
		return transport.LeadResponse{}, err
	}

	leadStatusChangesTotal.WithLabelValues(string(updated.Status)).Inc()
	s.log.WithContext(ctx).LeadEvent("lead_status_changed", id.String(), "old_status", previous.String(), "new_status", updated.Status.String())
	s.publish(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    id,
		OldStatus: previous.String(),
		NewStatus: updated.Status.String(),
	})

	return ToLeadResponse(updated), nil
}

// Delete soft-deletes a live lead.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.leads.SoftDelete(ctx, s.uow.Conn(), id); err != nil {
		return mapNotFound(err)
	}

	s.log.WithContext(ctx).LeadEvent("lead_deleted", id.String())
	s.publish(ctx, events.LeadDeleted{BaseEvent: events.NewBaseEvent(), LeadID: id})
	return nil
}

// Convert hands the lead to the conversion orchestrator.
func (s *Service) Convert(ctx context.Context, id uuid.UUID, req transport.ConvertLeadRequest) (transport.ConvertLeadResponse, error) {
	result, err := s.converter.Convert(ctx, id, conversion.Options{
		CreatePerson:      req.CreatePerson,
		CreateCompany:     req.CreateCompany,
		CreateOpportunity: req.CreateOpportunity,
		OpportunityName:   req.OpportunityName,
		OpportunityAmount: req.OpportunityAmount,
	})
	if err != nil {
		if apperr.Is(err, apperr.KindConversion) {
			leadConversionsTotal.WithLabelValues("failed").Inc()
			s.log.WithContext(ctx).Error("lead conversion rolled back", "lead_id", id.String(), "error", err)
		}
		return transport.ConvertLeadResponse{}, err
	}

	leadConversionsTotal.WithLabelValues("converted").Inc()
	s.log.WithContext(ctx).LeadEvent("lead_converted", id.String(),
		"person_id", uuidString(result.PersonID),
		"company_id", uuidString(result.CompanyID),
		"opportunity_id", uuidString(result.OpportunityID),
	)
	s.publish(ctx, events.LeadConverted{
		BaseEvent:     events.NewBaseEvent(),
		LeadID:        id,
		PersonID:      result.PersonID,
		CompanyID:     result.CompanyID,
		OpportunityID: result.OpportunityID,
	})

	return transport.ConvertLeadResponse{
		Lead:          ToLeadResponse(result.Lead),
		PersonID:      result.PersonID,
		CompanyID:     result.CompanyID,
		OpportunityID: result.OpportunityID,
	}, nil
}

// Timeline lists a live lead's activities, newest first.
func (s *Service) Timeline(ctx context.Context, id uuid.UUID) ([]transport.TimelineEventResponse, error) {
	if _, err := s.leads.GetByID(ctx, s.uow.Conn(), id); err != nil {
		return nil, mapNotFound(err)
	}
	if s.timeline == nil {
		return []transport.TimelineEventResponse{}, nil
	}

	entries, err := s.timeline.ListLeadEvents(ctx, s.uow.Conn(), id)
	if err != nil {
		return nil, err
	}

	out := make([]transport.TimelineEventResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, transport.TimelineEventResponse{
			ID:        e.ID,
			ActorType: e.ActorType,
			ActorName: e.ActorName,
			EventType: e.EventType,
			Title:     e.Title,
			Summary:   e.Summary,
			Metadata:  e.Metadata,
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}

func (s *Service) recordTimeline(ctx context.Context, q db.DBTX, entry ports.TimelineEntry) error {
	if s.timeline == nil {
		return nil
	}
	return s.timeline.RecordLeadEvent(ctx, q, entry)
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, event)
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(MsgLeadNotFound)
	}
	return err
}

func normalizePhone(raw *string, region string) *string {
	if raw == nil {
		return nil
	}
	normalized := phone.NormalizeE164(*raw, region)
	if normalized == "" {
		return nil
	}
	return &normalized
}

func optionalTrimmed(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func optionalText(raw *string) *string {
	cleaned := sanitize.TextPtr(raw)
	if cleaned == nil || *cleaned == "" {
		return nil
	}
	return cleaned
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func uuidString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
