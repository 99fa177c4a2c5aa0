// Package leads provides the lead lifecycle bounded context module.
// This file defines the module that encapsulates all leads setup and route registration.
package leads

import (
	"crm_backend/internal/events"
	apphttp "crm_backend/internal/http"
	"crm_backend/internal/leads/conversion"
	"crm_backend/internal/leads/handler"
	"crm_backend/internal/leads/ports"
	"crm_backend/internal/leads/repository"
	"crm_backend/internal/leads/service"
	"crm_backend/platform/config"
	"crm_backend/platform/db"
	"crm_backend/platform/logger"
	"crm_backend/platform/validator"
)

// Collaborators are the other bounded contexts conversion and the timeline
// write into, reached through adapters.
type Collaborators struct {
	Contacts      ports.ContactCreator
	Opportunities ports.OpportunityCreator
	Timeline      ports.Timeline
}

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(uow db.UnitOfWork, eventBus events.Bus, val *validator.Validator, cfg config.LeadsConfig, collab Collaborators, log *logger.Logger) *Module {
	repo := repository.New()

	converter := conversion.New(uow, repo, collab.Contacts, collab.Opportunities, collab.Timeline)
	svc := service.New(service.Deps{
		UoW:         uow,
		Leads:       repo,
		Timeline:    collab.Timeline,
		Converter:   converter,
		Bus:         eventBus,
		Validator:   val,
		PhoneRegion: cfg.GetPhoneRegion(),
		Log:         log,
	})

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the lead service for the webhook and export modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.API.Group("/leads"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
