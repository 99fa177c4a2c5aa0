// Package contacts provides the people and companies bounded context module.
package contacts

import (
	"crm_backend/internal/contacts/handler"
	"crm_backend/internal/contacts/repository"
	"crm_backend/internal/contacts/service"
	apphttp "crm_backend/internal/http"
	"crm_backend/platform/db"
)

// Module is the contacts bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the contacts module.
func NewModule(conn db.DBTX) *Module {
	svc := service.New(repository.New(conn))
	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "contacts"
}

// Service returns the contacts service for conversion adapters.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts /api/people and /api/companies.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.API)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
