// Package opportunities provides the opportunities bounded context module.
package opportunities

import (
	apphttp "crm_backend/internal/http"
	"crm_backend/internal/opportunities/handler"
	"crm_backend/internal/opportunities/repository"
	"crm_backend/internal/opportunities/service"
	"crm_backend/platform/config"
	"crm_backend/platform/db"
)

// Module is the opportunities bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the opportunities module.
func NewModule(conn db.DBTX, cfg config.LeadsConfig) *Module {
	svc := service.New(repository.New(conn), cfg.GetDefaultCurrency())
	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "opportunities"
}

// Service returns the opportunities service for conversion adapters.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts /api/opportunities.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.API)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
