// Package webhook provides the public lead-capture bounded context module.
// This file defines the module that encapsulates all webhook setup and route registration.
package webhook

import (
	apphttp "crm_backend/internal/http"
	"crm_backend/platform/logger"
)

// Module is the webhook bounded context module implementing http.Module.
type Module struct {
	handler *Handler
}

// NewModule creates and initializes the webhook module with all its dependencies.
func NewModule(leadCreator LeadCreator, log *logger.Logger) *Module {
	return &Module{handler: NewHandler(leadCreator, log)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "webhook"
}

// RegisterRoutes mounts webhook routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Webhooks.Group("")
	if ctx.WebhookRateLimiter != nil {
		group.Use(ctx.WebhookRateLimiter.RateLimit())
	}
	group.POST("/lead-capture", m.handler.HandleLeadCapture)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
