package exports

import (
	"crm_backend/internal/adapters/storage"
	apphttp "crm_backend/internal/http"
	"crm_backend/platform/logger"
)

// Module is the exports bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule wires the export service. store may be nil when MinIO is not
// configured.
func NewModule(leads LeadSource, store storage.StorageService, bucket string, log *logger.Logger) *Module {
	service := NewService(leads, store, bucket, log)
	return &Module{
		handler: NewHandler(service),
		service: service,
	}
}

func (m *Module) Name() string {
	return "exports"
}

func (m *Module) Service() *Service { return m.service }

// RegisterRoutes mounts POST /api/leads/exports.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.API.POST("/leads/exports", m.handler.CreateLeadExport)
}

var _ apphttp.Module = (*Module)(nil)
