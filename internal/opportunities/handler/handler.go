package handler

import (
	"net/http"

	"crm_backend/internal/opportunities/repository"
	"crm_backend/internal/opportunities/service"
	"crm_backend/internal/opportunities/transport"
	"crm_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/opportunities/:id", h.Get)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusNotFound, "invalid id", nil)
		return
	}

	opp, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toResponse(opp))
}

func toResponse(o repository.Opportunity) transport.OpportunityResponse {
	var closeDate *string
	if o.CloseDate != nil {
		formatted := o.CloseDate.Format("2006-01-02")
		closeDate = &formatted
	}
	return transport.OpportunityResponse{
		ID:               o.ID,
		Name:             o.Name,
		Stage:            o.Stage.String(),
		AmountMicros:     o.AmountMicros,
		CurrencyCode:     o.CurrencyCode,
		CloseDate:        closeDate,
		CompanyID:        o.CompanyID,
		PointOfContactID: o.PointOfContactID,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}
