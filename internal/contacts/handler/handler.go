package handler

import (
	"net/http"

	"crm_backend/internal/contacts/repository"
	"crm_backend/internal/contacts/service"
	"crm_backend/internal/contacts/transport"
	"crm_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgInvalidID = "invalid id"

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/people/:id", h.GetPerson)
	rg.GET("/companies/:id", h.GetCompany)
}

func (h *Handler) GetPerson(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusNotFound, msgInvalidID, nil)
		return
	}

	person, err := h.svc.GetPerson(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toPersonResponse(person))
}

func (h *Handler) GetCompany(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusNotFound, msgInvalidID, nil)
		return
	}

	company, err := h.svc.GetCompany(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toCompanyResponse(company))
}

func toPersonResponse(p repository.Person) transport.PersonResponse {
	return transport.PersonResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		CompanyID: p.CompanyID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toCompanyResponse(co repository.Company) transport.CompanyResponse {
	return transport.CompanyResponse{
		ID:         co.ID,
		Name:       co.Name,
		DomainName: co.DomainName,
		CreatedAt:  co.CreatedAt,
		UpdatedAt:  co.UpdatedAt,
	}
}
