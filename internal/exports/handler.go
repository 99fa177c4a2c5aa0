package exports

import (
	"net/http"

	"crm_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// CreateLeadExport uploads a CSV of every live lead and returns a presigned
// download link.
func (h *Handler) CreateLeadExport(c *gin.Context) {
	result, err := h.svc.ExportLeads(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}
