package webhook

import (
	"context"
	"net/http"
	"strconv"

	"crm_backend/internal/leads/transport"
	"crm_backend/platform/apperr"
	"crm_backend/platform/httpkit"
	"crm_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

const (
	errInvalidRequest = "invalid request body"
	errNoFormData     = "no form data received"
	maxMultipartBytes = 1 << 20
)

// LeadCreator is the capture entry point of the leads module.
type LeadCreator interface {
	CreateFromWebhook(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error)
}

// Handler handles webhook HTTP requests.
type Handler struct {
	leads LeadCreator
	log   *logger.Logger
}

// NewHandler creates a new webhook handler.
func NewHandler(leads LeadCreator, log *logger.Logger) *Handler {
	return &Handler{leads: leads, log: log}
}

// HandleLeadCapture processes a public lead form submission.
// POST /webhooks/lead-capture
// Accepts a JSON object or url-encoded/multipart form fields.
func (h *Handler) HandleLeadCapture(c *gin.Context) {
	fields, err := collectFields(c)
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest(errInvalidRequest))
		return
	}
	if len(fields) == 0 {
		httpkit.HandleError(c, apperr.BadRequest(errNoFormData))
		return
	}

	lead, err := h.leads.CreateFromWebhook(c.Request.Context(), ExtractFields(fields).CreateRequest())
	if httpkit.HandleError(c, err) {
		return
	}

	h.log.WithContext(c.Request.Context()).LeadEvent("lead_captured", lead.ID.String(), "origin", c.GetHeader("Origin"))
	c.JSON(http.StatusCreated, lead)
}

func collectFields(c *gin.Context) (map[string]string, error) {
	fields := make(map[string]string)

	if c.ContentType() == gin.MIMEJSON {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, err
		}
		for key, val := range body {
			switch v := val.(type) {
			case string:
				fields[key] = v
			case float64:
				fields[key] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
		return fields, nil
	}

	if err := c.Request.ParseMultipartForm(maxMultipartBytes); err != nil {
		if err := c.Request.ParseForm(); err != nil {
			return nil, err
		}
	}
	if c.Request.MultipartForm != nil {
		for key, values := range c.Request.MultipartForm.Value {
			if len(values) > 0 {
				fields[key] = values[0]
			}
		}
	}
	for key, values := range c.Request.PostForm {
		if _, exists := fields[key]; !exists && len(values) > 0 {
			fields[key] = values[0]
		}
	}
	return fields, nil
}
