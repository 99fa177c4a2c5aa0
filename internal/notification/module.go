// Package notification sends the sales team an email when a lead is captured.
// It subscribes to lead events so the leads module never touches SMTP or the
// job queue directly.
package notification

import (
	"context"
	"strings"

	"crm_backend/internal/email"
	"crm_backend/internal/events"
	"crm_backend/internal/scheduler"
	"crm_backend/platform/config"
	"crm_backend/platform/logger"
)

type Module struct {
	sender    email.Sender
	scheduler scheduler.LeadNotificationScheduler
	cfg       config.NotificationConfig
	log       *logger.Logger
}

func New(sender email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Module {
	if sender == nil {
		sender = email.NoopSender{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Module{sender: sender, cfg: cfg, log: log}
}

// SetScheduler routes notifications through the job queue instead of sending
// them from the publishing goroutine.
func (m *Module) SetScheduler(s scheduler.LeadNotificationScheduler) { m.scheduler = s }

// RegisterHandlers subscribes to the lead events this module reacts to.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), m)
	m.log.Info("notification module registered event handlers")
}

// Handle never returns delivery errors; a failed notification must not affect
// the lead that triggered it.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadCreated:
		m.handleLeadCreated(ctx, e)
	default:
		m.log.Debug("notification ignored event", "event", event.EventName())
	}
	return nil
}

func (m *Module) handleLeadCreated(ctx context.Context, e events.LeadCreated) {
	payload := scheduler.LeadNotifyCreatedPayload{
		LeadID:        e.LeadID.String(),
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Email:         e.Email,
		Phone:         e.Phone,
		CompanyName:   e.Company,
		JobTitle:      e.JobTitle,
		Source:        e.Source,
		SourceDisplay: e.SourceDisplay,
		Score:         e.Score,
	}

	if m.scheduler != nil {
		err := m.scheduler.EnqueueLeadNotification(ctx, payload)
		if err == nil {
			return
		}
		m.log.Warn("lead notification enqueue failed, sending inline", "lead_id", payload.LeadID, "error", err)
	}

	if err := m.NotifyLeadCreated(ctx, payload); err != nil {
		m.log.Error("lead notification failed", "lead_id", payload.LeadID, "error", err)
	}
}

// NotifyLeadCreated renders and sends the new-lead email. It is also the
// handler the scheduler worker calls for queued notifications.
func (m *Module) NotifyLeadCreated(ctx context.Context, payload scheduler.LeadNotifyCreatedPayload) error {
	recipient := strings.TrimSpace(m.cfg.GetLeadNotificationEmail())
	if recipient == "" {
		m.log.Debug("lead notification skipped, no recipient configured", "lead_id", payload.LeadID)
		return nil
	}

	source := payload.SourceDisplay
	if source == "" {
		source = payload.Source
	}

	err := m.sender.SendLeadCreatedEmail(ctx, recipient, email.LeadCreatedData{
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		Email:       payload.Email,
		Phone:       payload.Phone,
		CompanyName: payload.CompanyName,
		JobTitle:    payload.JobTitle,
		Source:      source,
		Score:       payload.Score,
		LeadURL:     m.leadURL(payload.LeadID),
	})
	if err != nil {
		return err
	}

	m.log.Info("lead notification sent", "lead_id", payload.LeadID, "to", recipient)
	return nil
}

func (m *Module) leadURL(leadID string) string {
	return strings.TrimRight(m.cfg.GetAppBaseURL(), "/") + "/leads/" + leadID
}

var _ scheduler.LeadNotifier = (*Module)(nil)
