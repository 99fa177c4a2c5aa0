package notification

import (
	"context"
	"errors"
	"testing"

	"crm_backend/internal/email"
	"crm_backend/internal/events"
	"crm_backend/internal/scheduler"
	"crm_backend/platform/logger"

	"github.com/google/uuid"
)

type testNotificationConfig struct {
	recipient string
}

func (c testNotificationConfig) GetAppBaseURL() string            { return "https://crm.example.com/" }
func (c testNotificationConfig) GetLeadNotificationEmail() string { return c.recipient }

type sentEmail struct {
	to   string
	data email.LeadCreatedData
}

type testSender struct {
	sent []sentEmail
	err  error
}

func (s *testSender) SendLeadCreatedEmail(_ context.Context, toEmail string, data email.LeadCreatedData) error {
	s.sent = append(s.sent, sentEmail{to: toEmail, data: data})
	return s.err
}

type testScheduler struct {
	payloads []scheduler.LeadNotifyCreatedPayload
	err      error
}

func (s *testScheduler) EnqueueLeadNotification(_ context.Context, payload scheduler.LeadNotifyCreatedPayload) error {
	s.payloads = append(s.payloads, payload)
	return s.err
}

const testRecipient = "sales@example.com"

func newLeadCreated() events.LeadCreated {
	return events.LeadCreated{
		BaseEvent:     events.NewBaseEvent(),
		LeadID:        uuid.MustParse("6a1f7c5e-3f7a-4d4b-9d59-1b6f0f5a8c11"),
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "ada@example.com",
		Company:       "Analytical Engines",
		Source:        "WebForm",
		SourceDisplay: "Web Form",
		Score:         30,
	}
}

func TestLeadCreatedSendsInlineWithoutScheduler(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testNotificationConfig{recipient: testRecipient}, logger.Nop())

	if err := m.Handle(context.Background(), newLeadCreated()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(sender.sent))
	}
	got := sender.sent[0]
	if got.to != testRecipient {
		t.Fatalf("unexpected recipient %q", got.to)
	}
	if got.data.Source != "Web Form" || got.data.CompanyName != "Analytical Engines" || got.data.Score != 30 {
		t.Fatalf("unexpected data: %+v", got.data)
	}
	if got.data.LeadURL != "https://crm.example.com/leads/6a1f7c5e-3f7a-4d4b-9d59-1b6f0f5a8c11" {
		t.Fatalf("unexpected lead url %q", got.data.LeadURL)
	}
}

func TestLeadCreatedIsQueuedWhenSchedulerConfigured(t *testing.T) {
	sender := &testSender{}
	queue := &testScheduler{}
	m := New(sender, testNotificationConfig{recipient: testRecipient}, logger.Nop())
	m.SetScheduler(queue)

	_ = m.Handle(context.Background(), newLeadCreated())

	if len(queue.payloads) != 1 || queue.payloads[0].SourceDisplay != "Web Form" {
		t.Fatalf("unexpected queued payloads: %+v", queue.payloads)
	}
	if len(sender.sent) != 0 {
		t.Fatal("expected no inline email when the task was queued")
	}
}

func TestLeadCreatedFallsBackInlineWhenEnqueueFails(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testNotificationConfig{recipient: testRecipient}, logger.Nop())
	m.SetScheduler(&testScheduler{err: errors.New("redis down")})

	_ = m.Handle(context.Background(), newLeadCreated())

	if len(sender.sent) != 1 {
		t.Fatalf("expected inline fallback, got %d emails", len(sender.sent))
	}
}

func TestSendFailureIsSwallowed(t *testing.T) {
	sender := &testSender{err: errors.New("smtp refused")}
	m := New(sender, testNotificationConfig{recipient: testRecipient}, logger.Nop())

	if err := m.Handle(context.Background(), newLeadCreated()); err != nil {
		t.Fatalf("expected delivery failure to be swallowed, got %v", err)
	}
}

func TestNoRecipientSkipsSend(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testNotificationConfig{}, logger.Nop())

	if err := m.NotifyLeadCreated(context.Background(), scheduler.LeadNotifyCreatedPayload{LeadID: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatal("expected no email without a recipient")
	}
}

func TestNotifyLeadCreatedFallsBackToSourceToken(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testNotificationConfig{recipient: testRecipient}, logger.Nop())

	err := m.NotifyLeadCreated(context.Background(), scheduler.LeadNotifyCreatedPayload{LeadID: "x", Source: "Referral"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.sent[0].data.Source != "Referral" {
		t.Fatalf("unexpected source %q", sender.sent[0].data.Source)
	}
}

func TestRegisterHandlersSubscribesLeadCreated(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testNotificationConfig{recipient: testRecipient}, logger.Nop())
	bus := events.NewInMemoryBus(logger.Nop())
	m.RegisterHandlers(bus)

	if err := bus.PublishSync(context.Background(), newLeadCreated()); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(sender.sent))
	}
}
