package scheduler

import (
	"context"
	"errors"
	"testing"

	"crm_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
)

type testSchedulerConfig struct {
	redisURL string
	queue    string
}

func (c testSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c testSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (c testSchedulerConfig) GetAsynqQueueName() string { return c.queue }
func (c testSchedulerConfig) GetAsynqConcurrency() int  { return 0 }
func (c testSchedulerConfig) IsSchedulerEnabled() bool  { return c.redisURL != "" }
func (c testSchedulerConfig) RunWorkerInProcess() bool  { return false }

type recordingNotifier struct {
	payloads []LeadNotifyCreatedPayload
	err      error
}

func (n *recordingNotifier) NotifyLeadCreated(_ context.Context, payload LeadNotifyCreatedPayload) error {
	n.payloads = append(n.payloads, payload)
	return n.err
}

func TestRedisClientOptParsesURL(t *testing.T) {
	opt, err := redisClientOpt("redis://:secret@cache.internal:6380/2", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opt.Addr != "cache.internal:6380" || opt.Password != "secret" || opt.DB != 2 {
		t.Fatalf("unexpected options: %+v", opt)
	}
	if opt.TLSConfig != nil {
		t.Fatal("expected no TLS config for redis:// scheme")
	}

	secure, err := redisClientOpt("rediss://cache.internal:6380", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secure.TLSConfig == nil || !secure.TLSConfig.InsecureSkipVerify {
		t.Fatal("expected insecure TLS config for rediss:// scheme")
	}
}

func TestRedisClientOptRejectsBadURL(t *testing.T) {
	if _, err := redisClientOpt("http://not-redis", false); err == nil {
		t.Fatal("expected error for non-redis scheme")
	}
}

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(testSchedulerConfig{}); err == nil {
		t.Fatal("expected error without redis url")
	}
	if _, err := NewWorker(testSchedulerConfig{}, nil, nil); err == nil {
		t.Fatal("expected error without redis url")
	}
}

func TestEnqueueLeadNotificationWritesPendingTask(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewClient(testSchedulerConfig{redisURL: "redis://" + mr.Addr(), queue: "leads"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	err = client.EnqueueLeadNotification(context.Background(), LeadNotifyCreatedPayload{
		LeadID:    "6a1f7c5e-3f7a-4d4b-9d59-1b6f0f5a8c11",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Source:    "WebForm",
		Score:     10,
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	pending, err := mr.List("asynq:{leads}:pending")
	if err != nil {
		t.Fatalf("read pending list: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected one pending task, got %d", len(pending))
	}
}

func TestNilClientEnqueueIsNoop(t *testing.T) {
	var client *Client
	if err := client.EnqueueLeadNotification(context.Background(), LeadNotifyCreatedPayload{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRedisHealthPing(t *testing.T) {
	mr := miniredis.RunT(t)
	health, err := NewRedisHealth(testSchedulerConfig{redisURL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("new health: %v", err)
	}
	t.Cleanup(func() { _ = health.Close() })

	if err := health.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}

	mr.Close()
	if err := health.Ping(context.Background()); err == nil {
		t.Fatal("expected ping to fail once redis is gone")
	}
}

func TestHandleLeadNotifyCreated(t *testing.T) {
	notifier := &recordingNotifier{}
	w := &Worker{notifier: notifier, log: logger.Nop()}

	task, err := NewLeadNotifyCreatedTask(LeadNotifyCreatedPayload{LeadID: "abc", FirstName: "Ada", Score: 40})
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if err := w.handleLeadNotifyCreated(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(notifier.payloads) != 1 || notifier.payloads[0].LeadID != "abc" || notifier.payloads[0].Score != 40 {
		t.Fatalf("unexpected payloads: %+v", notifier.payloads)
	}

	notifier.err = errors.New("smtp down")
	if err := w.handleLeadNotifyCreated(context.Background(), task); err == nil {
		t.Fatal("expected notifier error to be returned for retry")
	}
}

func TestHandleLeadNotifyCreatedSkipsRetryOnBadPayload(t *testing.T) {
	w := &Worker{notifier: &recordingNotifier{}, log: logger.Nop()}
	err := w.handleLeadNotifyCreated(context.Background(), asynq.NewTask(TaskLeadNotifyCreated, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}
