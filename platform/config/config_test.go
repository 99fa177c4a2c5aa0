package config

import "testing"

func lookupFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"DATABASE_URL": "postgres://localhost/crm",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.GetErrorStatusMode() != ErrorStatusCompat {
		t.Fatalf("expected compat error mode by default, got %q", cfg.GetErrorStatusMode())
	}
	if cfg.GetDefaultCurrency() != "USD" {
		t.Fatalf("expected USD default currency, got %q", cfg.GetDefaultCurrency())
	}
	if cfg.GetPhoneRegion() != "US" {
		t.Fatalf("expected US phone region, got %q", cfg.GetPhoneRegion())
	}
	if cfg.IsSchedulerEnabled() || cfg.IsEmailEnabled() || cfg.IsMinIOEnabled() {
		t.Fatal("optional collaborators should be disabled without configuration")
	}
	if cfg.GetWebhookRateLimitPerMinute() != 60 {
		t.Fatalf("expected webhook rate limit 60, got %d", cfg.GetWebhookRateLimitPerMinute())
	}
}

func TestFromLookupRequiresDatabaseURL(t *testing.T) {
	if _, err := FromLookup(lookupFrom(map[string]string{})); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestFromLookupRejectsUnknownErrorMode(t *testing.T) {
	_, err := FromLookup(lookupFrom(map[string]string{
		"DATABASE_URL":      "postgres://localhost/crm",
		"ERROR_STATUS_MODE": "loose",
	}))
	if err == nil {
		t.Fatal("expected error for unknown ERROR_STATUS_MODE")
	}
}

func TestFromLookupWildcardCORSConflictsWithCredentials(t *testing.T) {
	_, err := FromLookup(lookupFrom(map[string]string{
		"DATABASE_URL":           "postgres://localhost/crm",
		"CORS_ORIGINS":           "https://a.example.com, *",
		"CORS_ALLOW_CREDENTIALS": "true",
	}))
	if err == nil {
		t.Fatal("expected wildcard origin with credentials to be rejected")
	}
}

func TestFromLookupSMTPRequiresFromAddress(t *testing.T) {
	_, err := FromLookup(lookupFrom(map[string]string{
		"DATABASE_URL": "postgres://localhost/crm",
		"SMTP_HOST":    "smtp.example.com",
	}))
	if err == nil {
		t.Fatal("expected error when SMTP is configured without from address")
	}
}

func TestWorkerInProcessNeedsRedis(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"DATABASE_URL":         "postgres://localhost/crm",
		"SCHEDULER_IN_PROCESS": "true",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunWorkerInProcess() {
		t.Fatal("in-process worker should stay off without REDIS_URL")
	}

	cfg.RedisURL = "redis://localhost:6379/0"
	if !cfg.RunWorkerInProcess() {
		t.Fatal("expected in-process worker once redis is configured")
	}
}
