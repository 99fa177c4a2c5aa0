package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"crm_backend/internal/email"
	"crm_backend/internal/notification"
	"crm_backend/internal/scheduler"
	"crm_backend/platform/config"
	"crm_backend/platform/logger"
)

// The worker only renders and delivers queued notifications. Task payloads
// carry the lead fields, so no database connection is opened here.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env, "queue", cfg.GetAsynqQueueName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cfg.IsEmailEnabled() {
		log.Warn("SMTP_HOST not configured; queued lead notifications will be dropped")
	}
	notificationModule := notification.New(email.NewSender(cfg), cfg, log)

	worker, err := scheduler.NewWorker(cfg, notificationModule, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	if err := worker.Run(ctx); err != nil {
		os.Exit(1)
	}
	log.Info("scheduler stopped")
}
