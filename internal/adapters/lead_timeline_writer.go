package adapters

import (
	"context"

	"crm_backend/internal/leads/ports"
	"crm_backend/internal/timeline"
	"crm_backend/platform/db"

	"github.com/google/uuid"
)

// LeadTimeline adapts the timeline repository for lead activity entries.
type LeadTimeline struct {
	repo *timeline.Repository
}

// NewLeadTimeline creates a new lead timeline adapter.
func NewLeadTimeline(repo *timeline.Repository) *LeadTimeline {
	return &LeadTimeline{repo: repo}
}

// RecordLeadEvent writes a lead timeline event.
func (a *LeadTimeline) RecordLeadEvent(ctx context.Context, q db.DBTX, entry ports.TimelineEntry) error {
	_, err := a.repo.Create(ctx, q, timeline.CreateEventParams{
		LeadID:    entry.LeadID,
		ActorType: entry.ActorType,
		ActorName: entry.ActorName,
		EventType: entry.EventType,
		Title:     entry.Title,
		Summary:   entry.Summary,
		Metadata:  entry.Metadata,
	})
	return err
}

// ListLeadEvents returns the lead's history, newest first.
func (a *LeadTimeline) ListLeadEvents(ctx context.Context, q db.DBTX, leadID uuid.UUID) ([]ports.TimelineEntry, error) {
	events, err := a.repo.ListByLead(ctx, q, leadID)
	if err != nil {
		return nil, err
	}

	entries := make([]ports.TimelineEntry, 0, len(events))
	for _, e := range events {
		entries = append(entries, ports.TimelineEntry{
			ID:        e.ID,
			LeadID:    e.LeadID,
			ActorType: e.ActorType,
			ActorName: e.ActorName,
			EventType: e.EventType,
			Title:     e.Title,
			Summary:   e.Summary,
			Metadata:  e.Metadata,
			CreatedAt: e.CreatedAt,
		})
	}
	return entries, nil
}

// Compile-time check.
var _ ports.Timeline = (*LeadTimeline)(nil)
