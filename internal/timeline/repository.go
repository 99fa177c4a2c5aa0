package timeline

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"crm_backend/platform/db"

	"github.com/google/uuid"
)

// TruncateSummary trims text to maxLen runes, appending "..." on overflow.
// Returns nil for blank input.
func TruncateSummary(text string, maxLen int) *string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if runes := []rune(trimmed); len(runes) > maxLen {
		trimmed = string(runes[:maxLen]) + "..."
	}
	return &trimmed
}

type Event struct {
	ID        uuid.UUID
	LeadID    uuid.UUID
	ActorType string
	ActorName string
	EventType string
	Title     string
	Summary   *string
	Metadata  map[string]any
	CreatedAt time.Time
}

type CreateEventParams struct {
	LeadID    uuid.UUID
	ActorType string
	ActorName string
	EventType string
	Title     string
	Summary   *string
	Metadata  map[string]any
}

// Repository persists timeline events through the executor it is given.
type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) Create(ctx context.Context, q db.DBTX, params CreateEventParams) (Event, error) {
	metadata := params.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return Event{}, err
	}

	event := Event{Metadata: metadata}
	err = q.QueryRow(ctx, `
		INSERT INTO lead_timeline_events (lead_id, actor_type, actor_name, event_type, title, summary, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, lead_id, actor_type, actor_name, event_type, title, summary, created_at
	`, params.LeadID, params.ActorType, params.ActorName, params.EventType, params.Title, params.Summary, metadataJSON).Scan(
		&event.ID,
		&event.LeadID,
		&event.ActorType,
		&event.ActorName,
		&event.EventType,
		&event.Title,
		&event.Summary,
		&event.CreatedAt,
	)
	return event, err
}

// ListByLead returns a lead's events, newest first.
func (r *Repository) ListByLead(ctx context.Context, q db.DBTX, leadID uuid.UUID) ([]Event, error) {
	rows, err := q.Query(ctx, `
		SELECT id, lead_id, actor_type, actor_name, event_type, title, summary, metadata, created_at
		FROM lead_timeline_events
		WHERE lead_id = $1
		ORDER BY created_at DESC, id DESC
	`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0)
	for rows.Next() {
		var event Event
		var metadataJSON []byte
		if err := rows.Scan(
			&event.ID,
			&event.LeadID,
			&event.ActorType,
			&event.ActorName,
			&event.EventType,
			&event.Title,
			&event.Summary,
			&metadataJSON,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &event.Metadata); err != nil {
				return nil, err
			}
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
