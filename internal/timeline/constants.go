// Package timeline stores the activity history shown on a lead.
package timeline

// ActorType constants identify the category of entity that produced a timeline event.
const (
	ActorTypeUser   = "User"
	ActorTypeSystem = "System"
	ActorTypeLead   = "Lead" // the prospect acting through a public form
)

// System actor names.
const (
	ActorNameLeadService = "LeadService"
	ActorNameWebhook     = "WebhookCapture"
)

// EventType constants identify the nature of a timeline event.
const (
	EventTypeLeadCaptured  = "lead_captured"
	EventTypeStatusChanged = "status_changed"
	EventTypeLeadConverted = "lead_converted"
)

// SummaryMaxLen is the maximum character length for event summaries.
const SummaryMaxLen = 400
