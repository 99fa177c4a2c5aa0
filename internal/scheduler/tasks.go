package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskLeadNotifyCreated = "leads.notify_created"

// LeadNotifyCreatedPayload carries what the notification needs so the worker
// never reads the lead back.
type LeadNotifyCreatedPayload struct {
	LeadID        string `json:"lead_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	CompanyName   string `json:"company_name,omitempty"`
	JobTitle      string `json:"job_title,omitempty"`
	Source        string `json:"source"`
	SourceDisplay string `json:"source_display"`
	Score         int    `json:"score"`
}

func NewLeadNotifyCreatedTask(payload LeadNotifyCreatedPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadNotifyCreated, data), nil
}

func ParseLeadNotifyCreatedPayload(task *asynq.Task) (LeadNotifyCreatedPayload, error) {
	var payload LeadNotifyCreatedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadNotifyCreatedPayload{}, err
	}
	return payload, nil
}
