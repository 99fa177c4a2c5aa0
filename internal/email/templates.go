package email

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates/*.txt
var templateFS embed.FS

// LeadCreatedData is the content of the new-lead notification. Source is the
// display label, e.g. "Web Form".
type LeadCreatedData struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	CompanyName string
	JobTitle    string
	Source      string
	Score       int
	LeadURL     string
}

func renderEmailTemplate(name string, data any) (string, error) {
	tmpl, err := template.New(name).ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

// RenderLeadCreated builds the subject and plain-text body for a new lead.
func RenderLeadCreated(data LeadCreatedData) (subject, body string, err error) {
	body, err = renderEmailTemplate("lead_created.txt", data)
	if err != nil {
		return "", "", err
	}
	subject = fmt.Sprintf(subjectLeadCreatedFmt, data.FirstName, data.LastName, data.Source)
	return subject, body, nil
}
