package webhook

import (
	"sort"
	"strings"

	"crm_backend/internal/leads/transport"
)

// ExtractedFields holds the lead fields found in raw form data via label matching.
type ExtractedFields struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	CompanyName string
	JobTitle    string
	Message     string
}

// ExtractFields performs best-effort field extraction from a flat string map of form data.
// It uses label matching to identify common fields across any form. When several keys
// match the same field, the most specific label wins: an earlier pattern beats a later
// one, an exact label beats a normalized one, and remaining ties go to the key that
// sorts first. The result never depends on map iteration order.
func ExtractFields(data map[string]string) ExtractedFields {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var values [fieldCount]string
	var ranks [fieldCount]int
	for i := range ranks {
		ranks[i] = -1
	}

	for _, key := range keys {
		value := strings.TrimSpace(data[key])
		if value == "" {
			continue
		}
		f, rank, ok := classifyLabel(strings.ToLower(strings.TrimSpace(key)))
		if !ok {
			continue
		}
		if ranks[f] < 0 || rank < ranks[f] {
			values[f] = value
			ranks[f] = rank
		}
	}

	result := ExtractedFields{
		FirstName:   values[fieldFirstName],
		LastName:    values[fieldLastName],
		Email:       values[fieldEmail],
		Phone:       values[fieldPhone],
		CompanyName: values[fieldCompany],
		JobTitle:    values[fieldJobTitle],
		Message:     values[fieldMessage],
	}

	// A single name field fills whichever parts the form did not send separately.
	if fullName := values[fieldFullName]; fullName != "" {
		parts := strings.SplitN(fullName, " ", 2)
		if result.FirstName == "" {
			result.FirstName = parts[0]
		}
		if result.LastName == "" && len(parts) > 1 {
			result.LastName = strings.TrimSpace(parts[1])
		}
	}

	return result
}

// CreateRequest converts the extracted fields into a lead create request.
func (e ExtractedFields) CreateRequest() transport.CreateLeadRequest {
	return transport.CreateLeadRequest{
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Email:       e.Email,
		Phone:       optional(e.Phone),
		CompanyName: optional(e.CompanyName),
		JobTitle:    optional(e.JobTitle),
		Notes:       optional(e.Message),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type field int

const (
	fieldFirstName field = iota
	fieldLastName
	fieldFullName
	fieldEmail
	fieldPhone
	fieldCompany
	fieldJobTitle
	fieldMessage
	fieldCount
)

// Field label patterns, most specific first.
var fieldPatterns = [fieldCount][]string{
	fieldFirstName: {"first_name", "firstname", "first name", "given_name", "givenname", "fname"},
	fieldLastName:  {"last_name", "lastname", "last name", "family_name", "familyname", "surname", "lname"},
	fieldFullName:  {"full_name", "fullname", "your_name", "your name", "name"},
	fieldEmail:     {"email", "email_address", "emailaddress", "e-mail", "e_mail", "mail"},
	fieldPhone:     {"phone", "phone_number", "phonenumber", "telephone", "tel", "mobile"},
	fieldCompany:   {"company_name", "companyname", "company", "organization", "organisation", "business"},
	fieldJobTitle:  {"job_title", "jobtitle", "position", "role", "title"},
	fieldMessage:   {"message", "comment", "comments", "notes", "description", "question"},
}

// classifyLabel maps a lowercased label to a field and a rank; lower ranks are more specific.
// Normalized labels with spaces, dashes and underscores stripped still match, one step behind
// the exact spelling of the same pattern.
func classifyLabel(label string) (field, int, bool) {
	normalized := labelReplacer.Replace(label)
	for f := fieldFirstName; f < fieldCount; f++ {
		for i, p := range fieldPatterns[f] {
			if label == p {
				return f, 2 * i, true
			}
			if normalized == labelReplacer.Replace(p) {
				return f, 2*i + 1, true
			}
		}
	}
	return 0, 0, false
}

var labelReplacer = strings.NewReplacer("-", "", "_", "", " ", "")
