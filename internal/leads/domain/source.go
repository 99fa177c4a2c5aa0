package domain

import "strings"

// Source records where a lead was captured. Values are the stored tokens.
type Source string

const (
	SourceManualEntry Source = "manual_entry"
	SourceWebForm     Source = "web_form"
	SourceEmail       Source = "email"
	SourceReferral    Source = "referral"
)

type sourceNames struct {
	wire    string
	display string
}

var sources = map[Source]sourceNames{
	SourceManualEntry: {wire: "ManualEntry", display: "Manual Entry"},
	SourceWebForm:     {wire: "WebForm", display: "Web Form"},
	SourceEmail:       {wire: "Email", display: "Email"},
	SourceReferral:    {wire: "Referral", display: "Referral"},
}

// ParseSource maps snake tokens and titled names, case-insensitively.
// Blank or unknown input falls back to SourceManualEntry.
func ParseSource(raw string) Source {
	if source, ok := LookupSource(raw); ok {
		return source
	}
	return SourceManualEntry
}

// LookupSource is ParseSource without the fallback, for filters.
func LookupSource(raw string) (Source, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, " ", "")
	for source, names := range sources {
		if key == string(source) || key == strings.ToLower(names.wire) {
			return source, true
		}
	}
	return "", false
}

// String returns the titled wire representation, e.g. "WebForm".
func (s Source) String() string {
	if names, ok := sources[s]; ok {
		return names.wire
	}
	return string(s)
}

// DisplayName is the human label used in notifications and the timeline.
func (s Source) DisplayName() string {
	if names, ok := sources[s]; ok {
		return names.display
	}
	return string(s)
}
