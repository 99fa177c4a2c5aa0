// Package domain provides core business rules for the leads bounded context.
package domain

import (
	"strings"

	"crm_backend/platform/apperr"
)

// Status is the lifecycle state of a lead. Values are the stored tokens.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusQualified Status = "qualified"
	StatusConverted Status = "converted"
)

// Messages callers and clients match on.
const (
	MsgConvertedLeadImmutable = "Cannot change status of converted lead"
	MsgAlreadyConverted       = "Lead already converted"
	MsgConvertViaStatus       = "Lead can only be converted through the convert operation"
	MsgInvalidStatus          = "Invalid status"
)

var statusDisplay = map[Status]string{
	StatusNew:       "New",
	StatusContacted: "Contacted",
	StatusQualified: "Qualified",
	StatusConverted: "Converted",
}

// leadTransitions lists the targets reachable through a plain status update.
// Converted has no outgoing edges and is entered only by conversion.
var leadTransitions = map[Status]map[Status]bool{
	StatusNew:       {StatusNew: true, StatusContacted: true, StatusQualified: true},
	StatusContacted: {StatusNew: true, StatusContacted: true, StatusQualified: true},
	StatusQualified: {StatusNew: true, StatusContacted: true, StatusQualified: true},
	StatusConverted: {},
}

// ParseStatus accepts the titled form ("Contacted") or the lower-case token
// ("contacted") in any casing.
func ParseStatus(raw string) (Status, bool) {
	candidate := Status(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := statusDisplay[candidate]; !ok {
		return "", false
	}
	return candidate, true
}

// String returns the titled representation used on the wire.
func (s Status) String() string {
	if display, ok := statusDisplay[s]; ok {
		return display
	}
	return string(s)
}

// IsTerminal reports whether no further mutation is permitted.
func (s Status) IsTerminal() bool {
	return s == StatusConverted
}

// ValidateStatusChange checks a plain status update from current to target.
// The converted-lead guard runs first so a converted lead always reports
// MsgConvertedLeadImmutable whatever the target.
func ValidateStatusChange(current, target Status) error {
	if current.IsTerminal() {
		return apperr.InvalidState(MsgConvertedLeadImmutable)
	}
	if target == StatusConverted {
		return apperr.Validation(MsgConvertViaStatus)
	}
	if !leadTransitions[current][target] {
		return apperr.Validation(MsgInvalidStatus)
	}
	return nil
}

// ValidateConversion checks that current may enter Converted.
func ValidateConversion(current Status) error {
	if current.IsTerminal() {
		return apperr.InvalidState(MsgAlreadyConverted)
	}
	if _, ok := leadTransitions[current]; !ok {
		return apperr.Validation(MsgInvalidStatus)
	}
	return nil
}

// SetsLastContacted reports whether entering target should stamp
// last_contacted_at when it is still empty.
func SetsLastContacted(target Status) bool {
	return target == StatusContacted
}
