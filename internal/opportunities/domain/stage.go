// Package domain holds opportunity pipeline rules.
package domain

import "strings"

// Stage is an opportunity pipeline stage. Values are the stored tokens.
type Stage string

const (
	StageProspecting   Stage = "prospecting"
	StageQualification Stage = "qualification"
	StageNegotiation   Stage = "negotiation"
	StageWon           Stage = "won"
	StageLost          Stage = "lost"
)

var stageDisplay = map[Stage]string{
	StageProspecting:   "Prospecting",
	StageQualification: "Qualification",
	StageNegotiation:   "Negotiation",
	StageWon:           "Won",
	StageLost:          "Lost",
}

// ParseStage accepts stored tokens or titled names in any casing.
func ParseStage(raw string) (Stage, bool) {
	candidate := Stage(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := stageDisplay[candidate]
	return candidate, ok
}

func (s Stage) String() string {
	if display, ok := stageDisplay[s]; ok {
		return display
	}
	return string(s)
}
