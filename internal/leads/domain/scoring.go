package domain

import "strings"

// Field weights for lead scoring.
const (
	ScoreEmail       = 10
	ScorePhone       = 30
	ScoreCompanyName = 20
	ScoreJobTitle    = 15

	MaxScore = ScoreEmail + ScorePhone + ScoreCompanyName + ScoreJobTitle
)

// ScoreInput holds the fields that contribute to a lead score.
type ScoreInput struct {
	Email       string
	Phone       string
	CompanyName string
	JobTitle    string
}

// Score sums the weights of the populated fields. Whitespace-only values count as empty.
func Score(in ScoreInput) int {
	score := 0
	if present(in.Email) {
		score += ScoreEmail
	}
	if present(in.Phone) {
		score += ScorePhone
	}
	if present(in.CompanyName) {
		score += ScoreCompanyName
	}
	if present(in.JobTitle) {
		score += ScoreJobTitle
	}
	return score
}

func present(value string) bool {
	return strings.TrimSpace(value) != ""
}
