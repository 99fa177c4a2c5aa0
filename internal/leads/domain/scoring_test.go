package domain

import "testing"

func TestScore(t *testing.T) {
	cases := []struct {
		name string
		in   ScoreInput
		want int
	}{
		{"email only", ScoreInput{Email: "a@b.co"}, 10},
		{"email and phone", ScoreInput{Email: "a@b.co", Phone: "+15550100"}, 40},
		{"email phone company", ScoreInput{Email: "a@b.co", Phone: "+15550100", CompanyName: "Acme"}, 60},
		{"all fields", ScoreInput{Email: "a@b.co", Phone: "+15550100", CompanyName: "Acme", JobTitle: "CTO"}, 75},
		{"blank strings count as absent", ScoreInput{Email: "a@b.co", Phone: "  ", CompanyName: "", JobTitle: "\t"}, 10},
		{"nothing", ScoreInput{}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(tc.in); got != tc.want {
				t.Fatalf("Score() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestMaxScore(t *testing.T) {
	if MaxScore != 75 {
		t.Fatalf("MaxScore = %d, want 75", MaxScore)
	}
}
