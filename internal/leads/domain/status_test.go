package domain

import (
	"testing"

	"crm_backend/platform/apperr"
)

func TestParseStatusCanonicalizesCase(t *testing.T) {
	cases := map[string]Status{
		"contacted": StatusContacted,
		"Contacted": StatusContacted,
		"QUALIFIED": StatusQualified,
		" new ":     StatusNew,
		"Converted": StatusConverted,
	}
	for input, want := range cases {
		got, ok := ParseStatus(input)
		if !ok || got != want {
			t.Fatalf("ParseStatus(%q) = %q, %v; want %q", input, got, ok, want)
		}
	}

	if _, ok := ParseStatus("archived"); ok {
		t.Fatal("expected unknown status to be rejected")
	}
}

func TestStatusStringIsTitled(t *testing.T) {
	if StatusContacted.String() != "Contacted" {
		t.Fatalf("unexpected display %q", StatusContacted.String())
	}
	if StatusNew.String() != "New" {
		t.Fatalf("unexpected display %q", StatusNew.String())
	}
}

func TestValidateStatusChangeLateralMoves(t *testing.T) {
	open := []Status{StatusNew, StatusContacted, StatusQualified}
	for _, from := range open {
		for _, to := range open {
			if err := ValidateStatusChange(from, to); err != nil {
				t.Fatalf("%s -> %s should be allowed: %v", from, to, err)
			}
		}
	}
}

func TestValidateStatusChangeFromConverted(t *testing.T) {
	for _, to := range []Status{StatusNew, StatusContacted, StatusQualified, StatusConverted} {
		err := ValidateStatusChange(StatusConverted, to)
		if !apperr.Is(err, apperr.KindInvalidState) {
			t.Fatalf("expected invalid state for converted -> %s, got %v", to, err)
		}
		if err.Error() != MsgConvertedLeadImmutable {
			t.Fatalf("unexpected message %q", err.Error())
		}
	}
}

func TestValidateStatusChangeRejectsConvertedTarget(t *testing.T) {
	err := ValidateStatusChange(StatusQualified, StatusConverted)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateConversion(t *testing.T) {
	if err := ValidateConversion(StatusNew); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := ValidateConversion(StatusConverted)
	if !apperr.Is(err, apperr.KindInvalidState) || err.Error() != MsgAlreadyConverted {
		t.Fatalf("expected already converted error, got %v", err)
	}
}

func TestSetsLastContacted(t *testing.T) {
	if !SetsLastContacted(StatusContacted) {
		t.Fatal("contacted must stamp last_contacted_at")
	}
	if SetsLastContacted(StatusQualified) {
		t.Fatal("qualified must not stamp last_contacted_at")
	}
}
