package domain

import "testing"

func TestParseSource(t *testing.T) {
	cases := map[string]Source{
		"web_form":       SourceWebForm,
		"WebForm":        SourceWebForm,
		"Web Form":       SourceWebForm,
		"EMAIL":          SourceEmail,
		"referral":       SourceReferral,
		"manual_entry":   SourceManualEntry,
		"":               SourceManualEntry,
		"carrier-pigeon": SourceManualEntry,
	}
	for input, want := range cases {
		if got := ParseSource(input); got != want {
			t.Fatalf("ParseSource(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSourceNames(t *testing.T) {
	if SourceWebForm.String() != "WebForm" {
		t.Fatalf("unexpected wire name %q", SourceWebForm.String())
	}
	if SourceWebForm.DisplayName() != "Web Form" {
		t.Fatalf("unexpected display name %q", SourceWebForm.DisplayName())
	}
	if SourceManualEntry.DisplayName() != "Manual Entry" {
		t.Fatalf("unexpected display name %q", SourceManualEntry.DisplayName())
	}
}

func TestLookupSourceHasNoFallback(t *testing.T) {
	if _, ok := LookupSource("carrier-pigeon"); ok {
		t.Fatal("expected unknown source to be rejected")
	}
	if got, ok := LookupSource("Referral"); !ok || got != SourceReferral {
		t.Fatalf("LookupSource(Referral) = %q, %v", got, ok)
	}
}
