package sanitize

import "testing"

func TestStripHTML(t *testing.T) {
	cases := map[string]string{
		"<b>Acme</b> Corp":                      "Acme Corp",
		"&lt;script&gt;alert(1)&lt;/script&gt;": "alert(1)",
		"  plain  ":                             "plain",
	}
	for input, want := range cases {
		if got := StripHTML(input); got != want {
			t.Fatalf("StripHTML(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestLineCollapsesWhitespace(t *testing.T) {
	if got := Line("Head   of\n\tSales"); got != "Head of Sales" {
		t.Fatalf("unexpected line: %q", got)
	}
}

func TestTextPtr(t *testing.T) {
	if TextPtr(nil) != nil {
		t.Fatal("expected nil for nil input")
	}
	in := "<i>hi</i>"
	if got := TextPtr(&in); got == nil || *got != "hi" {
		t.Fatalf("unexpected result: %v", got)
	}
}
