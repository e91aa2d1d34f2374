package summarizer

import (
	"strings"
	"testing"
)

func TestParseActionItems(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"dash space bullets", "- Action item 1\n- Action item 2", []string{"Action item 1", "Action item 2"}},
		{"none", "none", []string{}},
		{"None capitalized", "None", []string{}},
		{"NONE with spaces", "  NONE \n", []string{}},
		{"bare dash bullets", "-Email the client\n-Book a room", []string{"Email the client", "Book a room"}},
		{"blank and dash-only lines dropped", "- one\n\n-\n   \n - two ", []string{"one", "two"}},
		{"plain lines kept", "Follow up with Sam", []string{"Follow up with Sam"}},
		{"none inside a list is an item", "- none\n- Ship v2", []string{"none", "Ship v2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseActionItems(tt.content)
			if got == nil {
				t.Fatal("ParseActionItems() returned nil")
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("ParseActionItems() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseKeyPointsTruncates(t *testing.T) {
	content := "- P1\n- P2\n- P3\n- P4\n- P5\n- P6\n- P7"

	got := ParseKeyPoints(content)
	want := []string{"P1", "P2", "P3", "P4", "P5"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("ParseKeyPoints() = %q, want %q", got, want)
	}
}

func TestParseKeyPointsNoneIsAPoint(t *testing.T) {
	got := ParseKeyPoints("None")
	if len(got) != 1 || got[0] != "None" {
		t.Errorf("ParseKeyPoints(None) = %q", got)
	}
}
