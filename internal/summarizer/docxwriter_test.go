package summarizer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "standup.docx")
	summary := MeetingSummary{
		Summary:     "The team agreed to **ship** on Friday.",
		ActionItems: []string{"Alice updates the changelog"},
		KeyPoints:   []string{"Release scope is frozen"},
	}

	if err := WriteDocx(path, "Standup", summary, "Good morning.\n\nLet's start."); err != nil {
		t.Fatalf("WriteDocx() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("docx not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("docx is empty")
	}
}

func TestTranscriptParagraphs(t *testing.T) {
	got := transcriptParagraphs("  one  two\nthree\n\n\n four ")
	if len(got) != 2 || got[0] != "one two three" || got[1] != "four" {
		t.Errorf("transcriptParagraphs() = %q", got)
	}
}

func TestCleanMarkdownInline(t *testing.T) {
	if got := cleanMarkdownInline("**a** __b__ `c`"); got != "a b c" {
		t.Errorf("cleanMarkdownInline() = %q", got)
	}
}
