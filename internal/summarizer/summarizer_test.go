package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/echoscribe/internal/errs"
	"github.com/nguyentantai21042004/echoscribe/internal/logger"
)

type fakeCompleter struct {
	responses []string
	err       error
	errAt     int
	prompts   []Prompt
}

func (f *fakeCompleter) Complete(_ context.Context, p Prompt) (string, error) {
	i := len(f.prompts)
	f.prompts = append(f.prompts, p)
	if f.err != nil && i == f.errAt {
		return "", f.err
	}
	if i >= len(f.responses) {
		return "", errors.New("unexpected call")
	}
	return f.responses[i], nil
}

func TestSummarizeEmptyTranscript(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t "} {
		completer := &fakeCompleter{}
		got, err := New(completer, 0, logger.Nop()).Summarize(context.Background(), in)
		if err != nil {
			t.Fatalf("Summarize(%q) error = %v", in, err)
		}

		if got.Summary != "No content to summarize" {
			t.Errorf("Summary = %q", got.Summary)
		}
		if got.ActionItems == nil || len(got.ActionItems) != 0 {
			t.Errorf("ActionItems = %#v, want empty", got.ActionItems)
		}
		if got.KeyPoints == nil || len(got.KeyPoints) != 0 {
			t.Errorf("KeyPoints = %#v, want empty", got.KeyPoints)
		}
		if got.ParticipantsMentioned == nil || len(got.ParticipantsMentioned) != 0 {
			t.Errorf("ParticipantsMentioned = %#v, want empty", got.ParticipantsMentioned)
		}
		if len(completer.prompts) != 0 {
			t.Errorf("completer called %d times for blank input", len(completer.prompts))
		}
	}
}

func TestSummarize(t *testing.T) {
	completer := &fakeCompleter{responses: []string{
		"  Summary of the meeting.\n",
		"- Action item 1\n- Action item 2",
		"- Key point 1\n- Key point 2",
	}}

	got, err := New(completer, 0, logger.Nop()).Summarize(context.Background(), "This is a test meeting transcription.")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if got.Summary != "Summary of the meeting." {
		t.Errorf("Summary = %q", got.Summary)
	}
	if strings.Join(got.ActionItems, "|") != "Action item 1|Action item 2" {
		t.Errorf("ActionItems = %v", got.ActionItems)
	}
	if strings.Join(got.KeyPoints, "|") != "Key point 1|Key point 2" {
		t.Errorf("KeyPoints = %v", got.KeyPoints)
	}

	if len(completer.prompts) != 3 {
		t.Fatalf("completer called %d times, want 3", len(completer.prompts))
	}

	wantTokens := []int{150, 500, 500}
	for i, p := range completer.prompts {
		if p.Temperature != 0.3 {
			t.Errorf("prompt %d temperature = %v, want 0.3", i, p.Temperature)
		}
		if p.MaxTokens != wantTokens[i] {
			t.Errorf("prompt %d max tokens = %d, want %d", i, p.MaxTokens, wantTokens[i])
		}
		if !strings.Contains(p.User, "This is a test meeting transcription.") {
			t.Errorf("prompt %d does not carry the transcript", i)
		}
	}
	if !strings.Contains(completer.prompts[1].System, "If none, return 'None'") {
		t.Errorf("action items system prompt = %q", completer.prompts[1].System)
	}
}

func TestSummarizeConfiguredMaxTokens(t *testing.T) {
	completer := &fakeCompleter{responses: []string{"s", "None", "- p"}}

	got, err := New(completer, 1000, logger.Nop()).Summarize(context.Background(), "text")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.ActionItems) != 0 {
		t.Errorf("ActionItems = %v, want none", got.ActionItems)
	}
	if completer.prompts[0].MaxTokens != 150 || completer.prompts[1].MaxTokens != 1000 || completer.prompts[2].MaxTokens != 1000 {
		t.Errorf("max tokens = %d/%d/%d", completer.prompts[0].MaxTokens, completer.prompts[1].MaxTokens, completer.prompts[2].MaxTokens)
	}
}

func TestSummarizeCompleterError(t *testing.T) {
	cause := errors.New("rate limited")

	for errAt := 0; errAt < 3; errAt++ {
		completer := &fakeCompleter{responses: []string{"s", "- a", "- k"}, err: cause, errAt: errAt}
		_, err := New(completer, 0, logger.Nop()).Summarize(context.Background(), "text")

		if !errors.Is(err, errs.ErrService) || !errors.Is(err, cause) {
			t.Errorf("call %d failing: error = %v, want ErrService wrapping cause", errAt, err)
		}
		if len(completer.prompts) != errAt+1 {
			t.Errorf("call %d failing: %d calls made, want %d", errAt, len(completer.prompts), errAt+1)
		}
	}
}
