package summarizer

import "context"

// Prompt is one system/user exchange with a language model.
type Prompt struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// Completer is a language-model backend.
type Completer interface {
	Complete(ctx context.Context, p Prompt) (string, error)
}

// MeetingSummary is the structured result of summarizing a transcript.
type MeetingSummary struct {
	Summary               string   `json:"summary"`
	ActionItems           []string `json:"action_items"`
	KeyPoints             []string `json:"key_points"`
	ParticipantsMentioned []string `json:"participants_mentioned"`
}

// Summarizer turns a meeting transcript into a MeetingSummary.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (MeetingSummary, error)
}
