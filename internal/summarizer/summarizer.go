package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/echoscribe/internal/errs"
)

const (
	// NoContent is the summary of an empty transcript.
	NoContent = "No content to summarize"

	temperature      = 0.3
	summaryMaxTokens = 150
	maxKeyPoints     = 5
)

const (
	summarySystem     = "You are a meeting assistant. Provide a concise 2-3 sentence summary of the meeting."
	summaryUser       = "Summarize this meeting transcription:\n\n%s"
	actionItemsSystem = "Extract action items from the meeting. Return each on a new line starting with '- '. If none, return 'None'."
	actionItemsUser   = "Extract action items from:\n\n%s"
	keyPointsSystem   = "Extract the key discussion points from the meeting. Return each on a new line starting with '- '. Maximum 5 points."
	keyPointsUser     = "Extract key points from:\n\n%s"
)

// Summarize runs three independent completions: summary, action items and
// key points. A blank transcript never reaches the completer.
func (s *implSummarizer) Summarize(ctx context.Context, transcript string) (MeetingSummary, error) {
	if strings.TrimSpace(transcript) == "" {
		s.logger.Warn(ctx, "Empty transcription provided")
		return MeetingSummary{
			Summary:               NoContent,
			ActionItems:           []string{},
			KeyPoints:             []string{},
			ParticipantsMentioned: []string{},
		}, nil
	}

	s.logger.Info(ctx, "Summarizing transcription (%d chars)", len(transcript))

	summary, err := s.complete(ctx, "summary", Prompt{
		System:      summarySystem,
		User:        fmt.Sprintf(summaryUser, transcript),
		MaxTokens:   summaryMaxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return MeetingSummary{}, err
	}

	actionItems, err := s.complete(ctx, "action items", Prompt{
		System:      actionItemsSystem,
		User:        fmt.Sprintf(actionItemsUser, transcript),
		MaxTokens:   s.maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return MeetingSummary{}, err
	}

	keyPoints, err := s.complete(ctx, "key points", Prompt{
		System:      keyPointsSystem,
		User:        fmt.Sprintf(keyPointsUser, transcript),
		MaxTokens:   s.maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return MeetingSummary{}, err
	}

	result := MeetingSummary{
		Summary:               summary,
		ActionItems:           ParseActionItems(actionItems),
		KeyPoints:             ParseKeyPoints(keyPoints),
		ParticipantsMentioned: []string{},
	}

	s.logger.Info(ctx, "Summary complete: %d action items, %d key points", len(result.ActionItems), len(result.KeyPoints))
	return result, nil
}

func (s *implSummarizer) complete(ctx context.Context, what string, p Prompt) (string, error) {
	s.logger.Debug(ctx, "Requesting %s (max %d tokens)", what, p.MaxTokens)

	text, err := s.completer.Complete(ctx, p)
	if err != nil {
		s.logger.Error(ctx, "Summarization failed: %v", err)
		return "", errs.Service("summarize "+what, err)
	}
	return strings.TrimSpace(text), nil
}
