package summarizer

import "strings"

const (
	headerSummary     = "📝 *Meeting Summary*"
	headerActionItems = "✅ *Action Items*"
	headerKeyPoints   = "💡 *Key Points*"
	bullet            = "  • "
)

// FormatForSlack renders summary as Slack mrkdwn. Sections with no entries
// are left out entirely.
func FormatForSlack(summary MeetingSummary) string {
	lines := []string{
		headerSummary,
		"",
		summary.Summary,
		"",
	}

	if len(summary.ActionItems) > 0 {
		lines = append(lines, headerActionItems)
		for _, item := range summary.ActionItems {
			lines = append(lines, bullet+item)
		}
		lines = append(lines, "")
	}

	if len(summary.KeyPoints) > 0 {
		lines = append(lines, headerKeyPoints)
		for _, point := range summary.KeyPoints {
			lines = append(lines, bullet+point)
		}
	}

	return strings.Join(lines, "\n")
}
