package summarizer

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

var reBold = regexp.MustCompile(`\*\*(.+?)\*\*`)

// WriteDocx saves summary, followed by the full transcript when one is
// given, as a styled Word document.
func WriteDocx(outputPath, title string, summary MeetingSummary, transcript string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)

	addStyledRun(doc.AddParagraph(""), "Summary", true, 15)
	addRichText(doc.AddParagraph(""), summary.Summary)

	addList(doc, "Action Items", summary.ActionItems)
	addList(doc, "Key Points", summary.KeyPoints)
	addList(doc, "Participants Mentioned", summary.ParticipantsMentioned)

	if strings.TrimSpace(transcript) != "" {
		addStyledRun(doc.AddParagraph(""), "Transcript", true, 15)
		for _, para := range transcriptParagraphs(transcript) {
			p := doc.AddParagraph("")
			p.AddText(para).Font(fontName).Size(fontSize).Color("000000")
		}
	}

	return doc.SaveTo(outputPath)
}

func addList(doc *docx.RootDoc, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	addStyledRun(doc.AddParagraph(""), heading, true, 14)
	for _, item := range items {
		addRichText(doc.AddParagraph(""), "• "+item)
	}
}

// transcriptParagraphs splits on blank lines and collapses inner whitespace.
func transcriptParagraphs(transcript string) []string {
	var out []string
	for _, block := range strings.Split(transcript, "\n\n") {
		if para := strings.Join(strings.Fields(block), " "); para != "" {
			out = append(out, para)
		}
	}
	return out
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

// addRichText renders **bold** spans as bold runs.
func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			clean := cleanMarkdownInline(part)
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			clean := cleanMarkdownInline(matches[i][1])
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
