package summarizer

import "strings"

// ParseBullets splits a model response into items: blank lines and bare
// dashes are dropped, leading "-" and " " characters are stripped.
func ParseBullets(content string) []string {
	items := []string{}
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "-" {
			continue
		}
		item := strings.TrimSpace(strings.TrimLeft(trimmed, "- "))
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

// ParseActionItems treats a bare "none" (any case) as no action items.
func ParseActionItems(content string) []string {
	if strings.EqualFold(strings.TrimSpace(content), "none") {
		return []string{}
	}
	return ParseBullets(content)
}

// ParseKeyPoints keeps the first five bullets; extra lines are dropped.
func ParseKeyPoints(content string) []string {
	points := ParseBullets(content)
	if len(points) > maxKeyPoints {
		points = points[:maxKeyPoints]
	}
	return points
}
