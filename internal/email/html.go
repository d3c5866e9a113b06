package email

import (
	"html"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// htmlToPlainText derives the text/plain alternative from an HTML body.
func htmlToPlainText(htmlContent string) string {
	text := tagPattern.ReplaceAllString(htmlContent, "")
	text = html.UnescapeString(text)
	text = strings.TrimSpace(text)

	var cleaned []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return strings.Join(cleaned, "\n\n")
}
