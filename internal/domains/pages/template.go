package pages

import (
	"regexp"
	"strings"
)

// TemplateContext carries the closed vocabulary of page placeholders. One
// field per recognized token; anything else in a template is left alone.
type TemplateContext struct {
	City        string
	State       string
	ServiceName string
}

var pageToken = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// ApplyTemplate substitutes {{city}}, {{state}} and {{service}} /
// {{serviceName}} tokens, matching token names case-insensitively.
// Unrecognized tokens are returned unchanged, never an error.
func ApplyTemplate(template string, ctx TemplateContext) string {
	return pageToken.ReplaceAllStringFunc(template, func(match string) string {
		key := strings.ToLower(pageToken.FindStringSubmatch(match)[1])
		switch key {
		case "city":
			return ctx.City
		case "state":
			return ctx.State
		case "service", "servicename":
			return ctx.ServiceName
		default:
			return match
		}
	})
}

// ApplyTemplateToArray maps ApplyTemplate over a list. A nil list yields an
// empty (non-nil) list so callers can range and serialize without checks.
func ApplyTemplateToArray(templates []string, ctx TemplateContext) []string {
	out := make([]string, 0, len(templates))
	for _, t := range templates {
		out = append(out, ApplyTemplate(t, ctx))
	}
	return out
}

// FormatList joins items into prose: "A", "A and B", "A, B, and C".
func FormatList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

// ToPossessive forms the English possessive: names already ending in "s"
// take a bare apostrophe.
func ToPossessive(name string) string {
	if strings.HasSuffix(name, "s") || strings.HasSuffix(name, "S") {
		return name + "'"
	}
	return name + "'s"
}
