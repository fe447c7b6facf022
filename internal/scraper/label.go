package scraper

import (
	"regexp"
	"strings"
)

var (
	ogTitleRe = regexp.MustCompile(`<meta[^>]*property=["']og:title["'][^>]*content=["']([^"']*)["']`)
	titleRe   = regexp.MustCompile(`<title[^>]*>([^<]*)</title>`)

	// The page embeds labels inside JSON, so a couple of escape sequences
	// leak through.
	labelUnescaper = strings.NewReplacer("\\u0026", "&", "\\u002F", "/")

	// Postal code patterns in priority order: 6-digit, 5-digit, then the
	// Canadian alphanumeric form.
	postalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{6}`),
		regexp.MustCompile(`\d{5}`),
		regexp.MustCompile(`[A-Za-z]\d[A-Za-z]\s?\d[A-Za-z]\d`),
	}
)

// extractLabel pulls a human-readable address label from the page: the
// og:title meta tag, then the document title, then the caller's original
// input. Provider boilerplate is stripped from the result.
func extractLabel(body, fallback string) string {
	label := ""
	if m := ogTitleRe.FindStringSubmatch(body); m != nil {
		label = m[1]
	}
	if strings.TrimSpace(label) == "" {
		if m := titleRe.FindStringSubmatch(body); m != nil {
			label = m[1]
		}
	}
	if strings.TrimSpace(label) == "" {
		label = fallback
	}

	label = labelUnescaper.Replace(label)
	label = strings.ReplaceAll(label, "- Google Maps", "")
	label = strings.ReplaceAll(label, "Google Maps", "")
	label = strings.TrimSpace(label)

	// A title that was nothing but provider boilerplate leaves an empty
	// label; the caller's input is still the best description then.
	if label == "" {
		return strings.TrimSpace(fallback)
	}
	return label
}

// extractPostalCode returns the first substring of the label matching any
// postal pattern, or an empty string.
func extractPostalCode(label string) string {
	for _, re := range postalPatterns {
		if m := re.FindString(label); m != "" {
			return m
		}
	}
	return ""
}
