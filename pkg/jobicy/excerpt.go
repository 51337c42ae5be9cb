package jobicy

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const excerptLength = 280

// Excerpt strips markup from an HTML fragment and truncates the visible
// text to at most limit runes, cutting on a word boundary when possible.
func Excerpt(html string, limit int) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	text := html
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		doc.Find("script, style").Remove()
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}

	cut := string(runes[:limit])
	if i := strings.LastIndex(cut, " "); i > limit/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
