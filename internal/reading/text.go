package reading

import (
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mdobak/go-xerrors"
)

// WordsPerMinute is the reading speed used for read-time estimates.
const WordsPerMinute = 200

// PlainText returns the visible text of an article body, dropping markup,
// scripts and styles. Bodies without markup come back unchanged.
func PlainText(content string) (string, error) {
	if !strings.ContainsAny(content, "<&") {
		return content, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", xerrors.New(err)
	}
	doc.Find("script, style, noscript").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return strings.TrimSpace(doc.Text()), nil
}

// ReadMinutes estimates reading time, rounding up; non-empty text takes at least a minute.
func ReadMinutes(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / WordsPerMinute))
}

// Paragraphs splits text on newlines and drops blank lines.
func Paragraphs(text string) []string {
	lines := strings.Split(text, "\n")
	paragraphs := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}
