package effects

import (
	"regexp"
	"strings"
)

// Keywords are painted in the keyword color inside code blocks.
var Keywords = []string{"def", "if", "else", "for", "in", "return", "import", "from", "class", "self"}

var keywordPattern = regexp.MustCompile(`\b(` + strings.Join(Keywords, "|") + `)\b`)

// Span is a run of code text.
type Span struct {
	Text    string
	Keyword bool
}

// Highlight splits code into spans, marking whole-word keywords.
func Highlight(code string) []Span {
	var spans []Span
	last := 0
	for _, loc := range keywordPattern.FindAllStringIndex(code, -1) {
		if loc[0] > last {
			spans = append(spans, Span{Text: code[last:loc[0]]})
		}
		spans = append(spans, Span{Text: code[loc[0]:loc[1]], Keyword: true})
		last = loc[1]
	}
	if last < len(code) {
		spans = append(spans, Span{Text: code[last:]})
	}
	return spans
}
