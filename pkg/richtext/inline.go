package richtext

import "regexp"

// Stages run in this order so that a '*' inside a code span, or the inner
// asterisks of a bold run, are never read as italic delimiters.
var (
	codePattern   = regexp.MustCompile("`[^`]+`")
	boldPattern   = regexp.MustCompile(`\*\*[^*]+\*\*`)
	italicPattern = regexp.MustCompile(`\*[^*]+\*`)
)

// ParseInline splits one line into text, bold, italic and code spans.
// Only closed, non-empty delimiter pairs are recognized; anything else stays
// literal text. Content of a styled span is never re-scanned.
func ParseInline(line string) []Span {
	var spans []Span
	splitMatches(line, codePattern, 1, func(seg string, matched bool) {
		if matched {
			spans = append(spans, Span{Kind: SpanCode, Text: seg})
			return
		}
		splitMatches(seg, boldPattern, 2, func(seg string, matched bool) {
			if matched {
				spans = append(spans, Span{Kind: SpanBold, Text: seg})
				return
			}
			splitMatches(seg, italicPattern, 1, func(seg string, matched bool) {
				kind := SpanText
				if matched {
					kind = SpanItalic
				}
				spans = append(spans, Span{Kind: kind, Text: seg})
			})
		})
	})
	return spans
}

// splitMatches walks s, calling emit for each non-empty gap between matches
// and for each match with delim bytes trimmed from both ends.
func splitMatches(s string, re *regexp.Regexp, delim int, emit func(seg string, matched bool)) {
	last := 0
	for _, loc := range re.FindAllStringIndex(s, -1) {
		if loc[0] > last {
			emit(s[last:loc[0]], false)
		}
		emit(s[loc[0]+delim:loc[1]-delim], true)
		last = loc[1]
	}
	if last < len(s) {
		emit(s[last:], false)
	}
}
