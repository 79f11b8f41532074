// Package richtext turns chat replies written in a small markdown subset into
// ordered, typed blocks and inline spans. Rendering those blocks is left to
// the caller.
package richtext

// SpanKind names the inline style of a Span.
type SpanKind string

const (
	SpanText   SpanKind = "text"
	SpanBold   SpanKind = "bold"
	SpanItalic SpanKind = "italic"
	SpanCode   SpanKind = "code"
)

// Span is one styled run of text inside a block, delimiters stripped.
type Span struct {
	Kind SpanKind `json:"kind"`
	Text string   `json:"text"`
}

// BlockKind names the line-level structure of a Block.
type BlockKind string

const (
	BlockHeading1  BlockKind = "heading1"
	BlockHeading2  BlockKind = "heading2"
	BlockHeading3  BlockKind = "heading3"
	BlockListItem  BlockKind = "listItem"
	BlockCode      BlockKind = "codeBlock"
	BlockParagraph BlockKind = "paragraph"
	BlockSpacer    BlockKind = "spacer"
)

// Block is one structural unit of a message.
//
// RawText holds the joined content lines for code blocks and the
// marker-stripped source line for headings, list items and paragraphs.
// Spans is empty for code blocks and spacers. Lang carries the info string
// of a code block's opening fence, if any.
type Block struct {
	Kind    BlockKind `json:"kind"`
	RawText string    `json:"rawText,omitempty"`
	Spans   []Span    `json:"spans,omitempty"`
	Lang    string    `json:"lang,omitempty"`
}

// IsHeading reports whether k is one of the three heading levels.
func (k BlockKind) IsHeading() bool {
	return k == BlockHeading1 || k == BlockHeading2 || k == BlockHeading3
}

// HeadingLevel returns 1-3 for headings and 0 otherwise.
func (k BlockKind) HeadingLevel() int {
	switch k {
	case BlockHeading1:
		return 1
	case BlockHeading2:
		return 2
	case BlockHeading3:
		return 3
	default:
		return 0
	}
}

// Text concatenates the span texts, ignoring styling.
func (b Block) Text() string {
	if len(b.Spans) == 0 {
		return b.RawText
	}
	return JoinSpans(b.Spans)
}

// JoinSpans concatenates span texts without delimiters.
func JoinSpans(spans []Span) string {
	total := 0
	for _, s := range spans {
		total += len(s.Text)
	}
	buf := make([]byte, 0, total)
	for _, s := range spans {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}
