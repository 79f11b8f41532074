package richtext

import "strings"

// Markdown rebuilds source text for the span, delimiters included.
func (s Span) Markdown() string {
	switch s.Kind {
	case SpanBold:
		return "**" + s.Text + "**"
	case SpanItalic:
		return "*" + s.Text + "*"
	case SpanCode:
		return "`" + s.Text + "`"
	default:
		return s.Text
	}
}

// Markdown rebuilds one block as a normalized source line (or fenced region
// for code blocks). Parsing the result yields a block of the same kind.
func (b Block) Markdown() string {
	var sb strings.Builder
	switch b.Kind {
	case BlockHeading1:
		sb.WriteString("# ")
	case BlockHeading2:
		sb.WriteString("## ")
	case BlockHeading3:
		sb.WriteString("### ")
	case BlockListItem:
		sb.WriteString("- ")
	case BlockSpacer:
		return ""
	case BlockCode:
		sb.WriteString(fence)
		sb.WriteString(b.Lang)
		sb.WriteByte('\n')
		if b.RawText != "" {
			sb.WriteString(b.RawText)
			sb.WriteByte('\n')
		}
		sb.WriteString(fence)
		return sb.String()
	}
	for _, s := range b.Spans {
		sb.WriteString(s.Markdown())
	}
	return sb.String()
}

// Markdown joins the blocks back into one document, one block per line.
func Markdown(blocks []Block) string {
	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		lines = append(lines, b.Markdown())
	}
	return strings.Join(lines, "\n")
}
