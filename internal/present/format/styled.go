package format

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/confchat/pkg/richtext"
)

const bullet = "• "

// Styles maps each block and span kind to a lipgloss style.
type Styles struct {
	Heading1   lipgloss.Style
	Heading2   lipgloss.Style
	Heading3   lipgloss.Style
	Paragraph  lipgloss.Style
	Bullet     lipgloss.Style
	CodeBlock  lipgloss.Style
	Bold       lipgloss.Style
	Italic     lipgloss.Style
	InlineCode lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Heading1:   lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("212")),
		Heading2:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("141")),
		Heading3:   lipgloss.NewStyle().Bold(true),
		Paragraph:  lipgloss.NewStyle(),
		Bullet:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		CodeBlock:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		Bold:       lipgloss.NewStyle().Bold(true),
		Italic:     lipgloss.NewStyle().Italic(true),
		InlineCode: lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("203")),
	}
}

// StyledRenderer draws blocks directly with lipgloss, one visual element per
// block. Width 0 disables wrapping.
type StyledRenderer struct {
	Width  int
	Styles Styles
}

func NewStyledRenderer(width int) *StyledRenderer {
	return &StyledRenderer{Width: width, Styles: DefaultStyles()}
}

func (r *StyledRenderer) Render(blocks []richtext.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, r.block(b))
	}
	return strings.Join(parts, "\n")
}

func (r *StyledRenderer) block(b richtext.Block) string {
	s := r.Styles
	switch b.Kind {
	case richtext.BlockHeading1:
		return r.wrap(s.Heading1, r.spans(b.Spans), 0)
	case richtext.BlockHeading2:
		return r.wrap(s.Heading2, r.spans(b.Spans), 0)
	case richtext.BlockHeading3:
		return r.wrap(s.Heading3, r.spans(b.Spans), 0)
	case richtext.BlockListItem:
		mark := s.Bullet.Render(bullet)
		body := r.wrap(s.Paragraph, r.spans(b.Spans), lipgloss.Width(mark))
		return lipgloss.JoinHorizontal(lipgloss.Top, mark, body)
	case richtext.BlockCode:
		// Code is never reflowed.
		return s.CodeBlock.Render(b.RawText)
	case richtext.BlockSpacer:
		return ""
	default:
		return r.wrap(s.Paragraph, r.spans(b.Spans), 0)
	}
}

func (r *StyledRenderer) spans(spans []richtext.Span) string {
	var sb strings.Builder
	for _, sp := range spans {
		switch sp.Kind {
		case richtext.SpanBold:
			sb.WriteString(r.Styles.Bold.Render(sp.Text))
		case richtext.SpanItalic:
			sb.WriteString(r.Styles.Italic.Render(sp.Text))
		case richtext.SpanCode:
			sb.WriteString(r.Styles.InlineCode.Render(sp.Text))
		default:
			sb.WriteString(sp.Text)
		}
	}
	return sb.String()
}

func (r *StyledRenderer) wrap(style lipgloss.Style, text string, indent int) string {
	if w := r.Width - indent; r.Width > 0 && w > 0 {
		style = style.Width(w)
	}
	return style.Render(text)
}

// WriteStyledBlocks renders blocks with the default styles.
func WriteStyledBlocks(w io.Writer, blocks []richtext.Block, width int) error {
	_, err := io.WriteString(w, NewStyledRenderer(width).Render(blocks)+"\n")
	return err
}
