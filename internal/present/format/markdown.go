package format

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"

	"github.com/mithrel/confchat/pkg/richtext"
)

// PrettyOptions selects the glamour style and wrap width.
type PrettyOptions struct {
	Style string
	Width int
}

// WriteMarkdownBlocks writes the normalized markdown form of blocks.
func WriteMarkdownBlocks(w io.Writer, blocks []richtext.Block) error {
	_, err := io.WriteString(w, richtext.Markdown(blocks)+"\n")
	return err
}

// WritePrettyBlocks re-emits blocks as markdown and renders it with glamour.
func WritePrettyBlocks(w io.Writer, blocks []richtext.Block, opts PrettyOptions) error {
	out, err := RenderPretty(blocks, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func RenderPretty(blocks []richtext.Block, opts PrettyOptions) (string, error) {
	style := opts.Style
	if style == "" {
		style = "dracula"
	}
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(richtext.Markdown(blocks))
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
