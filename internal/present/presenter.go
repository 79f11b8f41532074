package present

import (
	"context"
	"errors"
	"io"

	"github.com/mithrel/confchat/internal/present/format"
	"github.com/mithrel/confchat/internal/present/tui"
	"github.com/mithrel/confchat/pkg/chat"
	"github.com/mithrel/confchat/pkg/richtext"
)

type Mode int

const (
	ModePlain Mode = iota
	ModePretty
	ModeStyled
	ModeJSON
	ModeNDJSON
	ModeTUI
	ModeMarkdown
)

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
	Width      int
	Style      string
	Status     string
}

// ParseMode parses a string like "plain", "pretty", "styled", "json",
// "ndjson", "tui" or "markdown".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "plain":
		return ModePlain, true
	case "pretty":
		return ModePretty, true
	case "styled":
		return ModeStyled, true
	case "json":
		return ModeJSON, true
	case "ndjson":
		return ModeNDJSON, true
	case "tui":
		return ModeTUI, true
	case "markdown", "md":
		return ModeMarkdown, true
	default:
		return ModeStyled, false
	}
}

func (m Mode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModePretty:
		return "pretty"
	case ModeJSON:
		return "json"
	case ModeNDJSON:
		return "ndjson"
	case ModeTUI:
		return "tui"
	case ModeMarkdown:
		return "markdown"
	default:
		return "styled"
	}
}

// RenderBlocks renders the blocks of one message according to options.
func RenderBlocks(ctx context.Context, w io.Writer, blocks []richtext.Block, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONBlocks(w, blocks, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONBlocks(w, blocks)
	case ModePlain:
		return format.WritePlainBlocks(w, blocks, opts.Headers)
	case ModePretty:
		return format.WritePrettyBlocks(w, blocks, format.PrettyOptions{Style: opts.Style, Width: opts.Width})
	case ModeMarkdown:
		return format.WriteMarkdownBlocks(w, blocks)
	case ModeTUI:
		return errors.New("tui output needs a transcript; use `transcript view`")
	default:
		return format.WriteStyledBlocks(w, blocks, opts.Width)
	}
}

// RenderTranscript renders every message of a transcript.
func RenderTranscript(ctx context.Context, w io.Writer, msgs []format.Rendered, opts Options) error {
	switch opts.Mode {
	case ModeTUI:
		return tui.Browse(ctx, msgs, tui.Options{Width: opts.Width, Status: opts.Status})
	case ModeJSON:
		jw := format.NewJSONStreamWriter(w, opts.JSONIndent)
		if err := jw.WriteMessages(msgs); err != nil {
			return err
		}
		return jw.Close()
	case ModeNDJSON:
		nw := format.NewNDJSONStreamWriter(w)
		if err := nw.WriteMessages(msgs); err != nil {
			return err
		}
		return nw.Close()
	case ModePlain:
		pw := format.NewPlainStreamWriter(w, opts.Headers)
		if err := pw.WriteMessages(msgs); err != nil {
			return err
		}
		return pw.Close()
	}
	for i, m := range msgs {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, roleLabel(m)+"\n"); err != nil {
			return err
		}
		if err := RenderBlocks(ctx, w, m.Blocks, opts); err != nil {
			return err
		}
	}
	return nil
}

func roleLabel(m format.Rendered) string {
	if m.Role == chat.RoleUser {
		return "> you"
	}
	return "> assistant"
}
