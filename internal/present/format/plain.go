package format

import (
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mithrel/confchat/pkg/richtext"
)

// TSV columns: block index, kind, text
const blockHeader = "block\tkind\ttext\n"

// TSV columns: message index, role, block index, kind, text
const messageHeader = "msg\trole\tblock\tkind\ttext\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

// plainText is the unstyled content of a block; code blocks keep their
// language as a prefix.
func plainText(b richtext.Block) string {
	if b.Kind == richtext.BlockCode && b.Lang != "" {
		return "[" + b.Lang + "] " + b.RawText
	}
	return b.Text()
}

func WritePlainBlocks(w io.Writer, blocks []richtext.Block, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, blockHeader)
	}
	for i, b := range blocks {
		_, _ = io.WriteString(tw, strconv.Itoa(i)+"\t"+string(b.Kind)+"\t"+esc(plainText(b))+"\n")
	}
	return tw.Flush()
}

// PlainStreamWriter incrementally writes rendered messages, one row per block.
type PlainStreamWriter struct {
	tw          *tabwriter.Writer
	headers     bool
	wroteHeader bool
}

func NewPlainStreamWriter(w io.Writer, headers bool) *PlainStreamWriter {
	return &PlainStreamWriter{
		tw:      tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
		headers: headers,
	}
}

// WriteMessages writes a batch of messages and flushes.
func (pw *PlainStreamWriter) WriteMessages(msgs []Rendered) error {
	if pw.headers && !pw.wroteHeader {
		_, _ = io.WriteString(pw.tw, messageHeader)
		pw.wroteHeader = true
	}
	for _, m := range msgs {
		prefix := strconv.Itoa(m.Index) + "\t" + string(m.Role) + "\t"
		for i, b := range m.Blocks {
			_, _ = io.WriteString(pw.tw, prefix+strconv.Itoa(i)+"\t"+string(b.Kind)+"\t"+esc(plainText(b))+"\n")
		}
	}
	return pw.tw.Flush()
}

func (pw *PlainStreamWriter) Close() error {
	return pw.tw.Flush()
}
