package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/confchat/pkg/richtext"
)

// WriteNDJSONBlocks writes blocks as newline-delimited JSON objects.
func WriteNDJSONBlocks(w io.Writer, blocks []richtext.Block) error {
	enc := json.NewEncoder(w)
	for _, b := range blocks {
		if err := enc.Encode(b); err != nil {
			return err
		}
	}
	return nil
}

// NDJSONStreamWriter incrementally writes rendered messages as NDJSON.
type NDJSONStreamWriter struct {
	enc *json.Encoder
}

func NewNDJSONStreamWriter(w io.Writer) *NDJSONStreamWriter {
	return &NDJSONStreamWriter{enc: json.NewEncoder(w)}
}

func (nw *NDJSONStreamWriter) WriteMessages(msgs []Rendered) error {
	for _, m := range msgs {
		if err := nw.enc.Encode(m); err != nil {
			return err
		}
	}
	return nil
}

// Close is a no-op for NDJSON output.
func (nw *NDJSONStreamWriter) Close() error { return nil }
