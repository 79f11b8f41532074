package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/confchat/pkg/richtext"
)

func WriteJSONBlocks(w io.Writer, blocks []richtext.Block, indent bool) error {
	if blocks == nil {
		blocks = []richtext.Block{}
	}
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(blocks)
}
