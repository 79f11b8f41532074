package format

import (
	"github.com/mithrel/confchat/pkg/chat"
	"github.com/mithrel/confchat/pkg/richtext"
)

// Rendered is one transcript message with its parsed blocks.
type Rendered struct {
	Index  int              `json:"index"`
	Role   chat.Role        `json:"role"`
	Digest string           `json:"digest,omitempty"`
	Blocks []richtext.Block `json:"blocks"`
}
