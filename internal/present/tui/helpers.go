package tui

import (
	"strings"

	"github.com/mithrel/confchat/pkg/richtext"
)

// preview is the first non-blank block text, collapsed to one line.
func preview(blocks []richtext.Block) string {
	for _, b := range blocks {
		if b.Kind == richtext.BlockSpacer {
			continue
		}
		s := strings.Join(strings.Fields(b.Text()), " ")
		if s != "" {
			return s
		}
	}
	return ""
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
