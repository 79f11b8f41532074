package richtext

import "strings"

const fence = "```"

// Option configures a Parser.
type Option func(*Parser)

// FlushUnterminated makes the parser emit the lines of a fence left open at
// end of input as a code block instead of dropping them.
func FlushUnterminated(on bool) Option {
	return func(p *Parser) { p.flushOpen = on }
}

// Parser holds block parsing options. The zero value discards an
// unterminated fence. A Parser has no mutable state and may be shared.
type Parser struct {
	flushOpen bool
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, o := range opts {
		o(p)
	}
	return p
}

// ParseBlocks parses input with the default options.
func ParseBlocks(input string) []Block {
	var p Parser
	return p.Parse(input)
}

// Parse classifies each line of input and returns the blocks in input order.
// It never fails and returns at most one block per input line.
func (p *Parser) Parse(input string) []Block {
	if input == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n")
	blocks := make([]Block, 0, len(lines))

	var (
		inCode bool
		lang   string
		buf    []string
	)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, fence) {
			if !inCode {
				inCode = true
				lang = strings.TrimSpace(trimmed[len(fence):])
				buf = buf[:0]
				continue
			}
			inCode = false
			blocks = append(blocks, Block{Kind: BlockCode, RawText: strings.Join(buf, "\n"), Lang: lang})
			buf = buf[:0]
			continue
		}
		if inCode {
			buf = append(buf, line)
			continue
		}
		blocks = append(blocks, classify(line, trimmed))
	}
	if inCode && p != nil && p.flushOpen {
		blocks = append(blocks, Block{Kind: BlockCode, RawText: strings.Join(buf, "\n"), Lang: lang})
	}
	return blocks
}

// linePrefixes is checked in order; the longest heading marker goes first.
var linePrefixes = []struct {
	marker string
	kind   BlockKind
}{
	{"### ", BlockHeading3},
	{"## ", BlockHeading2},
	{"# ", BlockHeading1},
	{"- ", BlockListItem},
	{"* ", BlockListItem},
}

func classify(line, trimmed string) Block {
	for _, lp := range linePrefixes {
		if strings.HasPrefix(trimmed, lp.marker) {
			rest := trimmed[len(lp.marker):]
			return Block{Kind: lp.kind, RawText: rest, Spans: ParseInline(rest)}
		}
	}
	if trimmed == "" {
		return Block{Kind: BlockSpacer}
	}
	// Paragraphs keep the untrimmed line.
	return Block{Kind: BlockParagraph, RawText: line, Spans: ParseInline(line)}
}
