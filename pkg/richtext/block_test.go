package richtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(s string) []Span { return []Span{{SpanText, s}} }

func TestParseBlocks(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []Block
	}{
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
		{
			name: "heading spacer paragraph",
			in:   "# Title\n\nSome text",
			want: []Block{
				{Kind: BlockHeading1, RawText: "Title", Spans: text("Title")},
				{Kind: BlockSpacer},
				{Kind: BlockParagraph, RawText: "Some text", Spans: text("Some text")},
			},
		},
		{
			name: "fenced code",
			in:   "```\nline1\nline2\n```",
			want: []Block{{Kind: BlockCode, RawText: "line1\nline2"}},
		},
		{
			name: "list items",
			in:   "- item one\n- item two",
			want: []Block{
				{Kind: BlockListItem, RawText: "item one", Spans: text("item one")},
				{Kind: BlockListItem, RawText: "item two", Spans: text("item two")},
			},
		},
		{
			name: "heading levels and star bullet",
			in:   "### three\n## two\n  # one\n* star",
			want: []Block{
				{Kind: BlockHeading3, RawText: "three", Spans: text("three")},
				{Kind: BlockHeading2, RawText: "two", Spans: text("two")},
				{Kind: BlockHeading1, RawText: "one", Spans: text("one")},
				{Kind: BlockListItem, RawText: "star", Spans: text("star")},
			},
		},
		{
			name: "marker without space is a paragraph",
			in:   "#tag",
			want: []Block{{Kind: BlockParagraph, RawText: "#tag", Spans: text("#tag")}},
		},
		{
			name: "crlf and whitespace-only lines",
			in:   "a\r\n   \r\nb",
			want: []Block{
				{Kind: BlockParagraph, RawText: "a", Spans: text("a")},
				{Kind: BlockSpacer},
				{Kind: BlockParagraph, RawText: "b", Spans: text("b")},
			},
		},
		{
			name: "paragraph keeps surrounding whitespace",
			in:   "  hi **there**",
			want: []Block{{
				Kind:    BlockParagraph,
				RawText: "  hi **there**",
				Spans:   []Span{{SpanText, "  hi "}, {SpanBold, "there"}},
			}},
		},
		{
			name: "code keeps indentation and skips inline parsing",
			in:   "```go\n\tif *p {\n# not a heading\n\n```",
			want: []Block{{Kind: BlockCode, RawText: "\tif *p {\n# not a heading\n", Lang: "go"}},
		},
		{
			name: "indented fences",
			in:   "  ```\nx\n  ```  ",
			want: []Block{{Kind: BlockCode, RawText: "x"}},
		},
		{
			name: "two code blocks",
			in:   "```\na\n```\ntext\n```\nb\n```",
			want: []Block{
				{Kind: BlockCode, RawText: "a"},
				{Kind: BlockParagraph, RawText: "text", Spans: text("text")},
				{Kind: BlockCode, RawText: "b"},
			},
		},
		{
			name: "unterminated fence is discarded",
			in:   "intro\n```\nlost",
			want: []Block{{Kind: BlockParagraph, RawText: "intro", Spans: text("intro")}},
		},
		{
			name: "heading with inline styles",
			in:   "## The **big** day",
			want: []Block{{
				Kind:    BlockHeading2,
				RawText: "The **big** day",
				Spans:   []Span{{SpanText, "The "}, {SpanBold, "big"}, {SpanText, " day"}},
			}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseBlocks(tc.in))
		})
	}
}

func TestWhitespaceOnlyInputYieldsSpacers(t *testing.T) {
	blocks := ParseBlocks(" \n\t\n")
	require.Len(t, blocks, 3)
	for _, b := range blocks {
		assert.Equal(t, BlockSpacer, b.Kind)
		assert.Empty(t, b.Spans)
	}
}

func TestFlushUnterminated(t *testing.T) {
	p := NewParser(FlushUnterminated(true))
	got := p.Parse("intro\n```sh\nmake\nmake test")
	assert.Equal(t, []Block{
		{Kind: BlockParagraph, RawText: "intro", Spans: text("intro")},
		{Kind: BlockCode, RawText: "make\nmake test", Lang: "sh"},
	}, got)

	// A closed fence is unaffected by the option.
	assert.Equal(t, ParseBlocks("```\nx\n```"), p.Parse("```\nx\n```"))
}

func TestBlockCountBoundedByLines(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"# a\n- b\n```\nc\n```\n\n**d**",
		"```\n```\n```",
		strings.Repeat("line\n", 50),
	}
	for _, in := range inputs {
		lines := strings.Count(in, "\n") + 1
		assert.LessOrEqual(t, len(ParseBlocks(in)), lines, "input %q", in)
	}
}

func TestFenceParity(t *testing.T) {
	// Every closed fence pair yields exactly one code block; an odd trailing
	// fence yields none.
	closed := "```\na\n```\n```\nb\n```"
	odd := closed + "\n```\nc"
	countCode := func(bs []Block) int {
		n := 0
		for _, b := range bs {
			if b.Kind == BlockCode {
				n++
			}
		}
		return n
	}
	assert.Equal(t, 2, countCode(ParseBlocks(closed)))
	assert.Equal(t, 2, countCode(ParseBlocks(odd)))
}

func TestReparseKeepsKind(t *testing.T) {
	in := "# Title\n## Sub *it*\n### Small\n- item `x`\n* star **b**\n  para *i*\n\n```js\nlet a\n```"
	for _, b := range ParseBlocks(in) {
		if b.Kind == BlockSpacer {
			assert.Empty(t, b.Markdown())
			continue
		}
		again := ParseBlocks(b.Markdown())
		require.NotEmpty(t, again)
		assert.Equal(t, b.Kind, again[0].Kind, "block %+v", b)
	}
}

func TestMarkdownDocument(t *testing.T) {
	in := "# Title\n\n* one\n```go\nx := 1\n```"
	want := "# Title\n\n- one\n```go\nx := 1\n```"
	assert.Equal(t, want, Markdown(ParseBlocks(in)))
}

func TestBlockHelpers(t *testing.T) {
	assert.True(t, BlockHeading2.IsHeading())
	assert.False(t, BlockListItem.IsHeading())
	assert.Equal(t, 3, BlockHeading3.HeadingLevel())
	assert.Equal(t, 0, BlockParagraph.HeadingLevel())

	b := ParseBlocks("**a** b")[0]
	assert.Equal(t, "a b", b.Text())
	code := ParseBlocks("```\nraw\n```")[0]
	assert.Equal(t, "raw", code.Text())
}

func TestParseIsSafeForConcurrentUse(t *testing.T) {
	p := NewParser()
	in := "# T\n- **a**\n```\nb\n```"
	want := p.Parse(in)
	done := make(chan []Block)
	for i := 0; i < 8; i++ {
		go func() { done <- p.Parse(in) }()
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, want, <-done)
	}
}
