package chat

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/confchat/pkg/richtext"
)

func TestLoadTranscriptJSON(t *testing.T) {
	in := `[{"role":"user","content":"hi"},{"role":"Assistant","content":"# Hey"}]`
	tr, err := LoadTranscript(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, tr, 2)
	assert.Equal(t, RoleUser, tr[0].Role)
	assert.Equal(t, RoleAssistant, tr[1].Role)
	assert.Equal(t, []Message{{Role: RoleAssistant, Content: "# Hey"}}, tr.Replies())
}

func TestLoadTranscriptPlainText(t *testing.T) {
	tr, err := LoadTranscript(strings.NewReader("# Title\n- a\n"))
	require.NoError(t, err)
	assert.Equal(t, Transcript{{Role: RoleAssistant, Content: "# Title\n- a\n"}}, tr)
}

func TestLoadTranscriptBlankIsEmpty(t *testing.T) {
	for _, in := range []string{"", "  \n\t"} {
		tr, err := LoadTranscript(strings.NewReader(in))
		require.NoError(t, err)
		assert.Empty(t, tr)
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Assistant ")
	require.NoError(t, err)
	assert.Equal(t, RoleAssistant, r)

	_, err = ParseRole("system")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestLoadTranscriptErrors(t *testing.T) {
	_, err := LoadTranscript(strings.NewReader(`[{"role":"bot","content":"x"}]`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownRole))
	assert.Contains(t, err.Error(), "message 0")

	_, err = LoadTranscript(strings.NewReader(`[{"role":`))
	require.Error(t, err)
}

func TestWriteTranscriptRoundTrip(t *testing.T) {
	tr := Transcript{{Role: RoleUser, Content: "q"}, {Role: RoleAssistant, Content: "**a**"}}
	var buf bytes.Buffer
	require.NoError(t, WriteTranscript(&buf, tr))
	got, err := LoadTranscript(&buf)
	require.NoError(t, err)
	assert.Equal(t, tr, got)

	buf.Reset()
	require.NoError(t, WriteTranscript(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestMessagePreview(t *testing.T) {
	m := Message{Content: "\n\n  # Schedule for day one  \nmore"}
	assert.Equal(t, "# Schedule for day one", m.Preview(0))
	assert.Equal(t, "# Sched…", m.Preview(8))
	assert.Equal(t, "", Message{Content: " \n "}.Preview(10))
}

func TestSessionSend(t *testing.T) {
	var seen []Message
	sender := SenderFunc(func(_ context.Context, h []Message) (string, error) {
		seen = h
		return "**Keynote** at 9am", nil
	})
	s := NewSession(sender, nil, DefaultGreeting)

	blocks, err := s.Send(context.Background(), "when is the keynote?")
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, richtext.BlockParagraph, blocks[0].Kind)
	assert.Equal(t, richtext.SpanBold, blocks[0].Spans[0].Kind)

	require.Len(t, seen, 2)
	assert.Equal(t, RoleAssistant, seen[0].Role)
	assert.Equal(t, "when is the keynote?", seen[1].Content)

	h := s.History()
	require.Len(t, h, 3)
	assert.Equal(t, Message{Role: RoleAssistant, Content: "**Keynote** at 9am"}, h[2])
}

func TestSessionEmptyInputSkipsSender(t *testing.T) {
	called := false
	s := NewSession(SenderFunc(func(context.Context, []Message) (string, error) {
		called = true
		return "", nil
	}), nil, "")
	_, err := s.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.False(t, called)
	assert.Empty(t, s.History())
}

func TestSessionEmptyReply(t *testing.T) {
	s := NewSession(SenderFunc(func(context.Context, []Message) (string, error) {
		return "", nil
	}), nil, "")
	blocks, err := s.Send(context.Background(), "hi")
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "No response from AI assistant", blocks[0].RawText)
}

func TestSessionSenderError(t *testing.T) {
	boom := errors.New("quota exceeded")
	s := NewSession(SenderFunc(func(context.Context, []Message) (string, error) {
		return "", boom
	}), richtext.NewParser(), "")
	blocks, err := s.Send(context.Background(), "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	require.Len(t, blocks, 1)
	assert.Equal(t, "Sorry, I encountered an error: quota exceeded", blocks[0].RawText)
	h := s.History()
	assert.Equal(t, RoleAssistant, h[len(h)-1].Role)
}

func TestSessionConcurrentSends(t *testing.T) {
	s := NewSession(SenderFunc(func(context.Context, []Message) (string, error) {
		return "ok", nil
	}), nil, "")
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Send(context.Background(), "ping")
		}()
	}
	wg.Wait()
	assert.Len(t, s.History(), 20)
}
