package chat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

var ErrUnknownRole = errors.New("unknown role")

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Transcript is an ordered conversation history.
type Transcript []Message

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAssistant:
		return RoleAssistant, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownRole, s)
}

// LoadTranscript reads a JSON array of messages. Blank input is an empty
// transcript; any other input that is not a JSON array is taken as a single
// assistant reply.
func LoadTranscript(r io.Reader) (Transcript, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Transcript{}, nil
	}
	if trimmed[0] != '[' {
		return Transcript{{Role: RoleAssistant, Content: string(data)}}, nil
	}
	var t Transcript
	if err := json.Unmarshal(trimmed, &t); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	for i, m := range t {
		r, err := ParseRole(string(m.Role))
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		t[i].Role = r
	}
	return t, nil
}

// WriteTranscript writes t as indented JSON.
func WriteTranscript(w io.Writer, t Transcript) error {
	if t == nil {
		t = Transcript{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// Replies returns only the assistant messages, in order.
func (t Transcript) Replies() []Message {
	out := make([]Message, 0, len(t))
	for _, m := range t {
		if m.Role == RoleAssistant {
			out = append(out, m)
		}
	}
	return out
}

// Preview returns the first non-blank line of the message, cut to n runes.
func (m Message) Preview(n int) string {
	line := ""
	for _, l := range strings.Split(m.Content, "\n") {
		if s := strings.TrimSpace(l); s != "" {
			line = s
			break
		}
	}
	r := []rune(line)
	if n > 0 && len(r) > n {
		if n <= 1 {
			return string(r[:n])
		}
		return string(r[:n-1]) + "…"
	}
	return line
}
