package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mithrel/confchat/pkg/richtext"
)

const (
	DefaultGreeting = "Hello! I'm your AI assistant for the React Conf. How can I help you today?"
	noReply         = "No response from AI assistant"
)

var ErrEmptyMessage = errors.New("empty message")

// Sender produces the assistant reply for a conversation history.
// Implementations own the transport; the history must not be retained.
type Sender interface {
	Send(ctx context.Context, history []Message) (string, error)
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, history []Message) (string, error)

func (f SenderFunc) Send(ctx context.Context, history []Message) (string, error) {
	return f(ctx, history)
}

// Session keeps a conversation and turns every reply into blocks.
type Session struct {
	mu      sync.Mutex
	sender  Sender
	parser  *richtext.Parser
	history Transcript
}

// NewSession starts a conversation with greeting as the first assistant
// message. An empty greeting starts with no history.
func NewSession(sender Sender, parser *richtext.Parser, greeting string) *Session {
	if parser == nil {
		parser = richtext.NewParser()
	}
	s := &Session{sender: sender, parser: parser}
	if greeting != "" {
		s.history = Transcript{{Role: RoleAssistant, Content: greeting}}
	}
	return s
}

// History returns a copy of the conversation so far.
func (s *Session) History() Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(Transcript(nil), s.history...)
}

// Send appends the user text, asks the sender for a reply and appends it.
// On sender failure an apology is appended as the assistant message and the
// error is returned alongside its blocks.
func (s *Session) Send(ctx context.Context, text string) ([]richtext.Block, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	s.mu.Lock()
	s.history = append(s.history, Message{Role: RoleUser, Content: text})
	history := append([]Message(nil), s.history...)
	s.mu.Unlock()

	reply, err := s.sender.Send(ctx, history)
	if err != nil {
		reply = "Sorry, I encountered an error: " + err.Error()
		err = fmt.Errorf("send message: %w", err)
	} else if reply == "" {
		reply = noReply
	}

	s.mu.Lock()
	s.history = append(s.history, Message{Role: RoleAssistant, Content: reply})
	s.mu.Unlock()
	return s.parser.Parse(reply), err
}
