// Package chat keeps the bounded in-memory chat log.
package chat

import (
	"github.com/google/uuid"

	"github.com/malags/hyperplane-chess/pkg/types"
)

const DefaultBreakSize = 100

// Log is an ordered chat history bounded by breakSize. When the bound is
// reached the oldest half is dropped in one cut, so trimming is amortized
// instead of happening on every append.
type Log struct {
	breakSize int
	messages  []types.ChatMessage
}

func NewLog(breakSize int) *Log {
	if breakSize <= 0 {
		breakSize = DefaultBreakSize
	}
	return &Log{breakSize: breakSize}
}

// Append adds one message, trimming the oldest half once the log reaches
// the break size.
func (l *Log) Append(msg types.ChatMessage) {
	l.messages = append(l.messages, msg)
	if len(l.messages) >= l.breakSize {
		cut := l.breakSize / 2
		l.messages = append([]types.ChatMessage(nil), l.messages[cut:]...)
	}
}

// Messages returns a copy of the log, oldest first.
func (l *Log) Messages() []types.ChatMessage {
	out := make([]types.ChatMessage, len(l.messages))
	copy(out, l.messages)
	return out
}

func (l *Log) Len() int { return len(l.messages) }

// Tail returns up to n most recent messages.
func (l *Log) Tail(n int) []types.ChatMessage {
	if n > len(l.messages) {
		n = len(l.messages)
	}
	out := make([]types.ChatMessage, n)
	copy(out, l.messages[len(l.messages)-n:])
	return out
}

// NewMessage builds an outgoing message with a fresh id.
func NewMessage(sender, content string) types.ChatMessage {
	return types.ChatMessage{
		ID:      uuid.NewString(),
		Sender:  sender,
		Content: content,
	}
}
