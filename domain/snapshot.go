package domain

import (
	"github.com/samber/lo"
)

// Snapshot is a read-only view of the whole session.
// Messages are ordered newest first.
type Snapshot struct {
	Messages []Message
	Stats    Stats
	Status   SessionStatus
}

// MessagesBy returns the messages posted by the given sender, newest first.
func (s Snapshot) MessagesBy(sender string) []Message {
	if sender == "" {
		return nil
	}
	return lo.Filter(s.Messages, func(m Message, _ int) bool {
		return m.Sender == sender
	})
}

// Window returns the visible part of the feed and whether more messages remain.
func (s Snapshot) Window() ([]Message, bool) {
	return Window(s.Messages, s.Status.Visible)
}

// Window truncates messages to the first visible entries.
func Window(messages []Message, visible int) ([]Message, bool) {
	if visible < 0 {
		visible = 0
	}
	if visible >= len(messages) {
		return messages, false
	}
	return messages[:visible], true
}
