// Package domain contains core concepts of the message board.
// This file defines Message values and related rules.
// Messages are immutable once they have been appended to the board.
package domain

import (
	"time"
)

type Origin string

const (
	OriginUser      Origin = "user"
	OriginSynthetic Origin = "synthetic"
	OriginSeed      Origin = "seed"
)

// Message represents an immutable board entry.
type Message struct {
	ID        string // opaque unique identifier
	Text      string
	Sender    string
	CreatedAt time.Time
	Avatar    string
	Origin    Origin
}

// NewMessage builds a Message and derives its avatar color from the sender.
func NewMessage(id, text, sender string, at time.Time, origin Origin) Message {
	return Message{
		ID:        id,
		Text:      text,
		Sender:    sender,
		CreatedAt: at,
		Avatar:    AvatarColor(sender),
		Origin:    origin,
	}
}
