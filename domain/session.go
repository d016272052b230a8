// Package domain contains core concepts of the message board.
// This file defines the session status and its enumerations.
package domain

import (
	"time"
)

type WalletState int

const (
	WalletDisconnected WalletState = iota
	WalletConnecting
	WalletConnected
)

func (w WalletState) String() string {
	switch w {
	case WalletConnecting:
		return "connecting"
	case WalletConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

type View string

const (
	ViewHome       View = "home"
	ViewStats      View = "stats"
	ViewModeration View = "moderation"
)

// ParseView accepts only the fixed set of views.
func ParseView(s string) (View, bool) {
	switch v := View(s); v {
	case ViewHome, ViewStats, ViewModeration:
		return v, true
	default:
		return "", false
	}
}

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Notification is a transient message shown to the user until it expires.
type Notification struct {
	ID       uint64
	Text     string
	Severity Severity
	RaisedAt time.Time
}

type SessionStatus struct {
	Wallet         WalletState
	Address        string // empty unless Wallet == WalletConnected
	View           View
	Notification   *Notification
	ShowOnboarding bool
	Visible        int    // size of the feed window
	CopiedID       string // message whose sender was just copied
}

func (s SessionStatus) Connected() bool {
	return s.Wallet == WalletConnected
}
