package event

import (
	"aptos-board/domain"
)

// DomainEvent is emitted by the session store after every state change.
type DomainEvent interface {
	Name() string
}

type MessagePosted struct {
	Message domain.Message
}

func (MessagePosted) Name() string { return "message_posted" }

type WalletChanged struct {
	State   domain.WalletState
	Address string
}

func (WalletChanged) Name() string { return "wallet_changed" }

type NotificationRaised struct {
	Notification domain.Notification
}

func (NotificationRaised) Name() string { return "notification_raised" }

type NotificationCleared struct {
	ID uint64
}

func (NotificationCleared) Name() string { return "notification_cleared" }

type ViewChanged struct {
	View domain.View
}

func (ViewChanged) Name() string { return "view_changed" }

type OnboardingDismissed struct{}

func (OnboardingDismissed) Name() string { return "onboarding_dismissed" }

type FeedWindowChanged struct {
	Visible int
}

func (FeedWindowChanged) Name() string { return "feed_window_changed" }

type SenderCopied struct {
	MessageID string
	Sender    string
}

func (SenderCopied) Name() string { return "sender_copied" }
