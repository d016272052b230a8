// Package store holds the session state of the board.
// Every mutation goes through a named intent and is serialized by the store lock,
// readers get an immutable snapshot that is published atomically after each change.
package store

import (
	"aptos-board/contract"
	"aptos-board/domain"
	"aptos-board/domain/event"
	"aptos-board/errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	textWalletConnected    = "Wallet connected successfully!"
	textWalletDisconnected = "Wallet disconnected"
	textConnectFirst       = "Please connect your wallet first"
	textMessagePosted      = "Message posted successfully!"
	textMessageEmpty       = "Message cannot be empty"
)

// Options configures a Store. A zero TTL disables the matching expiry timer.
type Options struct {
	Identity         string
	ConnectLatency   time.Duration
	NotificationTTL  time.Duration
	CopiedTTL        time.Duration
	MaxContentLength int
	PageSize         int
	Stats            domain.Stats
	Seed             []domain.Message
	ShowOnboarding   bool
}

type Store struct {
	mu         sync.Mutex
	log        *slog.Logger
	clock      clock.Clock
	opts       Options
	events     chan<- event.DomainEvent
	clipboard  contract.Clipboard
	authorizer contract.Authorizer

	messages []domain.Message
	stats    domain.Stats
	status   domain.SessionStatus
	seen     map[string]struct{}
	lastAt   time.Time

	closed          bool
	connectToken    uint64
	notificationSeq uint64
	connectTimer    *clock.Timer
	notifyTimer     *clock.Timer
	copiedTimer     *clock.Timer

	snapshot atomic.Pointer[domain.Snapshot]
}

func NewStore(log *slog.Logger, clk clock.Clock, opts Options) *Store {
	s := &Store{
		log:   log,
		clock: clk,
		opts:  opts,
		stats: opts.Stats,
		seen:  make(map[string]struct{}),
		status: domain.SessionStatus{
			Wallet:         domain.WalletDisconnected,
			View:           domain.ViewHome,
			ShowOnboarding: opts.ShowOnboarding,
			Visible:        opts.PageSize,
		},
	}
	s.seed(opts.Seed)
	s.publish()
	return s
}

// WithEvents makes the store emit a DomainEvent after every change.
// Events are dropped when the channel is full.
func (s *Store) WithEvents(events chan<- event.DomainEvent) *Store {
	s.events = events
	return s
}

func (s *Store) WithClipboard(c contract.Clipboard) *Store {
	s.clipboard = c
	return s
}

func (s *Store) WithAuthorizer(a contract.Authorizer) *Store {
	s.authorizer = a
	return s
}

// Snapshot returns a copy of the last published state without taking the lock.
// Changing the copy never reaches the store or other readers.
func (s *Store) Snapshot() domain.Snapshot {
	snapshot := *s.snapshot.Load()
	snapshot.Messages = slices.Clone(snapshot.Messages)
	if snapshot.Status.Notification != nil {
		n := *snapshot.Status.Notification
		snapshot.Status.Notification = &n
	}
	return snapshot
}

// ConnectWallet toggles the wallet. Disconnecting is immediate, connecting
// completes after the simulated latency.
func (s *Store) ConnectWallet() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.ErrStoreClosed
	}

	switch s.status.Wallet {
	case domain.WalletConnected:
		s.status.Wallet = domain.WalletDisconnected
		s.status.Address = ""
		if s.status.View == domain.ViewModeration {
			s.status.View = domain.ViewHome
			s.emit(event.ViewChanged{View: domain.ViewHome})
		}
		s.emit(event.WalletChanged{State: domain.WalletDisconnected})
		s.notify(domain.SeverityInfo, textWalletDisconnected)
	case domain.WalletConnecting:
		return errors.ErrWalletConnecting
	default:
		s.connectToken++
		token := s.connectToken
		s.status.Wallet = domain.WalletConnecting
		s.connectTimer = s.clock.AfterFunc(s.opts.ConnectLatency, func() {
			s.completeConnect(token)
		})
		s.emit(event.WalletChanged{State: domain.WalletConnecting})
		s.publish()
	}
	return nil
}

// completeConnect runs once the simulated latency elapsed.
// It is a no-op when the store was closed or another toggle happened meanwhile.
func (s *Store) completeConnect(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || token != s.connectToken || s.status.Wallet != domain.WalletConnecting {
		s.log.Debug("Discarding stale wallet connection", "token", token)
		return
	}
	s.connectTimer = nil
	s.status.Wallet = domain.WalletConnected
	s.status.Address = s.opts.Identity
	s.log.Info("Wallet connected", "address", s.opts.Identity)
	s.emit(event.WalletChanged{State: domain.WalletConnected, Address: s.opts.Identity})
	s.notify(domain.SeveritySuccess, textWalletConnected)
}

// PostMessage validates the body and prepends a message from the connected wallet.
func (s *Store) PostMessage(body string) (domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.Message{}, errors.ErrStoreClosed
	}

	if !s.status.Connected() {
		s.notify(domain.SeverityError, textConnectFirst)
		return domain.Message{}, errors.ErrWalletNotConnected
	}

	text, err := s.validateBody(domain.PostMessageCommand{Body: body})
	if err != nil {
		s.notify(domain.SeverityError, rejectionText(err, s.opts.MaxContentLength))
		return domain.Message{}, err
	}

	message := s.appendLocked(text, s.status.Address, domain.OriginUser)
	s.log.Debug("Message posted", "id", message.ID, "sender", message.Sender)
	s.notify(domain.SeveritySuccess, textMessagePosted)
	return message, nil
}

// AppendSyntheticMessage inserts a generated message. It never validates.
func (s *Store) AppendSyntheticMessage(cmd domain.SyntheticMessageCommand) (domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.Message{}, errors.ErrStoreClosed
	}
	message := s.appendLocked(cmd.Body, cmd.Sender, domain.OriginSynthetic)
	s.publish()
	return message, nil
}

// Notify raises a transient notification replacing the current one.
func (s *Store) Notify(severity domain.Severity, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.ErrStoreClosed
	}
	s.notify(severity, text)
	return nil
}

func (s *Store) DismissNotification() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.ErrStoreClosed
	}
	if s.status.Notification == nil {
		return nil
	}
	s.clearNotification(s.status.Notification.ID)
	return nil
}

func (s *Store) DismissOnboarding() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.ErrStoreClosed
	}
	if !s.status.ShowOnboarding {
		return nil
	}
	s.status.ShowOnboarding = false
	s.emit(event.OnboardingDismissed{})
	s.publish()
	return nil
}

// ChangeView switches the active view. The moderation view needs a connected
// wallet the authorizer recognises as admin.
func (s *Store) ChangeView(view domain.View) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.ErrStoreClosed
	}
	if _, ok := domain.ParseView(string(view)); !ok {
		return fmt.Errorf("%w: %q", errors.ErrUnknownView, view)
	}
	if view == domain.ViewModeration && !s.isAdminLocked() {
		return errors.ErrModerationForbidden
	}
	if s.status.View == view {
		return nil
	}
	s.status.View = view
	s.emit(event.ViewChanged{View: view})
	s.publish()
	return nil
}

// IsAdmin reports whether the connected wallet holds the admin capability.
func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isAdminLocked()
}

// LoadMore grows the feed window by one page.
func (s *Store) LoadMore() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.ErrStoreClosed
	}
	visible := min(s.status.Visible+s.opts.PageSize, max(len(s.messages), s.opts.PageSize))
	if visible == s.status.Visible {
		return nil
	}
	s.status.Visible = visible
	s.emit(event.FeedWindowChanged{Visible: visible})
	s.publish()
	return nil
}

// CopySender writes the sender of a message to the clipboard.
// A clipboard failure is only logged, the session is left untouched.
func (s *Store) CopySender(messageID string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errors.ErrStoreClosed
	}
	message, found := lo.Find(s.messages, func(m domain.Message) bool {
		return m.ID == messageID
	})
	clipboard := s.clipboard
	s.mu.Unlock()

	if !found {
		return fmt.Errorf("%w: %s", errors.ErrMessageNotFound, messageID)
	}
	if clipboard == nil {
		s.log.Error("Failed to copy text", "error", "no clipboard configured")
		return nil
	}
	if err := clipboard.WriteAll(message.Sender); err != nil {
		s.log.Error("Failed to copy text", "error", err)
		return fmt.Errorf("copy sender: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.ErrStoreClosed
	}
	s.status.CopiedID = messageID
	if s.copiedTimer != nil {
		s.copiedTimer.Stop()
	}
	if s.opts.CopiedTTL > 0 {
		s.copiedTimer = s.clock.AfterFunc(s.opts.CopiedTTL, func() {
			s.clearCopied(messageID)
		})
	}
	s.emit(event.SenderCopied{MessageID: messageID, Sender: message.Sender})
	s.publish()
	return nil
}

// Close tears the session down. Pending timers are stopped and every
// deferred completion becomes a no-op.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, t := range []*clock.Timer{s.connectTimer, s.notifyTimer, s.copiedTimer} {
		if t != nil {
			t.Stop()
		}
	}
	s.log.Debug("Session store closed")
}

func (s *Store) seed(messages []domain.Message) {
	if len(messages) == 0 {
		return
	}
	// Newest first, whatever order the seed came in
	seeded := slices.Clone(messages)
	slices.SortStableFunc(seeded, func(a, b domain.Message) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	for _, m := range seeded {
		s.seen[m.Sender] = struct{}{}
		if m.CreatedAt.After(s.lastAt) {
			s.lastAt = m.CreatedAt
		}
	}
	s.messages = seeded
}

// appendLocked prepends a new message and bumps the counters.
// Must be called with s.mu held.
func (s *Store) appendLocked(text, sender string, origin domain.Origin) domain.Message {
	at := s.clock.Now()
	if at.Before(s.lastAt) {
		at = s.lastAt
	}
	s.lastAt = at

	message := domain.NewMessage(uuid.NewString(), text, sender, at, origin)

	messages := make([]domain.Message, 0, len(s.messages)+1)
	messages = append(messages, message)
	s.messages = append(messages, s.messages...)

	s.stats.TotalMessages++
	if _, ok := s.seen[sender]; !ok {
		s.seen[sender] = struct{}{}
		s.stats.UniqueUsers++
	}
	s.emit(event.MessagePosted{Message: message})
	return message
}

// notify must be called with s.mu held. It publishes.
func (s *Store) notify(severity domain.Severity, text string) {
	s.notificationSeq++
	n := domain.Notification{
		ID:       s.notificationSeq,
		Text:     text,
		Severity: severity,
		RaisedAt: s.clock.Now(),
	}
	s.status.Notification = &n
	if s.notifyTimer != nil {
		s.notifyTimer.Stop()
	}
	if s.opts.NotificationTTL > 0 {
		id := n.ID
		s.notifyTimer = s.clock.AfterFunc(s.opts.NotificationTTL, func() {
			s.expireNotification(id)
		})
	}
	s.emit(event.NotificationRaised{Notification: n})
	s.publish()
}

func (s *Store) expireNotification(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.clearNotification(id)
}

// clearNotification only clears the notification if it is still the current one.
func (s *Store) clearNotification(id uint64) {
	if s.status.Notification == nil || s.status.Notification.ID != id {
		return
	}
	s.status.Notification = nil
	s.emit(event.NotificationCleared{ID: id})
	s.publish()
}

func (s *Store) clearCopied(messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.status.CopiedID != messageID {
		return
	}
	s.status.CopiedID = ""
	s.publish()
}

func (s *Store) isAdminLocked() bool {
	return s.authorizer != nil && s.status.Connected() && s.authorizer.IsAdmin(s.status.Address)
}

func (s *Store) emit(e event.DomainEvent) {
	if s.events == nil {
		return
	}
	select {
	case s.events <- e:
	default:
		s.log.Warn(fmt.Sprintf("Event channel full, dropping %s", e.Name()))
	}
}

// publish must be called with s.mu held.
// Message slices are never modified in place, the published snapshot can share them.
func (s *Store) publish() {
	status := s.status
	if s.status.Notification != nil {
		n := *s.status.Notification
		status.Notification = &n
	}
	s.snapshot.Store(&domain.Snapshot{
		Messages: s.messages,
		Stats:    s.stats,
		Status:   status,
	})
}
