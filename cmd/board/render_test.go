package main

import (
	"aptos-board/domain"
	"aptos-board/domain/event"
	"aptos-board/moderation"
	"aptos-board/store"
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func plainRenderer(buf *bytes.Buffer, now time.Time) *Renderer {
	return NewRenderer(buf, RenderOptions{LiveFeed: true}, func() time.Time { return now })
}

func TestRenderer_SnapshotHome(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := plainRenderer(&buf, now)

	r.Snapshot(domain.Snapshot{
		Messages: store.DemoSeed(now),
		Stats:    store.DemoStats,
		Status:   domain.SessionStatus{View: domain.ViewHome, ShowOnboarding: true, Visible: 2},
	})

	out := buf.String()
	req.Contains(out, "Aptos Board")
	req.Contains(out, "Connect Wallet")
	req.Contains(out, "Welcome!")
	req.Contains(out, "0x1234...5678")
	req.Contains(out, "1h ago")
	req.Contains(out, "1 more")
}

func TestRenderer_SnapshotStats(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	r := plainRenderer(&buf, time.Now())

	r.Snapshot(domain.Snapshot{
		Stats: store.DemoStats,
		Status: domain.SessionStatus{
			View:    domain.ViewStats,
			Wallet:  domain.WalletConnected,
			Address: "0x742d35Cc6634C0532925a3b8D0Ca05c5E8d9a93e",
			Notification: &domain.Notification{
				ID: 1, Text: "Wallet connected successfully!", Severity: domain.SeveritySuccess,
			},
		},
	})

	out := buf.String()
	req.Contains(out, "0x742d...a93e")
	req.Contains(out, "✓ Wallet connected successfully!")
	req.Contains(out, "1247")
	req.Contains(out, "342")
	req.NotContains(out, "Welcome!")
}

func TestRenderer_ConsumeLiveEvents(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	r := plainRenderer(&buf, time.Now())
	ctx := context.Background()

	message := domain.NewMessage("1", "gm", "0x9876...5432", time.Now(), domain.OriginSynthetic)
	req.NoError(r.Consume(ctx, event.MessagePosted{Message: message}))
	req.NoError(r.Consume(ctx, event.NotificationRaised{Notification: domain.Notification{
		Text: "Message cannot be empty", Severity: domain.SeverityError,
	}}))
	req.NoError(r.Consume(ctx, event.OnboardingDismissed{}))

	req.Equal("98 0x9876...5432: gm\n✗ Message cannot be empty\n", buf.String())
}

func TestRenderer_Queue(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	r := plainRenderer(&buf, time.Now())

	entries := []moderation.Entry{
		{Message: domain.NewMessage("1", "no scam here", "0x1234...5678", time.Now(), domain.OriginUser), Flags: []string{"scam"}},
		{Message: domain.NewMessage("2", "gm", "0x1234...5678", time.Now(), domain.OriginUser), Decision: moderation.ActionApprove},
	}
	r.Queue(entries, map[moderation.Filter]int{
		moderation.FilterAll: 2, moderation.FilterFlagged: 1, moderation.FilterPending: 1,
	}, []string{"1"})

	out := buf.String()
	req.Contains(out, "all 2 | flagged 1 | pending 1")
	req.Contains(out, "scam")
	req.Contains(out, "approve")
}

func TestLoadRenderOptions_Defaults(t *testing.T) {
	req := require.New(t)
	t.Setenv("BOARD_COLOURS", "false")

	opts, err := LoadRenderOptions()
	req.NoError(err)
	req.False(opts.Colours)
	req.True(opts.LiveFeed)
	req.False(opts.WrapText)
}
