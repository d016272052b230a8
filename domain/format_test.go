package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatWallet(t *testing.T) {
	req := require.New(t)
	req.Equal("0x742d...a93e", FormatWallet("0x742d35Cc6634C0532925a3b8D0Ca05c5E8d9a93e"))
	req.Equal("0x1a2b...1234", FormatWallet("0x1a2b...1234"))
	req.Equal("0x12", FormatWallet("0x12"))
}

func TestRelativeTime(t *testing.T) {
	req := require.New(t)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ago      time.Duration
		expected string
	}{
		{0, "Just now"},
		{59 * time.Second, "Just now"},
		{time.Minute, "1m ago"},
		{15 * time.Minute, "15m ago"},
		{time.Hour, "1h ago"},
		{23*time.Hour + 59*time.Minute, "23h ago"},
		{72 * time.Hour, "3d ago"},
	}
	for _, tt := range tests {
		req.Equal(tt.expected, RelativeTime(now.Add(-tt.ago), now), "ago=%s", tt.ago)
	}
}

func TestSnapshot_MessagesByAndWindow(t *testing.T) {
	req := require.New(t)
	at := time.Unix(0, 0)
	snapshot := Snapshot{
		Messages: []Message{
			NewMessage("3", "c", "0xaaaa", at, OriginUser),
			NewMessage("2", "b", "0xbbbb", at, OriginSynthetic),
			NewMessage("1", "a", "0xaaaa", at, OriginUser),
		},
		Status: SessionStatus{Visible: 2},
	}

	mine := snapshot.MessagesBy("0xaaaa")
	req.Len(mine, 2)
	req.Equal("3", mine[0].ID)
	req.Equal("1", mine[1].ID)
	req.Empty(snapshot.MessagesBy(""))

	visible, more := snapshot.Window()
	req.Len(visible, 2)
	req.True(more)

	visible, more = Window(snapshot.Messages, 10)
	req.Len(visible, 3)
	req.False(more)
}

func TestParseView(t *testing.T) {
	req := require.New(t)
	view, ok := ParseView("stats")
	req.True(ok)
	req.Equal(ViewStats, view)

	_, ok = ParseView("settings")
	req.False(ok)
}
