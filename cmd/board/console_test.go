package main

import (
	"aptos-board/contract"
	"aptos-board/errors"
	"aptos-board/mocks"
	"aptos-board/moderation"
	"aptos-board/runtime"
	"aptos-board/store"
	"bytes"
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const identity = "0x742d35Cc6634C0532925a3b8D0Ca05c5E8d9a93e"

func newTestConsole(t *testing.T, clipboard contract.Clipboard, authorizer contract.Authorizer) (*Console, *runtime.Board, *clock.Mock, *bytes.Buffer) {
	t.Helper()
	mock := clock.NewMock()
	board, err := runtime.NewBoard(logs.GetLoggerFromLevel(slog.LevelDebug), runtime.Config{
		EventBufferSize: 256,
		FeedInterval:    10 * time.Second,
		FeedProbability: 0.3,
		Store: store.Options{
			Identity:         identity,
			ConnectLatency:   1500 * time.Millisecond,
			NotificationTTL:  3 * time.Second,
			CopiedTTL:        2 * time.Second,
			MaxContentLength: 200,
			PageSize:         10,
			Stats:            store.DemoStats,
			Seed:             store.DemoSeed(mock.Now()),
			ShowOnboarding:   true,
		},
	}, runtime.Dependencies{
		Clock:      mock,
		Random:     rand.New(rand.NewPCG(1, 2)),
		Clipboard:  clipboard,
		Authorizer: authorizer,
	})
	require.NoError(t, err)
	t.Cleanup(board.Store().Close)

	var buf bytes.Buffer
	renderer := NewRenderer(&buf, RenderOptions{}, mock.Now)
	return NewConsole(board, renderer), board, mock, &buf
}

func connectWallet(t *testing.T, c *Console, board *runtime.Board, mock *clock.Mock) {
	t.Helper()
	_, err := c.Execute("connect")
	require.NoError(t, err)
	mock.Add(1500 * time.Millisecond)
	require.Eventually(t, func() bool {
		return board.Store().Snapshot().Status.Connected()
	}, time.Second, 5*time.Millisecond)
}

func TestConsole_PostRequiresWallet(t *testing.T) {
	req := require.New(t)
	c, board, mock, buf := newTestConsole(t, nil, nil)

	// Given a disconnected wallet
	_, err := c.Execute("post hello")
	req.ErrorIs(err, errors.ErrWalletNotConnected)
	req.Len(board.Store().Snapshot().Messages, 3)

	// When the wallet is connected
	connectWallet(t, c, board, mock)
	_, err = c.Execute("post   hello  ")

	// Then the message is on top of the feed and in the profile
	req.NoError(err)
	top := board.Store().Snapshot().Messages[0]
	req.Equal("hello", top.Text)
	req.Equal(identity, top.Sender)

	quit, err := c.Execute("profile")
	req.NoError(err)
	req.False(quit)
	req.Contains(buf.String(), "1 messages")
}

func TestConsole_ViewsAndWindow(t *testing.T) {
	req := require.New(t)
	c, board, _, buf := newTestConsole(t, nil, nil)

	_, err := c.Execute("view stats")
	req.NoError(err)
	req.Contains(buf.String(), "1247")

	_, err = c.Execute("view moderation")
	req.ErrorIs(err, errors.ErrModerationForbidden)

	_, err = c.Execute("view settings")
	req.ErrorIs(err, errors.ErrUnknownView)

	_, err = c.Execute("more")
	req.NoError(err)
	req.Equal(10, board.Store().Snapshot().Status.Visible)

	_, err = c.Execute("queue")
	req.ErrorIs(err, errors.ErrModerationForbidden)
}

func TestConsole_CopySender(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	clipboard := mocks.NewMockClipboard(ctrl)
	c, board, _, _ := newTestConsole(t, clipboard, nil)

	// Given the third visible message
	third := board.Store().Snapshot().Messages[2]
	clipboard.EXPECT().WriteAll(third.Sender).Return(nil)

	// When its sender is copied
	_, err := c.Execute("copy 3")

	// Then the copied marker points to it
	req.NoError(err)
	req.Equal(third.ID, board.Store().Snapshot().Status.CopiedID)

	_, err = c.Execute("copy 9")
	req.ErrorIs(err, errors.ErrMessageNotFound)
}

func TestConsole_ModerationQueue(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	authorizer := mocks.NewMockAuthorizer(ctrl)
	authorizer.EXPECT().IsAdmin(identity).Return(true).AnyTimes()
	c, board, mock, buf := newTestConsole(t, nil, authorizer)
	board.Queue().Track(board.Store().Snapshot().Messages...)

	// Given an admin wallet in the moderation view
	connectWallet(t, c, board, mock)
	_, err := c.Execute("view moderation")
	req.NoError(err)

	// When the newest entry is selected and hidden
	_, err = c.Execute("queue pending")
	req.NoError(err)
	_, err = c.Execute("select 1")
	req.NoError(err)
	_, err = c.Execute("hide")
	req.NoError(err)

	// Then the queue recorded it and the feed still shows every message
	req.Contains(buf.String(), "hide: 1 messages")
	req.Len(board.Queue().Entries(moderation.FilterPending), 2)
	req.Len(board.Store().Snapshot().Messages, 3)

	_, err = c.Execute("select 7")
	req.ErrorIs(err, errors.ErrMessageNotFound)
}

func TestConsole_Commands(t *testing.T) {
	req := require.New(t)
	c, _, _, _ := newTestConsole(t, nil, nil)

	quit, err := c.Execute("")
	req.NoError(err)
	req.False(quit)

	_, err = c.Execute("dance")
	req.Error(err)

	quit, err = c.Execute("QUIT")
	req.NoError(err)
	req.True(quit)
}

func TestConsole_Run(t *testing.T) {
	req := require.New(t)
	c, board, _, buf := newTestConsole(t, nil, nil)

	err := c.Run(context.Background(), strings.NewReader("skip\nbogus\nquit\npost never read\n"))

	req.NoError(err)
	req.False(board.Store().Snapshot().Status.ShowOnboarding)
	req.Contains(buf.String(), "commands:")
	req.Contains(buf.String(), `unknown command "bogus"`)
}
