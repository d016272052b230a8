package runtime_test

import (
	"aptos-board/contract"
	"aptos-board/domain"
	"aptos-board/domain/event"
	"aptos-board/errors"
	"aptos-board/moderation"
	"aptos-board/runtime"
	"aptos-board/store"
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

type RecordingSink struct {
	mu     sync.Mutex
	events []event.DomainEvent
}

func (s *RecordingSink) Consume(_ context.Context, e event.DomainEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *RecordingSink) Posted() []event.MessagePosted {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.FilterMap(s.events, func(e event.DomainEvent, _ int) (event.MessagePosted, bool) {
		posted, ok := e.(event.MessagePosted)
		return posted, ok
	})
}

func boardConfig(now time.Time) runtime.Config {
	return runtime.Config{
		EventBufferSize: 64,
		SinkTimeout:     time.Second,
		RestartInterval: 10 * time.Millisecond,
		FeedInterval:    10 * time.Second,
		FeedProbability: 1,
		MetricInterval:  5 * time.Second,
		Store: store.Options{
			Identity:         "0x742d35Cc6634C0532925a3b8D0Ca05c5E8d9a93e",
			ConnectLatency:   1500 * time.Millisecond,
			NotificationTTL:  3 * time.Second,
			CopiedTTL:        2 * time.Second,
			MaxContentLength: 200,
			PageSize:         10,
			Stats:            store.DemoStats,
			Seed:             store.DemoSeed(now),
			ShowOnboarding:   true,
		},
	}
}

func TestBoard_StartFeedsStoreAndSinks(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	mock := clock.NewMock()
	recorder := &RecordingSink{}

	board, err := runtime.NewBoard(log, boardConfig(mock.Now()), runtime.Dependencies{
		Clock:  mock,
		Random: rand.New(rand.NewPCG(1, 2)),
		Sinks:  []contract.EventSink{recorder},
	})
	req.NoError(err)

	done := make(chan error, 1)
	go func() { done <- board.Start(context.Background()) }()

	// Given a feed that always succeeds
	// When the clock moves past one period
	req.Eventually(func() bool {
		mock.Add(10 * time.Second)
		return len(recorder.Posted()) > 0
	}, 2*time.Second, 10*time.Millisecond)

	// Then the synthetic message is on the board and in the review queue
	snapshot := board.Store().Snapshot()
	req.Greater(len(snapshot.Messages), 3)
	req.Equal(domain.OriginSynthetic, snapshot.Messages[0].Origin)
	req.Equal(domain.WalletDisconnected, snapshot.Status.Wallet)
	req.Eventually(func() bool {
		return len(board.Queue().Entries(moderation.FilterAll)) > 3
	}, time.Second, 10*time.Millisecond)

	// When the board is stopped
	board.Stop()
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(2 * time.Second):
		req.Fail("board did not stop")
	}

	// Then the store no longer accepts intents
	req.ErrorIs(board.Store().ConnectWallet(), errors.ErrStoreClosed)
}

func TestBoard_QueueTracksSeedMessages(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	mock := clock.NewMock()
	cfg := boardConfig(mock.Now())
	cfg.FeedProbability = 0

	board, err := runtime.NewBoard(log, cfg, runtime.Dependencies{
		Clock:  mock,
		Random: rand.New(rand.NewPCG(1, 2)),
	})
	req.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- board.Start(ctx) }()

	req.Eventually(func() bool {
		return len(board.Queue().Entries(moderation.FilterAll)) == 3
	}, time.Second, 10*time.Millisecond)

	cancel()
	req.NoError(<-done)
}

func TestBoard_RequiresRandom(t *testing.T) {
	req := require.New(t)
	_, err := runtime.NewBoard(logs.GetLoggerFromLevel(slog.LevelDebug), boardConfig(time.Now()), runtime.Dependencies{})
	req.Error(err)
}

func TestBoard_InvalidProbability(t *testing.T) {
	req := require.New(t)
	cfg := boardConfig(time.Now())
	cfg.FeedProbability = 1.5
	board, err := runtime.NewBoard(logs.GetLoggerFromLevel(slog.LevelDebug), cfg, runtime.Dependencies{
		Random: rand.New(rand.NewPCG(1, 2)),
	})
	req.NoError(err)

	req.ErrorIs(board.Start(context.Background()), errors.ErrInvalidProbability)
}

func TestBoard_StopBeforeStart(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	mock := clock.NewMock()

	board, err := runtime.NewBoard(log, boardConfig(mock.Now()), runtime.Dependencies{
		Clock:  mock,
		Random: rand.New(rand.NewPCG(1, 2)),
	})
	req.NoError(err)

	// Given an unmount requested while the board is still being prepared
	board.Stop()

	// When the board starts
	done := make(chan error, 1)
	go func() { done <- board.Start(context.Background()) }()

	// Then Start returns and the store is closed
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(2 * time.Second):
		req.Fail("board ignored a Stop issued before Start")
	}
	_, err = board.Store().PostMessage("hello")
	req.ErrorIs(err, errors.ErrStoreClosed)
}
