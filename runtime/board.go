// Package runtime wires the session store to its workers and sinks.
// It orchestrates the board without containing business logic or domain rules.
package runtime

import (
	"aptos-board/contract"
	"aptos-board/domain/event"
	"aptos-board/moderation"
	"aptos-board/runtime/workers"
	"aptos-board/sink"
	"aptos-board/store"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

type Config struct {
	EventBufferSize      int
	SinkTimeout          time.Duration
	RestartInterval      time.Duration
	FeedInterval         time.Duration
	FeedProbability      float64
	MetricInterval       time.Duration
	LowCapacityThreshold int
	Store                store.Options
}

// Dependencies are the collaborators the board does not own.
// Clipboard and Authorizer may be nil.
type Dependencies struct {
	Clock      clock.Clock
	Random     contract.Random
	Clipboard  contract.Clipboard
	Authorizer contract.Authorizer
	Sinks      []contract.EventSink
}

// Board is the mounted message board: one store, one synthetic feed,
// one event pipeline and the moderation queue, under a single supervisor.
type Board struct {
	mu         sync.Mutex
	log        *slog.Logger
	cfg        Config
	deps       Dependencies
	store      *store.Store
	queue      *moderation.Queue
	supervisor *workers.Supervisor
	events     chan event.DomainEvent
	started    bool
}

func NewBoard(log *slog.Logger, cfg Config, deps Dependencies) (*Board, error) {
	if deps.Clock == nil {
		deps.Clock = clock.New()
	}
	if deps.Random == nil {
		return nil, fmt.Errorf("board needs a random source")
	}

	queue, err := prepareModeration(log)
	if err != nil {
		return nil, err
	}

	events := make(chan event.DomainEvent, cfg.EventBufferSize)
	s := store.NewStore(log, deps.Clock, cfg.Store).
		WithEvents(events).
		WithClipboard(deps.Clipboard).
		WithAuthorizer(deps.Authorizer)

	return &Board{
		log:        log,
		cfg:        cfg,
		deps:       deps,
		store:      s,
		queue:      queue,
		supervisor: workers.NewSupervisor(log, cfg.RestartInterval),
		events:     events,
	}, nil
}

func (b *Board) Store() *store.Store { return b.store }

func (b *Board) Queue() *moderation.Queue { return b.queue }

// Start mounts the board and blocks until ctx is done or Stop is called.
// The store is closed on return, pending timers never fire afterwards.
func (b *Board) Start(ctx context.Context) error {
	// 1. Preparation phase (No Lock)
	feed, err := workers.NewFeedWorker(b.log, b.deps.Clock, b.store, b.deps.Random,
		b.cfg.FeedInterval, b.cfg.FeedProbability)
	if err != nil {
		return err
	}
	// Seed messages never travel through the event pipeline
	b.queue.Track(b.store.Snapshot().Messages...)

	fanout := workers.NewEventFanout(b.log, b.events, b.cfg.SinkTimeout).
		Add(sink.NewLogSink(b.log), b.queue).
		Add(b.deps.Sinks...)

	// 2. Critical Section (Short Lock)
	b.mu.Lock()
	if b.started {
		b.mu.Unlock()
		return fmt.Errorf("board already started")
	}
	b.started = true
	b.supervisor.Add(fanout, feed)
	if b.cfg.MetricInterval > 0 {
		b.supervisor.Add(workers.NewChannelCapacityWorker(b.log, b.deps.Clock,
			[]workers.NamedChannel{{Name: "events", Channel: b.events}},
			b.cfg.MetricInterval, b.cfg.LowCapacityThreshold))
	}
	b.mu.Unlock()

	// 3. Execution phase (No Lock)
	b.log.Info("Starting board and all supervised workers")
	b.supervisor.Run(ctx)
	b.store.Close()
	b.log.Info("Board stopped")
	return nil
}

// Stop unmounts the board. Start returns once every worker exited.
func (b *Board) Stop() {
	b.log.Info("Requesting board shutdown")
	b.supervisor.Stop()
}

// prepareModeration loads the word lists and builds the Aho-Corasick automaton.
func prepareModeration(log *slog.Logger) (*moderation.Queue, error) {
	data, err := moderation.LoadWords()
	if err != nil {
		return nil, err
	}
	log.Info(fmt.Sprintf("%d moderation files loaded [%s]",
		len(data.Languages), strings.Join(data.Languages, ",")))
	log.Info(fmt.Sprintf("%d unique moderation words loaded", len(data.Words)))

	moderator, err := moderation.NewModerator(data.Words)
	if err != nil {
		return nil, err
	}
	return moderation.NewQueue(log, moderator), nil
}
