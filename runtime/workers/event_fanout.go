package workers

import (
	"aptos-board/contract"
	"aptos-board/domain/event"
	"context"
	"log/slog"
	"sync"
	"time"
)

var _ contract.Worker = (*EventFanout)(nil)

// EventFanout broadcasts domain events to in-process consumers.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// durability, or retries. Sinks are called one after the other so each of
// them sees events in the order the store emitted them.
//
// It is intended for projections and side effects (renderer, logs, review queue),
// the store itself never depends on it.
type EventFanout struct {
	mu          sync.RWMutex
	log         *slog.Logger
	events      <-chan event.DomainEvent
	sinks       []contract.EventSink
	sinkTimeout time.Duration
}

func NewEventFanout(log *slog.Logger, events <-chan event.DomainEvent, sinkTimeout time.Duration) *EventFanout {
	return &EventFanout{log: log, events: events, sinkTimeout: sinkTimeout}
}

// Add registers sinks. It is safe to call while the fanout is running.
func (w *EventFanout) Add(sinks ...contract.EventSink) *EventFanout {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sinks = append(w.sinks, sinks...)
	return w
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt, ok := <-w.events:
			if !ok {
				w.log.Debug("Event channel is closed")
				return nil
			}
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping event fanout")
			return ctx.Err()
		}
	}
}

// Fanout One sink for each event, each bounded by the sink timeout
func (w *EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	w.mu.RLock()
	sinks := w.sinks
	w.mu.RUnlock()

	for _, sink := range sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
		if err := sink.Consume(sinkCtx, evt); err != nil {
			w.log.Warn("Sink failed to consume event", "event", evt.Name(), "error", err)
		}
		cancel()
	}
}
