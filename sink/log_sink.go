package sink

import (
	"aptos-board/domain/event"
	"context"
	"log/slog"
)

// LogSink traces every board event at debug level.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) LogSink {
	return LogSink{log: log}
}

func (l LogSink) Consume(ctx context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.MessagePosted:
		l.log.DebugContext(ctx, "Event", "name", evt.Name(),
			"id", evt.Message.ID, "sender", evt.Message.Sender, "origin", evt.Message.Origin)
	case event.WalletChanged:
		l.log.DebugContext(ctx, "Event", "name", evt.Name(), "state", evt.State.String(), "address", evt.Address)
	case event.NotificationRaised:
		l.log.DebugContext(ctx, "Event", "name", evt.Name(),
			"id", evt.Notification.ID, "severity", evt.Notification.Severity, "text", evt.Notification.Text)
	default:
		l.log.DebugContext(ctx, "Event", "name", e.Name(), "event", evt)
	}
	return nil
}
