package workers

import (
	"aptos-board/contract"
	"aptos-board/domain"
	"aptos-board/errors"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
)

const textNewMessage = "New message arrived!"

var _ contract.Worker = (*FeedWorker)(nil)

// FeedWorker stands in for a live push channel. On every tick it flips a
// biased coin and, on success, appends a fabricated message to the board.
type FeedWorker struct {
	log         *slog.Logger
	clock       clock.Clock
	target      contract.MessageAppender
	random      contract.Random
	interval    time.Duration
	probability float64
}

func NewFeedWorker(
	log *slog.Logger,
	clk clock.Clock,
	target contract.MessageAppender,
	random contract.Random,
	interval time.Duration,
	probability float64) (*FeedWorker, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: got %v", errors.ErrInvalidInterval, interval)
	}
	if probability < 0 || probability > 1 {
		return nil, fmt.Errorf("%w: got %v", errors.ErrInvalidProbability, probability)
	}
	return &FeedWorker{
		log:         log,
		clock:       clk,
		target:      target,
		random:      random,
		interval:    interval,
		probability: probability,
	}, nil
}

func (w *FeedWorker) Run(ctx context.Context) error {
	w.log.Info("Starting synthetic feed", "interval", w.interval, "probability", w.probability)
	ticker := w.clock.Ticker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping synthetic feed")
			return ctx.Err()
		case <-ticker.C:
			if _, _, err := w.Tick(); err != nil {
				if stderrors.Is(err, errors.ErrStoreClosed) {
					w.log.Debug("Board closed, synthetic feed done")
					return nil
				}
				w.log.Warn("Synthetic message lost", "error", err)
			}
		}
	}
}

// Tick runs one Bernoulli trial and reports whether a message was appended.
func (w *FeedWorker) Tick() (domain.Message, bool, error) {
	if w.random.Float64() >= w.probability {
		return domain.Message{}, false, nil
	}

	message, err := w.target.AppendSyntheticMessage(domain.SyntheticMessageCommand{
		Body:   SyntheticBody(w.random),
		Sender: SyntheticWallet(w.random),
	})
	if err != nil {
		return domain.Message{}, false, err
	}
	if err = w.target.Notify(domain.SeverityInfo, textNewMessage); err != nil {
		return message, true, err
	}
	w.log.Debug("Synthetic message appended", "id", message.ID, "sender", message.Sender)
	return message, true, nil
}
