package workers

import (
	"aptos-board/contract"
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/benbjohnson/clock"
)

var _ contract.Worker = (*ChannelCapacityWorker)(nil)

type NamedChannel struct {
	Name    string
	Channel any
}

// ChannelUsage is one sample of a buffered channel.
type ChannelUsage struct {
	Name     string
	Capacity int
	Length   int
}

// ChannelCapacityWorker periodically samples the length and capacity of the board channels.
// Reading len(channel) and cap(channel) is non-blocking, so this won't interfere
// with other goroutines. A warning is logged when a channel is close to full,
// because the store drops events rather than block on a full channel.
type ChannelCapacityWorker struct {
	log                  *slog.Logger
	clock                clock.Clock
	channels             []NamedChannel
	metricInterval       time.Duration
	lowCapacityThreshold int
}

func NewChannelCapacityWorker(log *slog.Logger, clk clock.Clock,
	channels []NamedChannel, metricInterval time.Duration,
	lowCapacityThreshold int) *ChannelCapacityWorker {
	return &ChannelCapacityWorker{
		log:                  log,
		clock:                clk,
		channels:             channels,
		metricInterval:       metricInterval,
		lowCapacityThreshold: lowCapacityThreshold,
	}
}

func (w *ChannelCapacityWorker) Run(ctx context.Context) error {
	ticker := w.clock.Ticker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping channel sampling")
			return nil
		case <-ticker.C:
			w.Sample()
		}
	}
}

// Sample reads every channel once and returns the usages it logged.
func (w *ChannelCapacityWorker) Sample() []ChannelUsage {
	usages := make([]ChannelUsage, 0, len(w.channels))
	for _, nc := range w.channels {
		v := reflect.ValueOf(nc.Channel)
		// Verify if this is a channel
		if v.Kind() != reflect.Chan {
			w.log.Error("Provided object is not a channel", "name", nc.Name)
			continue
		}
		usage := ChannelUsage{Name: nc.Name, Capacity: v.Cap(), Length: v.Len()}
		usages = append(usages, usage)

		w.log.Debug(fmt.Sprintf("Channel %s usage: %d / %d", usage.Name, usage.Length, usage.Capacity))
		if usage.Capacity <= 0 {
			// In case of unbuffered channel
			continue
		}
		capacityLeft := usage.Capacity - usage.Length
		if capacityLeft <= w.lowCapacityThreshold {
			w.log.Warn(fmt.Sprintf("Channel %s capacity left : %d", usage.Name, capacityLeft))
		}
	}
	return usages
}
