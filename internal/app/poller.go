package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/five82/vista/internal/player"
	"github.com/five82/vista/internal/state"
)

const (
	defaultPollInterval = time.Second
	fetchTimeout        = 5 * time.Second
	maxBackoff          = 30 * time.Second
)

// Poller feeds player snapshots into a store. Consecutive failures back off
// exponentially up to maxBackoff.
type Poller struct {
	Source   player.Source
	Store    *state.Store
	Interval time.Duration
	Clock    clockwork.Clock
	Logger   *slog.Logger
}

// StartPoller launches a background goroutine that refreshes the store until
// ctx is cancelled. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, src player.Source, interval time.Duration, logger *slog.Logger) {
	p := &Poller{Source: src, Store: store, Interval: interval, Logger: logger}
	go p.Run(ctx)
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	clock := p.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "poller")

	failures := 0
	for {
		if err := p.refresh(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			failures++
			logger.Warn("player poll failed", "error", err, "failures", failures)
		} else {
			if failures > 0 {
				logger.Info("player reachable again", "after_failures", failures)
			}
			failures = 0
		}

		timer := clock.NewTimer(calculateBackoff(failures, interval))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.Chan():
		}
	}
}

func (p *Poller) refresh(ctx context.Context) error {
	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	patch, err := p.Source.Fetch(fetchCtx)
	if err != nil {
		if ctx.Err() == nil {
			p.Store.Update(nil, err)
		}
		return err
	}
	p.Store.Update(patch, nil)
	return nil
}

// calculateBackoff doubles base once per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	d := base
	for i := 0; i < failures && d < maxBackoff; i++ {
		d *= 2
	}
	return min(d, maxBackoff)
}
