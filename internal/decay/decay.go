// Package decay drives the periodic score penalty. The timer lives outside the
// solitaire engine: each tick only invokes a callback, and the owner of the
// game applies DecreaseScore from its own loop.
package decay

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Ticker calls a function every interval until stopped
type Ticker struct {
	clock    quartz.Clock
	interval time.Duration
	onTick   func()
	logger   *log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	waiter quartz.Waiter
}

// New creates a stopped ticker. An interval of zero or less disables it.
func New(clock quartz.Clock, interval time.Duration, onTick func(), logger *log.Logger) *Ticker {
	return &Ticker{
		clock:    clock,
		interval: interval,
		onTick:   onTick,
		logger:   logger.WithPrefix("decay"),
	}
}

// Enabled reports whether the ticker will fire at all
func (t *Ticker) Enabled() bool {
	return t.interval > 0
}

// Start begins ticking. It does nothing when disabled or already running.
func (t *Ticker) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.Enabled() || t.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.waiter = t.clock.TickerFunc(ctx, t.interval, func() error {
		t.onTick()
		return nil
	}, "decay")
	t.logger.Debug("Started score decay", "interval", t.interval)
}

// Stop halts the ticker and waits for an in-flight tick to finish.
func (t *Ticker) Stop() error {
	t.mu.Lock()
	cancel, waiter := t.cancel, t.waiter
	t.cancel, t.waiter = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	err := waiter.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	t.logger.Debug("Stopped score decay")
	return err
}
