package decay

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestTickerFiresEveryInterval(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mockClock := quartz.NewMock(t)

	var ticks atomic.Int32
	ticker := New(mockClock, 10*time.Second, func() { ticks.Add(1) }, quietLogger())
	require.True(t, ticker.Enabled())
	ticker.Start(ctx)

	for i := 1; i <= 3; i++ {
		mockClock.Advance(10 * time.Second).MustWait(ctx)
		assert.Equal(t, int32(i), ticks.Load())
	}

	require.NoError(t, ticker.Stop())
	assert.NoError(t, ticker.Stop(), "second stop is a no-op")
}

func TestTickerStopsTicking(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mockClock := quartz.NewMock(t)

	var ticks atomic.Int32
	ticker := New(mockClock, time.Second, func() { ticks.Add(1) }, quietLogger())
	ticker.Start(ctx)
	ticker.Start(ctx) // already running

	mockClock.Advance(time.Second).MustWait(ctx)
	require.NoError(t, ticker.Stop())

	mockClock.Advance(time.Second).MustWait(ctx)
	assert.Equal(t, int32(1), ticks.Load())
}

func TestDisabledTicker(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mockClock := quartz.NewMock(t)

	var ticks atomic.Int32
	ticker := New(mockClock, 0, func() { ticks.Add(1) }, quietLogger())
	assert.False(t, ticker.Enabled())
	ticker.Start(ctx)

	mockClock.Advance(time.Minute).MustWait(ctx)
	assert.Zero(t, ticks.Load())
	assert.NoError(t, ticker.Stop())
}
