package runner

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type cycleStep struct {
	outcome CycleOutcome
	err     error
	panic   bool
}

type fakeCycles struct {
	steps []cycleStep
	calls int
}

func (f *fakeCycles) RunCycle(context.Context) (CycleOutcome, error) {
	i := f.calls
	f.calls++
	if i >= len(f.steps) {
		return OutcomeNoSignal, nil
	}
	if f.steps[i].panic {
		panic("boom")
	}
	return f.steps[i].outcome, f.steps[i].err
}

func TestScheduler_BoundariesAndBackoff(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cycles := &fakeCycles{steps: []cycleStep{
		{outcome: OutcomeInPosition},
		{outcome: OutcomeFailed, err: errors.Wrap(ErrBalanceUnavailable, "HTTP 502")},
		{outcome: OutcomeFailed, err: errors.New("signal fetch failed")},
		{panic: true},
	}}
	clock := &fakeClock{
		now:       time.Date(2024, 3, 1, 10, 7, 0, 0, time.UTC),
		maxSleeps: 8,
		cancel:    cancel,
	}
	s := NewScheduler(testConfig(), cycles, clock, testMetrics(), zap.NewNop())

	err := s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 4, cycles.calls)

	assert.Equal(t, []time.Duration{
		8 * time.Minute,                 // 10:07 -> 10:15
		15 * time.Minute,                // on the boundary, wait a full period
		60 * time.Second,                // balance retry
		14 * time.Minute,                // 10:31 -> 10:45
		30 * time.Second,                // error backoff
		14*time.Minute + 30*time.Second, // 10:45:30 -> 11:00
		30 * time.Second,                // panic counts as a fault
		14*time.Minute + 30*time.Second, // cancelled while waiting
	}, clock.sleeps)

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.Cycles.WithLabelValues(string(OutcomeInPosition))))
	assert.Equal(t, 3.0, testutil.ToFloat64(s.metrics.Cycles.WithLabelValues(string(OutcomeFailed))))
	assert.Equal(t, 3.0, testutil.ToFloat64(s.metrics.CycleErrors))
}

func TestScheduler_StopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cycles := &fakeCycles{}
	s := NewScheduler(testConfig(), cycles, &fakeClock{}, testMetrics(), zap.NewNop())

	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
	assert.Zero(t, cycles.calls)
}

func TestRealClock_SleepHonoursContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, NewClock().Sleep(ctx, time.Hour), context.Canceled)
	assert.NoError(t, NewClock().Sleep(context.Background(), time.Millisecond))
}

func TestScheduler_EntryFailureCountsAsCycleError(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ex := &fakeExchange{balance: 1000, limitErr: errors.New("HTTP 502")}
	f := newManagerFixture(ex, buySignal(2000))
	clock := &fakeClock{
		now:       time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		maxSleeps: 3,
		cancel:    cancel,
	}
	s := NewScheduler(testConfig(), f.m, clock, f.m.metrics, zap.NewNop())

	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
	assert.Equal(t, []time.Duration{15 * time.Minute, 30 * time.Second, 14*time.Minute + 30*time.Second}, clock.sleeps)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.CycleErrors))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.Cycles.WithLabelValues(string(OutcomeFailed))))
	assert.Equal(t, 0.0, testutil.ToFloat64(s.metrics.Cycles.WithLabelValues(string(OutcomeRejected))))
}
