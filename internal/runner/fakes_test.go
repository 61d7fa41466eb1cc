package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"delta_bot/internal/models"
	"delta_bot/internal/modules/config"
	hsvc "delta_bot/internal/modules/health/service"

	"github.com/prometheus/client_golang/prometheus"
)

type posStep struct {
	pos *models.Position
	err error
}

type limitCall struct {
	productID int
	size      float64
	side      models.Side
	price     float64
	postOnly  bool
}

type stopCall struct {
	size      float64
	side      models.Side
	stopPrice float64
	limit     float64
}

type fakeExchange struct {
	mu sync.Mutex

	balance    float64
	balanceErr error
	live       []models.PendingOrder
	liveErr    error
	cancelErr  map[string]error
	positions  []posStep
	posIdx     int
	limitID    string
	limitErr   error
	stopErrs   []error

	calls     []string
	limits    []limitCall
	stops     []stopCall
	cancelled []string
}

func (f *fakeExchange) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeExchange) PlaceLimitOrder(_ context.Context, productID int, size float64, side models.Side, price float64, postOnly bool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("PlaceLimitOrder")
	if f.limitErr != nil {
		return "", f.limitErr
	}
	f.limits = append(f.limits, limitCall{productID, size, side, price, postOnly})
	return f.limitID, nil
}

func (f *fakeExchange) PlaceStopOrder(_ context.Context, _ int, size float64, side models.Side, stopPrice, limitPrice float64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("PlaceStopOrder")
	n := len(f.stops)
	f.stops = append(f.stops, stopCall{size, side, stopPrice, limitPrice})
	if n < len(f.stopErrs) && f.stopErrs[n] != nil {
		return "", f.stopErrs[n]
	}
	return fmt.Sprintf("stop-%d", n+1), nil
}

func (f *fakeExchange) LiveOrders(_ context.Context, _ int) ([]models.PendingOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("LiveOrders")
	return f.live, f.liveErr
}

func (f *fakeExchange) CancelOrder(_ context.Context, _ int, orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CancelOrder")
	if err := f.cancelErr[orderID]; err != nil {
		return err
	}
	f.cancelled = append(f.cancelled, orderID)
	return nil
}

// Position walks the script; the last step repeats once it is exhausted.
func (f *fakeExchange) Position(_ context.Context, _ int) (*models.Position, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Position")
	if len(f.positions) == 0 {
		return nil, nil
	}
	i := f.posIdx
	if i >= len(f.positions) {
		i = len(f.positions) - 1
	}
	f.posIdx++
	return f.positions[i].pos, f.positions[i].err
}

func (f *fakeExchange) Balance(_ context.Context, _ int) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Balance")
	return f.balance, f.balanceErr
}

func (f *fakeExchange) mutatingCalls() int {
	n := 0
	for _, c := range f.calls {
		switch c {
		case "PlaceLimitOrder", "PlaceStopOrder", "CancelOrder":
			n++
		}
	}
	return n
}

type fakeSignals struct {
	sig   models.Signal
	err   error
	calls int
}

func (f *fakeSignals) LatestSignal(context.Context) (models.Signal, error) {
	f.calls++
	return f.sig, f.err
}

type fakeJournal struct {
	records []models.TradeRecord
	err     error
}

func (f *fakeJournal) Record(_ context.Context, rec models.TradeRecord) error {
	f.records = append(f.records, rec)
	return f.err
}

type fakeNotifier struct {
	mu   sync.Mutex
	msgs []string
}

func (f *fakeNotifier) Send(_ context.Context, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
}

func (f *fakeNotifier) Sendf(ctx context.Context, format string, args ...any) {
	f.Send(ctx, fmt.Sprintf(format, args...))
}

// fakeClock advances on Sleep. With maxSleeps set, the sleep that reaches the
// limit cancels the run context.
type fakeClock struct {
	now       time.Time
	sleeps    []time.Duration
	maxSleeps int
	cancel    context.CancelFunc
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sleeps = append(c.sleeps, d)
	if c.maxSleeps > 0 && len(c.sleeps) >= c.maxSleeps {
		c.cancel()
		return ctx.Err()
	}
	c.now = c.now.Add(d)
	return nil
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Delta.APIKey = "key"
	cfg.Delta.APISecret = "secret"
	return &cfg
}

func testMetrics() *hsvc.Metrics {
	return hsvc.NewMetrics(prometheus.NewRegistry())
}

func openPos(side models.Side, mark float64) *models.Position {
	return &models.Position{ProductID: 1699, Side: side, Size: 0.1, MarkPrice: mark, EntryPrice: 100}
}

func closedPos() *models.Position {
	return &models.Position{ProductID: 1699}
}
