package runner

import (
	"context"
	"time"

	"delta_bot/internal/models"
)

// Exchange is the order and position surface of the exchange gateway.
type Exchange interface {
	PlaceLimitOrder(ctx context.Context, productID int, size float64, side models.Side, price float64, postOnly bool) (string, error)
	PlaceStopOrder(ctx context.Context, productID int, size float64, side models.Side, stopPrice, limitPrice float64) (string, error)
	LiveOrders(ctx context.Context, productID int) ([]models.PendingOrder, error)
	CancelOrder(ctx context.Context, productID int, orderID string) error
	// Position returns nil, nil when there is no position for the product.
	Position(ctx context.Context, productID int) (*models.Position, error)
	Balance(ctx context.Context, assetID int) (float64, error)
}

type SignalSource interface {
	LatestSignal(ctx context.Context) (models.Signal, error)
}

type CycleRunner interface {
	RunCycle(ctx context.Context) (CycleOutcome, error)
}

// Clock lets tests drive the poll loop and the scheduler without real delays.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, in which case it returns ctx.Err().
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func NewClock() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
