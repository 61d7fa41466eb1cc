package service

import (
	"context"
	"math"
	"net/http"

	"delta_bot/internal/models"

	"github.com/pkg/errors"
)

// Position returns the margined position for productID, or nil when there is none.
func (c *Client) Position(ctx context.Context, productID int) (*models.Position, error) {
	var res []positionResult
	if err := c.do(ctx, "Position", http.MethodGet, "/v2/positions/margined", nil, nil, &res); err != nil {
		return nil, err
	}

	for _, p := range res {
		if p.ProductID != productID {
			continue
		}
		size := float64(p.Size)
		side := models.SideBuy
		if size < 0 {
			side = models.SideSell
		}
		return &models.Position{
			ProductID:  p.ProductID,
			Side:       side,
			Size:       math.Abs(size),
			MarkPrice:  float64(p.MarkPrice),
			EntryPrice: float64(p.EntryPrice),
		}, nil
	}
	return nil, nil
}

// Balance returns the available balance of the wallet holding assetID.
func (c *Client) Balance(ctx context.Context, assetID int) (float64, error) {
	var res []balanceResult
	if err := c.do(ctx, "Balance", http.MethodGet, "/v2/wallet/balances", nil, nil, &res); err != nil {
		return 0, err
	}
	for _, b := range res {
		if b.AssetID == assetID {
			return float64(b.AvailableBalance), nil
		}
	}
	return 0, errors.Errorf("Balance: wallet for asset %d not found", assetID)
}
