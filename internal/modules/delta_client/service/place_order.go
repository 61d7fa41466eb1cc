package service

import (
	"context"
	"net/http"
	"strings"

	"delta_bot/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const ordersPath = "/v2/orders"

// PlaceLimitOrder submits the entry order and returns the exchange order id.
func (c *Client) PlaceLimitOrder(
	ctx context.Context,
	productID int,
	size float64,
	side models.Side,
	price float64,
	postOnly bool,
) (string, error) {
	if !side.Valid() {
		return "", errors.Wrapf(models.ErrUnsupportedSide, "PlaceLimitOrder: %q", side)
	}
	if size <= 0 || price <= 0 {
		return "", errors.Errorf("PlaceLimitOrder: size=%v price=%v must be > 0", size, price)
	}

	body := orderRequest{
		ProductID:     productID,
		Size:          size,
		Side:          string(side),
		LimitPrice:    price,
		OrderType:     "limit_order",
		ClientOrderID: newClientOrderID(),
	}
	if postOnly {
		body.PostOnly = "true"
	}

	var res orderResult
	if err := c.do(ctx, "PlaceLimitOrder", http.MethodPost, ordersPath, nil, body, &res); err != nil {
		return "", err
	}
	return string(res.ID), nil
}

// PlaceStopOrder submits a stop-limit order. Side is the side of the stop itself,
// i.e. the opposite of the position it protects.
func (c *Client) PlaceStopOrder(
	ctx context.Context,
	productID int,
	size float64,
	side models.Side,
	stopPrice float64,
	limitPrice float64,
) (string, error) {
	if !side.Valid() {
		return "", errors.Wrapf(models.ErrUnsupportedSide, "PlaceStopOrder: %q", side)
	}
	if size <= 0 || stopPrice <= 0 {
		return "", errors.Errorf("PlaceStopOrder: size=%v stop=%v must be > 0", size, stopPrice)
	}

	body := orderRequest{
		ProductID:     productID,
		Size:          size,
		Side:          string(side),
		LimitPrice:    limitPrice,
		OrderType:     "limit_order",
		StopPrice:     stopPrice,
		StopOrderType: "stop_limit_order",
		ClientOrderID: newClientOrderID(),
	}

	var res orderResult
	if err := c.do(ctx, "PlaceStopOrder", http.MethodPost, ordersPath, nil, body, &res); err != nil {
		return "", err
	}
	return string(res.ID), nil
}

// the exchange caps client order ids at 32 characters
func newClientOrderID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
