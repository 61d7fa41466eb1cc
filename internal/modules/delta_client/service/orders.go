package service

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"delta_bot/internal/models"

	"github.com/pkg/errors"
)

func (c *Client) LiveOrders(ctx context.Context, productID int) ([]models.PendingOrder, error) {
	query := url.Values{"product_id": {strconv.Itoa(productID)}}

	var res []orderResult
	if err := c.do(ctx, "LiveOrders", http.MethodGet, ordersPath+"/live", query, nil, &res); err != nil {
		return nil, err
	}

	out := make([]models.PendingOrder, 0, len(res))
	for _, o := range res {
		out = append(out, models.PendingOrder{
			ID:         string(o.ID),
			ProductID:  o.ProductID,
			Side:       models.Side(o.Side),
			Size:       float64(o.Size),
			LimitPrice: float64(o.LimitPrice),
			State:      o.State,
		})
	}
	return out, nil
}

func (c *Client) CancelOrder(ctx context.Context, productID int, orderID string) error {
	if orderID == "" {
		return errors.New("CancelOrder: empty order id")
	}
	query := url.Values{"product_id": {strconv.Itoa(productID)}}
	path := ordersPath + "/" + url.PathEscape(orderID)
	return c.do(ctx, "CancelOrder", http.MethodDelete, path, query, nil, nil)
}
