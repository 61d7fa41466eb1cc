package service

import (
	"context"

	"delta_bot/internal/models"
	"delta_bot/pkg/db"

	"github.com/pkg/errors"
)

const createTradeLog = `
CREATE TABLE IF NOT EXISTS trade_log (
	id              BIGSERIAL PRIMARY KEY,
	placed_at       TIMESTAMPTZ      NOT NULL,
	order_id        TEXT             NOT NULL,
	product_id      INTEGER          NOT NULL,
	side            TEXT             NOT NULL,
	entry_price     DOUBLE PRECISION NOT NULL,
	stop_loss       DOUBLE PRECISION NOT NULL,
	take_profit     DOUBLE PRECISION NOT NULL,
	size            DOUBLE PRECISION NOT NULL
)`

const insertTradeLog = `
INSERT INTO trade_log (placed_at, order_id, product_id, side, entry_price, stop_loss, take_profit, size)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// Pg stores the same records in postgres.
type Pg struct {
	tx db.TxManager
}

func NewPg(tx db.TxManager) *Pg {
	return &Pg{tx: tx}
}

func (p *Pg) EnsureSchema(ctx context.Context) error {
	_, err := p.tx.Conn().Exec(ctx, createTradeLog)
	return errors.Wrap(err, "create trade_log")
}

func (p *Pg) Record(ctx context.Context, rec models.TradeRecord) error {
	return p.tx.RunMaster(ctx, func(ctxTx context.Context, tx db.Transaction) error {
		_, err := tx.Exec(ctxTx, insertTradeLog,
			rec.Time,
			rec.OrderID,
			rec.ProductID,
			string(rec.Side),
			rec.Entry,
			rec.StopLoss,
			rec.TakeProfit,
			rec.Size,
		)
		return errors.Wrap(err, "insert trade_log")
	})
}
