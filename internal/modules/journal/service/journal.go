package service

import (
	"context"

	"delta_bot/internal/models"

	"go.uber.org/multierr"
)

// Journal is the append-only audit trail of placed entry orders.
type Journal interface {
	Record(ctx context.Context, rec models.TradeRecord) error
}

// Multi fans a record out to every journal and joins their errors.
type Multi []Journal

func (m Multi) Record(ctx context.Context, rec models.TradeRecord) error {
	var err error
	for _, j := range m {
		err = multierr.Append(err, j.Record(ctx, rec))
	}
	return err
}
