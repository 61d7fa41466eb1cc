package service

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"delta_bot/internal/models"

	"github.com/pkg/errors"
)

const fileTimeLayout = "2006-01-02 15:04:05.000000"

// File appends human readable lines to a text file.
type File struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

// OpenFile opens path for appending and writes a session header.
func OpenFile(path string, now time.Time) (*File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "open trade log %s", path)
	}
	if _, err := fmt.Fprintf(f, "\n--- New Session Started: %s ---\n", now.Format(fileTimeLayout)); err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "write session header")
	}
	return &File{path: path, f: f}, nil
}

func (j *File) Record(_ context.Context, rec models.TradeRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	_, err := fmt.Fprintln(j.f, FormatLine(rec))
	return errors.Wrap(err, "append trade log")
}

func (j *File) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.f.Close()
}

func FormatLine(rec models.TradeRecord) string {
	return fmt.Sprintf("%s | ORDER PLACED | %s | Entry: %v | SL: %v | TP: %v | Lot: %v | Order: %s",
		rec.Time.Format(fileTimeLayout),
		rec.Side.Upper(),
		rec.Entry,
		rec.StopLoss,
		rec.TakeProfit,
		rec.Size,
		rec.OrderID,
	)
}
