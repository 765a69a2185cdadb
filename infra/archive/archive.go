package archive

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"kestrel/api/wire"
)

const (
	bufferSize    = 4096
	maxBatch      = 256
	flushInterval = 100 * time.Millisecond
)

const insertTradeSQL = `
INSERT INTO trades (seq, bid_order_id, bid_price, ask_order_id, ask_price, quantity)
VALUES ($1, $2, $3, $4, $5, $6)`

// ErrBufferFull reports that trades are arriving faster than the
// database drains them. The caller logs and moves on; the tape still
// has every event.
var ErrBufferFull = errors.New("archive: buffer full")

type row struct {
	seq   uint64
	trade wire.Trade
}

// Archiver copies matched trades into Postgres. ArchiveTrades only
// enqueues, so the matching path never waits on the database; a
// background loop batches the inserts.
type Archiver struct {
	pool *pgxpool.Pool
	log  *zap.SugaredLogger
	rows chan row
}

func NewPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	return pgxpool.New(ctx, url)
}

func New(pool *pgxpool.Pool, log *zap.SugaredLogger) *Archiver {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Archiver{
		pool: pool,
		log:  log,
		rows: make(chan row, bufferSize),
	}
}

// ArchiveTrades enqueues one event's trades. It never blocks.
func (a *Archiver) ArchiveTrades(seq uint64, trades []wire.Trade) error {
	for _, t := range trades {
		select {
		case a.rows <- row{seq: seq, trade: t}:
		default:
			return ErrBufferFull
		}
	}
	return nil
}

// Start drains the buffer until ctx is done.
func (a *Archiver) Start(ctx context.Context) {
	a.log.Infow("trade archiver started")

	go func() {
		for {
			batch := a.collect(ctx, maxBatch, flushInterval)
			if len(batch) > 0 {
				if err := a.insert(ctx, batch); err != nil {
					a.log.Errorw("trade archive batch failed", "rows", len(batch), "error", err)
				}
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()
}

// collect blocks for the first row, then keeps reading until the
// batch is full or wait elapses.
func (a *Archiver) collect(ctx context.Context, max int, wait time.Duration) []row {
	var batch []row

	select {
	case r := <-a.rows:
		batch = append(batch, r)
	case <-ctx.Done():
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	for len(batch) < max {
		select {
		case r := <-a.rows:
			batch = append(batch, r)
		case <-timer.C:
			return batch
		case <-ctx.Done():
			return batch
		}
	}
	return batch
}

func (a *Archiver) insert(ctx context.Context, batch []row) error {
	b := &pgx.Batch{}
	for _, r := range batch {
		b.Queue(insertTradeSQL,
			int64(r.seq),
			int64(r.trade.BidOrderID),
			r.trade.BidPrice,
			int64(r.trade.AskOrderID),
			r.trade.AskPrice,
			int64(r.trade.Quantity),
		)
	}

	br := a.pool.SendBatch(ctx, b)
	defer br.Close()
	for range batch {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
