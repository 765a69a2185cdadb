package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kestrel/api/wire"
	"kestrel/domain/orderbook"
	"kestrel/infra/outbox"
	"kestrel/infra/sequence"
	"kestrel/infra/tape"
)

// OrderService is the only write entry point into the engine. The book
// itself is single-threaded and lock-free, so every public method here
// takes the one mutex; transports may call from any goroutine and each
// command still runs to completion alone.
//
// Every state change emits one sequenced event to the configured
// sinks before the method returns, so sink order always matches book
// order.
type OrderService struct {
	mu   sync.Mutex
	book *orderbook.OrderBook
	seq  *sequence.Sequencer
	log  *zap.SugaredLogger

	symbol   string
	tape     *tape.Tape
	outbox   *outbox.Outbox
	archiver TradeArchiver
}

// Options carries the instrument symbol stamped on outbound events and
// the optional event sinks. Any sink may be nil; the engine runs fine
// with no sinks at all.
type Options struct {
	Symbol   string
	Tape     *tape.Tape
	Outbox   *outbox.Outbox
	Archiver TradeArchiver
}

func NewOrderService(book *orderbook.OrderBook, seq *sequence.Sequencer, log *zap.SugaredLogger, opts Options) *OrderService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &OrderService{
		book:     book,
		seq:      seq,
		log:      log,
		symbol:   opts.Symbol,
		tape:     opts.Tape,
		outbox:   opts.Outbox,
		archiver: opts.Archiver,
	}
}

// Submit places a new order and returns the trades it produced.
//
// The book drops duplicates and unmatchable fill-and-kill orders
// without a word; the service reconstructs both verdicts: a duplicate
// id is caught by a membership check before the call, and a rejected
// fill-and-kill afterwards, because an accepted one always trades at
// least once.
func (s *OrderService) Submit(kind orderbook.Kind, id orderbook.OrderID, side orderbook.Side, price orderbook.Price, qty orderbook.Quantity) (orderbook.Trades, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.book.Contains(id) {
		s.log.Debugw("submit rejected", "order_id", uint64(id), "reason", "duplicate id")
		return nil, ErrDuplicateOrder
	}

	trades := s.book.AddOrder(orderbook.NewOrder(kind, id, side, price, qty))

	if kind == orderbook.FillAndKill && len(trades) == 0 {
		s.emit(wire.EventRejected, id, side, price, qty, 0, nil)
		return nil, ErrNoMatchPossible
	}

	var remaining orderbook.Quantity
	if s.book.Contains(id) {
		remaining = qty - trades.FilledFor(id)
	}
	s.emit(wire.EventAccepted, id, side, price, qty, remaining, trades)
	return trades, nil
}

// Cancel removes a resting order.
func (s *OrderService) Cancel(id orderbook.OrderID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.book.Contains(id) {
		return ErrUnknownOrder
	}
	s.book.CancelOrder(id)

	s.emit(wire.EventCanceled, id, 0, 0, 0, 0, nil)
	return nil
}

// Modify cancels the identified order and resubmits it with the given
// side, price, and quantity, keeping its kind. The replacement loses
// its queue position and may trade immediately; the returned trades
// are whatever the reinsertion produced.
func (s *OrderService) Modify(m orderbook.OrderModify) (orderbook.Trades, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.book.Contains(m.ID) {
		return nil, ErrUnknownOrder
	}
	trades := s.book.ModifyOrder(m)

	var remaining orderbook.Quantity
	if s.book.Contains(m.ID) {
		remaining = m.Quantity - trades.FilledFor(m.ID)
	}
	s.emit(wire.EventReplaced, m.ID, m.Side, m.Price, m.Quantity, remaining, trades)
	return trades, nil
}

// Size reports the number of resting orders.
func (s *OrderService) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Size()
}

// Depth reports the aggregate level view of both sides.
func (s *OrderService) Depth() orderbook.LevelInfos {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.LevelInfos()
}

// emit sequences one event and fans it out. Sink failures are logged
// and swallowed: the book already changed, and delivery has its own
// retry path through the outbox.
func (s *OrderService) emit(kind wire.EventKind, id orderbook.OrderID, side orderbook.Side, price orderbook.Price, qty, remaining orderbook.Quantity, trades orderbook.Trades) {
	seq := s.seq.Next()
	ev := wire.Event{
		EventID:   uuid.NewString(),
		Seq:       seq,
		Kind:      kind,
		Time:      time.Now().UnixNano(),
		OrderID:   uint64(id),
		Side:      wireSide(side),
		Price:     int64(price),
		Quantity:  uint64(qty),
		Remaining: uint64(remaining),
		Trades:    wireTrades(trades),
		Symbol:    s.symbol,
	}
	payload := ev.Marshal()

	if s.tape != nil {
		if err := s.tape.Append(tape.NewRecord(recordType(kind), seq, payload)); err != nil {
			s.log.Errorw("tape append failed", "seq", seq, "error", err)
		}
	}
	if s.outbox != nil {
		if err := s.outbox.PutNew(seq, payload); err != nil {
			s.log.Errorw("outbox write failed", "seq", seq, "error", err)
		}
	}
	if s.archiver != nil && len(ev.Trades) > 0 {
		if err := s.archiver.ArchiveTrades(seq, ev.Trades); err != nil {
			s.log.Errorw("trade archive failed", "seq", seq, "error", err)
		}
	}

	s.log.Debugw("event emitted",
		"seq", seq,
		"kind", kind,
		"order_id", uint64(id),
		"trades", len(ev.Trades),
	)
}
