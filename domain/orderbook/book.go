package orderbook

// LevelInfo aggregates one occupied price level: the price and the sum
// of remaining quantity resting at it.
type LevelInfo struct {
	Price    Price
	Quantity Quantity
}

// LevelInfos is a depth snapshot, bids best-first (descending price)
// and asks best-first (ascending price). It shares nothing with book
// internals.
type LevelInfos struct {
	Bids []LevelInfo
	Asks []LevelInfo
}

// OrderBook is the matching core for a single instrument: both sides'
// price levels plus an order-id index, driven by a price-time matching
// loop.
//
// The book is strictly single-threaded and does no locking of its own.
// Every call runs to completion before returning; a concurrent host
// must serialize all calls behind one mutual-exclusion boundary.
type OrderBook struct {
	bids *bookSide
	asks *bookSide

	// orders indexes every resting order by id. An id is present here
	// iff the order is linked into a level; both views change together
	// within the same call.
	orders map[OrderID]*Order
}

func NewOrderBook() *OrderBook {
	return &OrderBook{
		bids:   newBookSide(Buy),
		asks:   newBookSide(Sell),
		orders: make(map[OrderID]*Order),
	}
}

// Size returns the number of currently resting orders.
func (b *OrderBook) Size() int { return len(b.orders) }

// Contains reports whether an order with the given id is resting.
// Accepted-and-fully-filled and rejected submissions both come back
// with no order in the book, so callers that must tell acceptance from
// rejection check membership before submitting.
func (b *OrderBook) Contains(id OrderID) bool {
	_, ok := b.orders[id]
	return ok
}

// AddOrder submits an order and returns the trades it produced.
//
// A duplicate id is ignored and returns no trades. A FillAndKill order
// that cannot trade against the current opposite best is rejected
// outright and never inserted. Every other order joins the tail of its
// price level and the matching loop runs.
func (b *OrderBook) AddOrder(o *Order) Trades {
	if _, ok := b.orders[o.id]; ok {
		return nil
	}
	if o.kind == FillAndKill && !b.canMatch(o.side, o.price) {
		return nil
	}

	b.sideOf(o.side).getOrCreate(o.price).enqueue(o)
	b.orders[o.id] = o

	return b.matchOrders()
}

// CancelOrder removes a resting order. Unknown ids are a no-op: the
// order may have filled or been canceled before the request arrived.
func (b *OrderBook) CancelOrder(id OrderID) {
	o, ok := b.orders[id]
	if !ok {
		return
	}
	b.removeResting(o)
}

// ModifyOrder cancels the identified order and resubmits it with the
// request's side, price, and quantity, keeping the original kind. The
// replacement goes through AddOrder, so it may trade immediately and
// it always loses its predecessor's queue position, even at an
// unchanged price. Unknown ids are a no-op.
func (b *OrderBook) ModifyOrder(m OrderModify) Trades {
	existing, ok := b.orders[m.ID]
	if !ok {
		return nil
	}
	kind := existing.kind
	b.removeResting(existing)
	return b.AddOrder(m.ToOrder(kind))
}

// LevelInfos reports the book's aggregate depth. Per-level quantity is
// the sum of the level's remaining order quantities; emptied levels are
// never reported because they are removed the moment they empty.
func (b *OrderBook) LevelInfos() LevelInfos {
	infos := LevelInfos{
		Bids: make([]LevelInfo, 0, b.bids.depth()),
		Asks: make([]LevelInfo, 0, b.asks.depth()),
	}
	b.bids.walk(func(l *level) bool {
		infos.Bids = append(infos.Bids, LevelInfo{Price: l.price, Quantity: l.totalQty})
		return true
	})
	b.asks.walk(func(l *level) bool {
		infos.Asks = append(infos.Asks, LevelInfo{Price: l.price, Quantity: l.totalQty})
		return true
	})
	return infos
}

func (b *OrderBook) sideOf(s Side) *bookSide {
	if s == Buy {
		return b.bids
	}
	return b.asks
}

// canMatch reports whether an order on side at price could trade
// against the opposite side's best level right now.
func (b *OrderBook) canMatch(side Side, price Price) bool {
	if side == Buy {
		best := b.asks.best()
		return best != nil && price >= best.price
	}
	best := b.bids.best()
	return best != nil && price <= best.price
}

// fill consumes quantity from a resting order and keeps its level's
// aggregate in step.
func (b *OrderBook) fill(o *Order, quantity Quantity) {
	o.Fill(quantity)
	o.level.reduce(quantity)
}

// removeResting unlinks an order from its level, drops it from the id
// index, and retires the level if it just emptied. Both indices change
// within this one call.
func (b *OrderBook) removeResting(o *Order) {
	lvl := o.level
	side := b.sideOf(o.side)
	lvl.unlink(o)
	delete(b.orders, o.id)
	if lvl.empty() {
		side.remove(lvl.price)
	}
}

// matchOrders runs the matching loop until the book is no longer
// crossed, then sweeps at most one FillAndKill order per side off the
// top of the book. Price priority is structural (best level per side),
// as is time priority (levels are FIFO), so the loop only ever pairs
// best against best and front against front. Each trade's legs price
// at their own order's limit, which is why a crossed pair can trade at
// two prices.
func (b *OrderBook) matchOrders() Trades {
	var trades Trades

	for {
		bidLvl := b.bids.best()
		askLvl := b.asks.best()
		if bidLvl == nil || askLvl == nil {
			break
		}
		if bidLvl.price < askLvl.price {
			break
		}

		// Drain the crossing pair front against front. Either level
		// emptying invalidates it as best, so fall back out for a
		// fresh pair.
		for !bidLvl.empty() && !askLvl.empty() {
			bid := bidLvl.front()
			ask := askLvl.front()

			quantity := min(bid.remaining, ask.remaining)
			b.fill(bid, quantity)
			b.fill(ask, quantity)

			trades = append(trades, Trade{
				Bid: TradeLeg{OrderID: bid.id, Price: bid.price, Quantity: quantity},
				Ask: TradeLeg{OrderID: ask.id, Price: ask.price, Quantity: quantity},
			})

			if bid.IsFilled() {
				b.removeResting(bid)
			}
			if ask.IsFilled() {
				b.removeResting(ask)
			}
		}
	}

	// A FillAndKill order stranded at the top of either side can no
	// longer match and must not rest. One check per side, best order
	// only.
	if lvl := b.bids.best(); lvl != nil {
		if o := lvl.front(); o.kind == FillAndKill {
			b.removeResting(o)
		}
	}
	if lvl := b.asks.best(); lvl != nil {
		if o := lvl.front(); o.kind == FillAndKill {
			b.removeResting(o)
		}
	}

	return trades
}
