package orderbook

// TradeLeg records one side's participation in a match: which order
// traded, at that order's own limit price, for the matched quantity.
type TradeLeg struct {
	OrderID  OrderID
	Price    Price
	Quantity Quantity
}

// Trade pairs the bid- and ask-side fills of a single match. The two
// legs always carry the same quantity but may carry different prices
// when levels cross, because each leg reports its own order's price.
// Trades are append-only output; the book never reads them back.
type Trade struct {
	Bid TradeLeg
	Ask TradeLeg
}

// Quantity is the matched amount, identical on both legs.
func (t Trade) Quantity() Quantity { return t.Bid.Quantity }

// Trades is the ordered list of matches produced by one book call.
type Trades []Trade

// TotalQuantity sums the matched amount over all trades.
func (ts Trades) TotalQuantity() Quantity {
	var total Quantity
	for _, t := range ts {
		total += t.Quantity()
	}
	return total
}

// FilledFor sums the quantity traded by one order across both legs.
func (ts Trades) FilledFor(id OrderID) Quantity {
	var total Quantity
	for _, t := range ts {
		if t.Bid.OrderID == id {
			total += t.Bid.Quantity
		}
		if t.Ask.OrderID == id {
			total += t.Ask.Quantity
		}
	}
	return total
}
