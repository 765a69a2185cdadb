package instrument

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"kestrel/domain/orderbook"
)

var (
	// ErrOffTick reports a price that is not a whole multiple of the
	// instrument's tick size.
	ErrOffTick = errors.New("instrument: price off tick")

	// ErrOffLot reports a quantity that is not a whole multiple of the
	// instrument's lot size.
	ErrOffLot = errors.New("instrument: quantity off lot")

	// ErrOutOfRange reports a value the book's integer types cannot
	// hold, including zero and negative quantities.
	ErrOutOfRange = errors.New("instrument: value out of range")
)

// Instrument describes the one listed product: its symbol and the
// market conventions that map external decimal prices and quantities
// onto the book's integer ticks and lots.
type Instrument struct {
	Symbol string

	tick decimal.Decimal
	lot  decimal.Decimal
}

func New(symbol string, tick, lot decimal.Decimal) (*Instrument, error) {
	if tick.Sign() <= 0 {
		return nil, fmt.Errorf("instrument %s: tick %s must be positive", symbol, tick)
	}
	if lot.Sign() <= 0 {
		return nil, fmt.Errorf("instrument %s: lot %s must be positive", symbol, lot)
	}
	return &Instrument{Symbol: symbol, tick: tick, lot: lot}, nil
}

func (i *Instrument) Tick() decimal.Decimal { return i.tick }
func (i *Instrument) Lot() decimal.Decimal  { return i.lot }

// PriceToTicks converts a decimal price to ticks. The price must be an
// exact multiple of the tick size; conversion never rounds.
func (i *Instrument) PriceToTicks(p decimal.Decimal) (orderbook.Price, error) {
	q, r := p.QuoRem(i.tick, 0)
	if !r.IsZero() {
		return 0, fmt.Errorf("%w: %s with tick %s", ErrOffTick, p, i.tick)
	}
	bi := q.BigInt()
	if !bi.IsInt64() {
		return 0, fmt.Errorf("%w: %s ticks", ErrOutOfRange, q)
	}
	return orderbook.Price(bi.Int64()), nil
}

// TicksToPrice converts book ticks back to a decimal price.
func (i *Instrument) TicksToPrice(t orderbook.Price) decimal.Decimal {
	return decimal.NewFromInt(int64(t)).Mul(i.tick)
}

// QuantityToLots converts a decimal quantity to lots. The quantity
// must be positive and an exact multiple of the lot size.
func (i *Instrument) QuantityToLots(q decimal.Decimal) (orderbook.Quantity, error) {
	if q.Sign() <= 0 {
		return 0, fmt.Errorf("%w: quantity %s", ErrOutOfRange, q)
	}
	n, r := q.QuoRem(i.lot, 0)
	if !r.IsZero() {
		return 0, fmt.Errorf("%w: %s with lot %s", ErrOffLot, q, i.lot)
	}
	bi := n.BigInt()
	if !bi.IsUint64() {
		return 0, fmt.Errorf("%w: %s lots", ErrOutOfRange, n)
	}
	return orderbook.Quantity(bi.Uint64()), nil
}

// LotsToQuantity converts book lots back to a decimal quantity.
func (i *Instrument) LotsToQuantity(q orderbook.Quantity) decimal.Decimal {
	return decimal.NewFromUint64(uint64(q)).Mul(i.lot)
}
