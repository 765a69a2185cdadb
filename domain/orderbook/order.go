package orderbook

import (
	"fmt"
	"strings"
)

// Side of an order.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// Opposite returns the other side of the book.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// ParseSide maps an external spelling onto a Side.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("orderbook: unknown side %q", s)
	}
}

// Kind controls how long an order may rest in the book.
type Kind int

const (
	// GoodTillCancel rests until fully filled or explicitly canceled.
	GoodTillCancel Kind = iota

	// FillAndKill must match immediately against resting liquidity; any
	// unmatched remainder is discarded instead of resting.
	FillAndKill
)

func (k Kind) String() string {
	switch k {
	case GoodTillCancel:
		return "good-till-cancel"
	case FillAndKill:
		return "fill-and-kill"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps an external spelling onto a Kind. The empty string
// defaults to GoodTillCancel.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "", "gtc", "good-till-cancel":
		return GoodTillCancel, nil
	case "fak", "fill-and-kill":
		return FillAndKill, nil
	default:
		return 0, fmt.Errorf("orderbook: unknown kind %q", s)
	}
}

// Price is an instrument price in whole ticks. It may be negative.
type Price int64

// Quantity is an amount of the instrument. It is never negative.
type Quantity uint64

// OrderID uniquely identifies an order within one book.
type OrderID uint64

// Order is one participant's trading intent and its fill progress. The
// book owns every order submitted to it; nothing outside the book may
// keep a reference past the order's removal.
//
// The intrusive queue links below double as the order's removal handle:
// an order knows its level and its neighbors, so cancellation unlinks
// in O(1) without walking a queue and without iterators to invalidate.
type Order struct {
	id        OrderID
	kind      Kind
	side      Side
	price     Price
	initial   Quantity
	remaining Quantity

	// Maintained by the book while the order rests, zeroed when it
	// leaves.
	prev  *Order
	next  *Order
	level *level
}

// NewOrder builds a submittable order. Quantity is both the initial and
// the remaining amount.
func NewOrder(kind Kind, id OrderID, side Side, price Price, quantity Quantity) *Order {
	return &Order{
		id:        id,
		kind:      kind,
		side:      side,
		price:     price,
		initial:   quantity,
		remaining: quantity,
	}
}

func (o *Order) ID() OrderID  { return o.id }
func (o *Order) Kind() Kind   { return o.kind }
func (o *Order) Side() Side   { return o.side }
func (o *Order) Price() Price { return o.price }

// InitialQuantity is the quantity the order was submitted with.
func (o *Order) InitialQuantity() Quantity { return o.initial }

// RemainingQuantity is the quantity still available to trade.
func (o *Order) RemainingQuantity() Quantity { return o.remaining }

// FilledQuantity is the quantity traded so far.
func (o *Order) FilledQuantity() Quantity { return o.initial - o.remaining }

// IsFilled reports whether nothing of the order remains to trade.
func (o *Order) IsFilled() bool { return o.remaining == 0 }

// Fill consumes quantity from the order's remaining balance. Requesting
// more than remains is a matching-logic defect, not an input error, so
// it panics instead of clamping silently.
func (o *Order) Fill(quantity Quantity) {
	if quantity > o.remaining {
		panic(fmt.Sprintf("orderbook: order %d overfilled: fill %d exceeds remaining %d",
			o.id, quantity, o.remaining))
	}
	o.remaining -= quantity
}
