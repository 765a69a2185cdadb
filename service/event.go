package service

import (
	"kestrel/api/wire"
	"kestrel/domain/orderbook"
	"kestrel/infra/tape"
)

// TradeArchiver receives matched trades for long-term storage.
// Archiving is best-effort: a failed archive is logged and never
// blocks or fails the originating command.
type TradeArchiver interface {
	ArchiveTrades(seq uint64, trades []wire.Trade) error
}

func wireSide(s orderbook.Side) wire.Side {
	if s == orderbook.Sell {
		return wire.SideSell
	}
	return wire.SideBuy
}

func wireTrades(ts orderbook.Trades) []wire.Trade {
	if len(ts) == 0 {
		return nil
	}
	out := make([]wire.Trade, len(ts))
	for i, t := range ts {
		out[i] = wire.Trade{
			BidOrderID: uint64(t.Bid.OrderID),
			BidPrice:   int64(t.Bid.Price),
			AskOrderID: uint64(t.Ask.OrderID),
			AskPrice:   int64(t.Ask.Price),
			Quantity:   uint64(t.Quantity()),
		}
	}
	return out
}

func recordType(k wire.EventKind) tape.RecordType {
	switch k {
	case wire.EventTrade:
		return tape.RecordTrade
	case wire.EventCanceled:
		return tape.RecordCanceled
	case wire.EventReplaced:
		return tape.RecordReplaced
	case wire.EventRejected:
		return tape.RecordRejected
	default:
		return tape.RecordAccepted
	}
}

