package grpcserver

import (
	"context"

	"go.uber.org/zap"

	"kestrel/api/wire"
	"kestrel/domain/orderbook"
	"kestrel/service"
)

// Server adapts OrderService to gRPC. Business rejections travel in
// the response body, not as gRPC status errors: the RPC succeeded, the
// command did not.
type Server struct {
	wire.UnimplementedOrderEntryServer
	svc *service.OrderService
	log *zap.SugaredLogger
}

func NewServer(svc *service.OrderService, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{svc: svc, log: log}
}

// -------------------- Commands --------------------

func (s *Server) Submit(ctx context.Context, req *wire.SubmitRequest) (*wire.CommandResponse, error) {
	trades, err := s.svc.Submit(
		toKind(req.Kind),
		orderbook.OrderID(req.OrderID),
		toSide(req.Side),
		orderbook.Price(req.Price),
		orderbook.Quantity(req.Quantity),
	)
	if err != nil {
		return rejected(err), nil
	}

	// A kill order never rests, so whatever the match left is gone.
	var remaining uint64
	if req.Kind != wire.KindFillAndKill {
		remaining = req.Quantity - uint64(trades.FilledFor(orderbook.OrderID(req.OrderID)))
	}

	s.log.Debugw("submit",
		"order_id", req.OrderID,
		"side", req.Side,
		"price", req.Price,
		"qty", req.Quantity,
		"trades", len(trades),
	)
	return &wire.CommandResponse{Accepted: true, Trades: toWireTrades(trades), Remaining: remaining}, nil
}

func (s *Server) Cancel(ctx context.Context, req *wire.CancelRequest) (*wire.CommandResponse, error) {
	if err := s.svc.Cancel(orderbook.OrderID(req.OrderID)); err != nil {
		return rejected(err), nil
	}

	s.log.Debugw("cancel", "order_id", req.OrderID)
	return &wire.CommandResponse{Accepted: true}, nil
}

func (s *Server) Modify(ctx context.Context, req *wire.ModifyRequest) (*wire.CommandResponse, error) {
	trades, err := s.svc.Modify(orderbook.OrderModify{
		ID:       orderbook.OrderID(req.OrderID),
		Side:     toSide(req.Side),
		Price:    orderbook.Price(req.Price),
		Quantity: orderbook.Quantity(req.Quantity),
	})
	if err != nil {
		return rejected(err), nil
	}

	remaining := req.Quantity - uint64(trades.FilledFor(orderbook.OrderID(req.OrderID)))

	s.log.Debugw("modify", "order_id", req.OrderID, "trades", len(trades))
	return &wire.CommandResponse{Accepted: true, Trades: toWireTrades(trades), Remaining: remaining}, nil
}

// -------------------- Converters --------------------

func rejected(err error) *wire.CommandResponse {
	return &wire.CommandResponse{Accepted: false, Reason: err.Error()}
}

func toSide(s wire.Side) orderbook.Side {
	if s == wire.SideSell {
		return orderbook.Sell
	}
	return orderbook.Buy
}

func toKind(k wire.Kind) orderbook.Kind {
	if k == wire.KindFillAndKill {
		return orderbook.FillAndKill
	}
	return orderbook.GoodTillCancel
}

func toWireTrades(ts orderbook.Trades) []wire.Trade {
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
