package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"kestrel/domain/instrument"
	"kestrel/domain/orderbook"
	"kestrel/infra/kafka"
	"kestrel/service"
)

// Source is where commands come from. *kafka.Consumer satisfies it;
// tests feed messages in directly.
type Source interface {
	Fetch(ctx context.Context) (kafka.Message, error)
	Commit(ctx context.Context, m kafka.Message) error
}

// DeadLetter receives messages the gateway could not decode. May be
// nil, in which case poison messages are logged and dropped.
type DeadLetter interface {
	Send(ctx context.Context, key, value []byte) error
}

// command is the external JSON shape. Prices and quantities arrive as
// decimals and are converted to book ticks and lots on the way in.
type command struct {
	Type     string          `json:"type"`
	OrderID  uint64          `json:"order_id"`
	Side     string          `json:"side"`
	Kind     string          `json:"kind"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
}

// Gateway drives the engine from a Kafka command topic. Offsets are
// committed only after the command has been applied, so a crash
// redelivers instead of losing commands; redelivered submits come back
// as duplicate-id rejections and are dropped.
type Gateway struct {
	src Source
	svc *service.OrderService
	ins *instrument.Instrument
	dlq DeadLetter
	log *zap.SugaredLogger
}

func New(src Source, svc *service.OrderService, ins *instrument.Instrument, dlq DeadLetter, log *zap.SugaredLogger) *Gateway {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Gateway{src: src, svc: svc, ins: ins, dlq: dlq, log: log}
}

// Start consumes until ctx is done.
func (g *Gateway) Start(ctx context.Context) {
	g.log.Infow("gateway started")

	go func() {
		for {
			msg, err := g.src.Fetch(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, context.Canceled) {
					return
				}
				g.log.Errorw("fetch failed", "error", err)
				time.Sleep(time.Second)
				continue
			}

			g.process(ctx, msg)

			if err := g.src.Commit(ctx, msg); err != nil {
				g.log.Errorw("commit failed", "offset", msg.Offset, "error", err)
			}
		}
	}()
}

// process applies one message. Every outcome ends with the offset
// committed by the caller: malformed messages go to the dead letter
// topic, business rejections are logged, and neither is retried.
func (g *Gateway) process(ctx context.Context, msg kafka.Message) {
	var cmd command
	if err := json.Unmarshal(msg.Value, &cmd); err != nil {
		g.reject(ctx, msg, err)
		return
	}

	var err error
	switch cmd.Type {
	case "submit":
		err = g.submit(cmd)
	case "cancel":
		err = g.svc.Cancel(orderbook.OrderID(cmd.OrderID))
	case "modify":
		err = g.modify(cmd)
	default:
		g.reject(ctx, msg, errors.New("unknown command type "+cmd.Type))
		return
	}

	switch {
	case err == nil:
	case errors.Is(err, service.ErrDuplicateOrder),
		errors.Is(err, service.ErrUnknownOrder),
		errors.Is(err, service.ErrNoMatchPossible):
		// legitimate rejections, already journaled where relevant
		g.log.Debugw("command rejected", "type", cmd.Type, "order_id", cmd.OrderID, "reason", err)
	default:
		g.reject(ctx, msg, err)
	}
}

func (g *Gateway) submit(cmd command) error {
	side, err := orderbook.ParseSide(cmd.Side)
	if err != nil {
		return err
	}
	kind, err := orderbook.ParseKind(cmd.Kind)
	if err != nil {
		return err
	}
	price, err := g.ins.PriceToTicks(cmd.Price)
	if err != nil {
		return err
	}
	qty, err := g.ins.QuantityToLots(cmd.Quantity)
	if err != nil {
		return err
	}
	_, err = g.svc.Submit(kind, orderbook.OrderID(cmd.OrderID), side, price, qty)
	return err
}

func (g *Gateway) modify(cmd command) error {
	side, err := orderbook.ParseSide(cmd.Side)
	if err != nil {
		return err
	}
	price, err := g.ins.PriceToTicks(cmd.Price)
	if err != nil {
		return err
	}
	qty, err := g.ins.QuantityToLots(cmd.Quantity)
	if err != nil {
		return err
	}
	_, err = g.svc.Modify(orderbook.OrderModify{
		ID:       orderbook.OrderID(cmd.OrderID),
		Side:     side,
		Price:    price,
		Quantity: qty,
	})
	return err
}

// reject routes a poison message to the dead letter topic.
func (g *Gateway) reject(ctx context.Context, msg kafka.Message, cause error) {
	g.log.Warnw("command dead lettered",
		"topic", msg.Topic,
		"partition", msg.Partition,
		"offset", msg.Offset,
		"cause", cause,
	)
	if g.dlq == nil {
		return
	}
	if err := g.dlq.Send(ctx, msg.Key, msg.Value); err != nil {
		g.log.Errorw("dead letter send failed", "offset", msg.Offset, "error", err)
	}
}
