package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"kestrel/domain/instrument"
	"kestrel/domain/orderbook"
	"kestrel/service"
)

// Server is the HTTP order-entry surface. Prices and quantities cross
// it as decimals and are converted to book ticks and lots per the
// instrument's conventions.
type Server struct {
	svc *service.OrderService
	ins *instrument.Instrument
	log *zap.SugaredLogger
}

func NewServer(svc *service.OrderService, ins *instrument.Instrument, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{svc: svc, ins: ins, log: log}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(3 * time.Second))

	r.Get("/healthz", s.health)
	r.Post("/orders", s.placeOrder)
	r.Delete("/orders/{id}", s.cancelOrder)
	r.Patch("/orders/{id}", s.modifyOrder)

	return r
}

type orderRequest struct {
	OrderID  uint64          `json:"order_id"`
	Side     string          `json:"side"`
	Kind     string          `json:"kind"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
}

type tradeResponse struct {
	BidOrderID uint64          `json:"bid_order_id"`
	BidPrice   decimal.Decimal `json:"bid_price"`
	AskOrderID uint64          `json:"ask_order_id"`
	AskPrice   decimal.Decimal `json:"ask_price"`
	Quantity   decimal.Decimal `json:"quantity"`
}

type orderResponse struct {
	OrderID   uint64          `json:"order_id"`
	Accepted  bool            `json:"accepted"`
	Remaining decimal.Decimal `json:"remaining"`
	Trades    []tradeResponse `json:"trades,omitempty"`
	RequestID string          `json:"request_id"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeProblem(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	side, err := orderbook.ParseSide(req.Side)
	if err != nil {
		s.writeProblem(w, r, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	kind, err := orderbook.ParseKind(req.Kind)
	if err != nil {
		s.writeProblem(w, r, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	price, err := s.ins.PriceToTicks(req.Price)
	if err != nil {
		s.writeProblem(w, r, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	qty, err := s.ins.QuantityToLots(req.Quantity)
	if err != nil {
		s.writeProblem(w, r, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	trades, err := s.svc.Submit(kind, orderbook.OrderID(req.OrderID), side, price, qty)
	switch {
	case errors.Is(err, service.ErrDuplicateOrder):
		s.writeProblem(w, r, http.StatusConflict, "duplicate_order", err.Error())
		return
	case errors.Is(err, service.ErrNoMatchPossible):
		s.writeProblem(w, r, http.StatusUnprocessableEntity, "no_match_possible", err.Error())
		return
	case err != nil:
		s.writeProblem(w, r, http.StatusInternalServerError, "engine_error", err.Error())
		return
	}

	remaining := qty - trades.FilledFor(orderbook.OrderID(req.OrderID))
	if kind == orderbook.FillAndKill {
		remaining = 0
	}

	rid := middleware.GetReqID(r.Context())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Location", "/orders/"+strconv.FormatUint(req.OrderID, 10))
	w.Header().Set("X-Request-ID", rid)
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(orderResponse{
		OrderID:   req.OrderID,
		Accepted:  true,
		Remaining: s.ins.LotsToQuantity(remaining),
		Trades:    s.toTradeResponses(trades),
		RequestID: rid,
	})
}

func (s *Server) cancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeProblem(w, r, http.StatusBadRequest, "validation_error", "order id must be numeric")
		return
	}

	if err := s.svc.Cancel(orderbook.OrderID(id)); err != nil {
		s.writeProblem(w, r, http.StatusNotFound, "not_found", err.Error())
		return
	}

	w.Header().Set("X-Request-ID", middleware.GetReqID(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) modifyOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeProblem(w, r, http.StatusBadRequest, "validation_error", "order id must be numeric")
		return
	}

	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeProblem(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	side, err := orderbook.ParseSide(req.Side)
	if err != nil {
		s.writeProblem(w, r, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	price, err := s.ins.PriceToTicks(req.Price)
	if err != nil {
		s.writeProblem(w, r, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	qty, err := s.ins.QuantityToLots(req.Quantity)
	if err != nil {
		s.writeProblem(w, r, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	trades, err := s.svc.Modify(orderbook.OrderModify{
		ID:       orderbook.OrderID(id),
		Side:     side,
		Price:    price,
		Quantity: qty,
	})
	if err != nil {
		s.writeProblem(w, r, http.StatusNotFound, "not_found", err.Error())
		return
	}

	rid := middleware.GetReqID(r.Context())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", rid)
	_ = json.NewEncoder(w).Encode(orderResponse{
		OrderID:   id,
		Accepted:  true,
		Remaining: s.ins.LotsToQuantity(qty - trades.FilledFor(orderbook.OrderID(id))),
		Trades:    s.toTradeResponses(trades),
		RequestID: rid,
	})
}

func (s *Server) toTradeResponses(ts orderbook.Trades) []tradeResponse {
	if len(ts) == 0 {
		return nil
	}
	out := make([]tradeResponse, len(ts))
	for i, t := range ts {
		out[i] = tradeResponse{
			BidOrderID: uint64(t.Bid.OrderID),
			BidPrice:   s.ins.TicksToPrice(t.Bid.Price),
			AskOrderID: uint64(t.Ask.OrderID),
			AskPrice:   s.ins.TicksToPrice(t.Ask.Price),
			Quantity:   s.ins.LotsToQuantity(t.Quantity()),
		}
	}
	return out
}

func (s *Server) writeProblem(w http.ResponseWriter, r *http.Request, code int, title, detail string) {
	reqID := middleware.GetReqID(r.Context())
	w.Header().Set("Content-Type", "application/problem+json")
	w.Header().Set("X-Request-ID", reqID)
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"title":      title,
		"status":     code,
		"detail":     detail,
		"instance":   r.URL.Path,
		"request_id": reqID,
	})
}
