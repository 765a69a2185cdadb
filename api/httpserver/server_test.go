package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kestrel/domain/instrument"
	"kestrel/domain/orderbook"
	"kestrel/infra/sequence"
	"kestrel/service"
)

func newTestRouter(t *testing.T) (http.Handler, *service.OrderService) {
	t.Helper()

	ins, err := instrument.New("KES-USD",
		decimal.RequireFromString("0.25"),
		decimal.RequireFromString("0.001"),
	)
	require.NoError(t, err)

	svc := service.NewOrderService(
		orderbook.NewOrderBook(),
		sequence.New(0),
		zap.NewNop().Sugar(),
		service.Options{},
	)
	return NewServer(svc, ins, zap.NewNop().Sugar()).Router(), svc
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decodeOrder(t *testing.T, w *httptest.ResponseRecorder) orderResponse {
	t.Helper()
	var resp orderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestPlaceOrder(t *testing.T) {
	h, svc := newTestRouter(t)

	w := do(t, h, http.MethodPost, "/orders",
		`{"order_id":1,"side":"buy","price":"101.25","quantity":"2.5"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "/orders/1", w.Header().Get("Location"))
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))

	resp := decodeOrder(t, w)
	require.True(t, resp.Accepted)
	require.True(t, resp.Remaining.Equal(decimal.RequireFromString("2.5")),
		"remaining = %s", resp.Remaining)
	require.Empty(t, resp.Trades)

	require.Equal(t, 1, svc.Size())
}

func TestPlaceOrderMatches(t *testing.T) {
	h, svc := newTestRouter(t)

	w := do(t, h, http.MethodPost, "/orders",
		`{"order_id":1,"side":"sell","price":"101.25","quantity":"2.5"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, h, http.MethodPost, "/orders",
		`{"order_id":2,"side":"buy","price":"101.25","quantity":"2.5"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeOrder(t, w)
	require.True(t, resp.Remaining.IsZero(), "remaining = %s", resp.Remaining)
	require.Len(t, resp.Trades, 1)

	tr := resp.Trades[0]
	require.Equal(t, uint64(2), tr.BidOrderID)
	require.Equal(t, uint64(1), tr.AskOrderID)
	require.True(t, tr.BidPrice.Equal(decimal.RequireFromString("101.25")))
	require.True(t, tr.Quantity.Equal(decimal.RequireFromString("2.5")))

	require.Equal(t, 0, svc.Size())
}

func TestPlaceOrderRejections(t *testing.T) {
	h, _ := newTestRouter(t)

	w := do(t, h, http.MethodPost, "/orders",
		`{"order_id":1,"side":"buy","price":"101.25","quantity":"1.0"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// duplicate id
	w = do(t, h, http.MethodPost, "/orders",
		`{"order_id":1,"side":"buy","price":"101.25","quantity":"1.0"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	// unmatchable fill-and-kill
	w = do(t, h, http.MethodPost, "/orders",
		`{"order_id":2,"side":"sell","kind":"fak","price":"200.00","quantity":"1.0"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// off-tick price
	w = do(t, h, http.MethodPost, "/orders",
		`{"order_id":3,"side":"buy","price":"101.30","quantity":"1.0"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// unknown side
	w = do(t, h, http.MethodPost, "/orders",
		`{"order_id":4,"side":"hold","price":"101.25","quantity":"1.0"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// malformed body
	w = do(t, h, http.MethodPost, "/orders", `{broken`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelOrder(t *testing.T) {
	h, svc := newTestRouter(t)

	do(t, h, http.MethodPost, "/orders",
		`{"order_id":1,"side":"buy","price":"101.25","quantity":"1.0"}`)

	w := do(t, h, http.MethodDelete, "/orders/1", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, 0, svc.Size())

	w = do(t, h, http.MethodDelete, "/orders/1", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodDelete, "/orders/abc", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestModifyOrder(t *testing.T) {
	h, svc := newTestRouter(t)

	do(t, h, http.MethodPost, "/orders",
		`{"order_id":1,"side":"sell","price":"101.25","quantity":"2.0"}`)

	w := do(t, h, http.MethodPatch, "/orders/1",
		`{"side":"sell","price":"102.00","quantity":"1.5"}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeOrder(t, w)
	require.True(t, resp.Remaining.Equal(decimal.RequireFromString("1.5")),
		"remaining = %s", resp.Remaining)

	depth := svc.Depth()
	require.Len(t, depth.Asks, 1)
	require.Equal(t, orderbook.LevelInfo{Price: 408, Quantity: 1500}, depth.Asks[0])

	w = do(t, h, http.MethodPatch, "/orders/99",
		`{"side":"sell","price":"102.00","quantity":"1.5"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthz(t *testing.T) {
	h, _ := newTestRouter(t)

	w := do(t, h, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
