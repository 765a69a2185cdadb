// Package orderbook implements an in-memory matching engine for one
// instrument's limit orders. It keeps two price-indexed sides with FIFO
// queues per level, matches under price-time priority, and reports the
// trades each call produced.
//
// The book is single-threaded on purpose: calls never block, never
// lock, and run to completion, so a concurrent host serializes access
// itself and the core stays deterministic.
package orderbook
