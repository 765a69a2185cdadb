// Package service orchestrates the engine: it serializes access to
// the single-threaded book, turns the book's silent drops into typed
// errors, and emits one sequenced event per state change to the tape,
// the outbox, and the trade archive.
//
// It is the seam every transport (gRPC, HTTP, Kafka) calls into,
// decoupled from all of them.
package service
