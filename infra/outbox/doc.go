// Package outbox persists emitted events and their delivery state in
// an embedded pebble store, decoupling the engine's hot path from the
// message broker. Records move NEW -> SENT -> ACKED and are deleted
// after acknowledgment; FAILED records are retried by the broadcaster.
package outbox
