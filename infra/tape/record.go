package tape

import "time"

type RecordType uint8

const (
	RecordAccepted RecordType = iota
	RecordTrade
	RecordCanceled
	RecordReplaced
	RecordRejected
)

// Record is one framed entry on the tape: an event type, the stream
// sequence number, a wall-clock timestamp, and an opaque payload.
type Record struct {
	Type RecordType
	Seq  uint64
	Time int64
	Data []byte
}

func NewRecord(t RecordType, seq uint64, data []byte) *Record {
	return &Record{
		Type: t,
		Seq:  seq,
		Time: time.Now().UnixNano(),
		Data: data,
	}
}
