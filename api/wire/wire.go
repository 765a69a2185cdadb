package wire

import "google.golang.org/protobuf/encoding/protowire"

// Message is implemented by every wire type in this package.
type Message interface {
	Marshal() []byte
	Unmarshal(data []byte) error
}

// Side mirrors kestrel.v1.Side.
type Side int32

const (
	SideBuy  Side = 0
	SideSell Side = 1
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "BUY"
	case SideSell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// Kind mirrors kestrel.v1.Kind.
type Kind int32

const (
	KindGoodTillCancel Kind = 0
	KindFillAndKill    Kind = 1
)

func (k Kind) String() string {
	switch k {
	case KindGoodTillCancel:
		return "GOOD_TILL_CANCEL"
	case KindFillAndKill:
		return "FILL_AND_KILL"
	default:
		return "UNKNOWN"
	}
}

// EventKind mirrors kestrel.v1.EventKind.
type EventKind int32

const (
	EventAccepted EventKind = 0
	EventTrade    EventKind = 1
	EventCanceled EventKind = 2
	EventReplaced EventKind = 3
	EventRejected EventKind = 4
)

func (k EventKind) String() string {
	switch k {
	case EventAccepted:
		return "ACCEPTED"
	case EventTrade:
		return "TRADE"
	case EventCanceled:
		return "CANCELED"
	case EventReplaced:
		return "REPLACED"
	case EventRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// Zero-valued fields are omitted on the wire and absent fields decode
// to zero, per proto3.

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendSintField(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeZigZag(v))
}

func appendBoolField(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, 1)
}

func appendStringField(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendMessageField(b []byte, num protowire.Number, m Message) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.Marshal())
}
