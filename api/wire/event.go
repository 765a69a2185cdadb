package wire

import "google.golang.org/protobuf/encoding/protowire"

// Event mirrors kestrel.v1.Event, the envelope published for every
// state change the engine performs. Seq orders the stream; EventID is
// a globally unique identifier for downstream dedup.
type Event struct {
	EventID   string
	Seq       uint64
	Kind      EventKind
	Time      int64
	OrderID   uint64
	Side      Side
	Price     int64
	Quantity  uint64
	Remaining uint64
	Trades    []Trade
	Symbol    string
}

func (m *Event) Marshal() []byte {
	var b []byte
	b = appendStringField(b, 1, m.EventID)
	b = appendVarintField(b, 2, m.Seq)
	b = appendVarintField(b, 3, uint64(m.Kind))
	b = appendVarintField(b, 4, uint64(m.Time))
	b = appendVarintField(b, 5, m.OrderID)
	b = appendVarintField(b, 6, uint64(m.Side))
	b = appendSintField(b, 7, m.Price)
	b = appendVarintField(b, 8, m.Quantity)
	b = appendVarintField(b, 9, m.Remaining)
	for i := range m.Trades {
		b = appendMessageField(b, 10, &m.Trades[i])
	}
	b = appendStringField(b, 11, m.Symbol)
	return b
}

func (m *Event) Unmarshal(data []byte) error {
	*m = Event{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.EventID = v
			data = data[n:]
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Seq = v
			data = data[n:]
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Kind = EventKind(v)
			data = data[n:]
		case num == 4 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Time = int64(v)
			data = data[n:]
		case num == 5 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.OrderID = v
			data = data[n:]
		case num == 6 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Side = Side(v)
			data = data[n:]
		case num == 7 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Price = protowire.DecodeZigZag(v)
			data = data[n:]
		case num == 8 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Quantity = v
			data = data[n:]
		case num == 9 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Remaining = v
			data = data[n:]
		case num == 10 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			var tr Trade
			if err := tr.Unmarshal(v); err != nil {
				return err
			}
			m.Trades = append(m.Trades, tr)
			data = data[n:]
		case num == 11 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Symbol = v
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
		}
	}
	return nil
}
