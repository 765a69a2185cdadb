package wire

import "google.golang.org/protobuf/encoding/protowire"

// SubmitRequest mirrors kestrel.v1.SubmitRequest.
type SubmitRequest struct {
	OrderID  uint64
	Side     Side
	Kind     Kind
	Price    int64
	Quantity uint64
}

func (m *SubmitRequest) Marshal() []byte {
	var b []byte
	b = appendVarintField(b, 1, m.OrderID)
	b = appendVarintField(b, 2, uint64(m.Side))
	b = appendVarintField(b, 3, uint64(m.Kind))
	b = appendSintField(b, 4, m.Price)
	b = appendVarintField(b, 5, m.Quantity)
	return b
}

func (m *SubmitRequest) Unmarshal(data []byte) error {
	*m = SubmitRequest{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.OrderID = v
			data = data[n:]
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Side = Side(v)
			data = data[n:]
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Kind = Kind(v)
			data = data[n:]
		case num == 4 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Price = protowire.DecodeZigZag(v)
			data = data[n:]
		case num == 5 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Quantity = v
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

// CancelRequest mirrors kestrel.v1.CancelRequest.
type CancelRequest struct {
	OrderID uint64
}

func (m *CancelRequest) Marshal() []byte {
	return appendVarintField(nil, 1, m.OrderID)
}

func (m *CancelRequest) Unmarshal(data []byte) error {
	*m = CancelRequest{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.OrderID = v
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

// ModifyRequest mirrors kestrel.v1.ModifyRequest.
type ModifyRequest struct {
	OrderID  uint64
	Side     Side
	Price    int64
	Quantity uint64
}

func (m *ModifyRequest) Marshal() []byte {
	var b []byte
	b = appendVarintField(b, 1, m.OrderID)
	b = appendVarintField(b, 2, uint64(m.Side))
	b = appendSintField(b, 3, m.Price)
	b = appendVarintField(b, 4, m.Quantity)
	return b
}

func (m *ModifyRequest) Unmarshal(data []byte) error {
	*m = ModifyRequest{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.OrderID = v
			data = data[n:]
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Side = Side(v)
			data = data[n:]
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Price = protowire.DecodeZigZag(v)
			data = data[n:]
		case num == 4 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Quantity = v
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

// Trade mirrors kestrel.v1.Trade. Each leg carries its own order's
// limit price; the quantity is shared.
type Trade struct {
	BidOrderID uint64
	BidPrice   int64
	AskOrderID uint64
	AskPrice   int64
	Quantity   uint64
}

func (m *Trade) Marshal() []byte {
	var b []byte
	b = appendVarintField(b, 1, m.BidOrderID)
	b = appendSintField(b, 2, m.BidPrice)
	b = appendVarintField(b, 3, m.AskOrderID)
	b = appendSintField(b, 4, m.AskPrice)
	b = appendVarintField(b, 5, m.Quantity)
	return b
}

func (m *Trade) Unmarshal(data []byte) error {
	*m = Trade{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.BidOrderID = v
			data = data[n:]
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.BidPrice = protowire.DecodeZigZag(v)
			data = data[n:]
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.AskOrderID = v
			data = data[n:]
		case num == 4 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.AskPrice = protowire.DecodeZigZag(v)
			data = data[n:]
		case num == 5 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Quantity = v
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

// CommandResponse mirrors kestrel.v1.CommandResponse. Accepted is
// false when the engine silently dropped the command (duplicate id,
// unknown id, unmatchable kill order). Remaining is the quantity left
// resting on the book after the command, zero when nothing rests.
type CommandResponse struct {
	Accepted  bool
	Reason    string
	Trades    []Trade
	Remaining uint64
}

func (m *CommandResponse) Marshal() []byte {
	var b []byte
	b = appendBoolField(b, 1, m.Accepted)
	b = appendStringField(b, 2, m.Reason)
	for i := range m.Trades {
		b = appendMessageField(b, 3, &m.Trades[i])
	}
	b = appendVarintField(b, 4, m.Remaining)
	return b
}

func (m *CommandResponse) Unmarshal(data []byte) error {
	*m = CommandResponse{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Accepted = v != 0
			data = data[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Reason = v
			data = data[n:]
		case num == 3 && typ == protowire.BytesType:
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
		case num == 4 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Remaining = v
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
