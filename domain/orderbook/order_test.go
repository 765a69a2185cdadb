package orderbook

import "testing"

func TestOrderFillAccounting(t *testing.T) {
	o := NewOrder(GoodTillCancel, 1, Buy, 100, 10)

	o.Fill(4)
	if o.RemainingQuantity() != 6 || o.FilledQuantity() != 4 {
		t.Errorf("remaining=%d filled=%d", o.RemainingQuantity(), o.FilledQuantity())
	}
	if o.IsFilled() {
		t.Error("order with remainder reported filled")
	}

	o.Fill(6)
	if !o.IsFilled() || o.InitialQuantity() != 10 {
		t.Errorf("remaining=%d initial=%d", o.RemainingQuantity(), o.InitialQuantity())
	}
}

func TestOverfillPanics(t *testing.T) {
	o := NewOrder(GoodTillCancel, 1, Buy, 100, 3)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on overfill, but got none")
		}
	}()
	o.Fill(4)
}

func TestSideOpposite(t *testing.T) {
	if Buy.Opposite() != Sell || Sell.Opposite() != Buy {
		t.Error("Opposite is not an involution")
	}
}

func TestModifyToOrderKeepsGivenKind(t *testing.T) {
	m := OrderModify{ID: 9, Side: Sell, Price: 42, Quantity: 7}

	o := m.ToOrder(FillAndKill)
	if o.Kind() != FillAndKill {
		t.Errorf("kind = %v, want %v", o.Kind(), FillAndKill)
	}
	if o.ID() != 9 || o.Side() != Sell || o.Price() != 42 || o.RemainingQuantity() != 7 {
		t.Errorf("order = %+v", o)
	}
}

func TestParseSide(t *testing.T) {
	cases := []struct {
		in   string
		want Side
		ok   bool
	}{
		{"buy", Buy, true},
		{"SELL", Sell, true},
		{"hold", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, err := ParseSide(c.in)
		if c.ok && (err != nil || got != c.want) {
			t.Errorf("ParseSide(%q) = %v, %v", c.in, got, err)
		}
		if !c.ok && err == nil {
			t.Errorf("ParseSide(%q) accepted", c.in)
		}
	}
}

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"", GoodTillCancel, true},
		{"gtc", GoodTillCancel, true},
		{"fak", FillAndKill, true},
		{"fill-and-kill", FillAndKill, true},
		{"market", 0, false},
	}
	for _, c := range cases {
		got, err := ParseKind(c.in)
		if c.ok && (err != nil || got != c.want) {
			t.Errorf("ParseKind(%q) = %v, %v", c.in, got, err)
		}
		if !c.ok && err == nil {
			t.Errorf("ParseKind(%q) accepted", c.in)
		}
	}
}

func TestTradesFilledFor(t *testing.T) {
	ts := Trades{
		{Bid: TradeLeg{OrderID: 1, Price: 100, Quantity: 4}, Ask: TradeLeg{OrderID: 2, Price: 100, Quantity: 4}},
		{Bid: TradeLeg{OrderID: 1, Price: 100, Quantity: 3}, Ask: TradeLeg{OrderID: 3, Price: 99, Quantity: 3}},
	}

	if got := ts.FilledFor(1); got != 7 {
		t.Errorf("FilledFor(1) = %d, want 7", got)
	}
	if got := ts.FilledFor(3); got != 3 {
		t.Errorf("FilledFor(3) = %d, want 3", got)
	}
	if got := ts.FilledFor(9); got != 0 {
		t.Errorf("FilledFor(9) = %d, want 0", got)
	}
}
