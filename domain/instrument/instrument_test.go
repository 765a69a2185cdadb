package instrument

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func testInstrument(t *testing.T) *Instrument {
	t.Helper()
	ins, err := New("KES-USD",
		decimal.RequireFromString("0.25"),
		decimal.RequireFromString("0.001"),
	)
	if err != nil {
		t.Fatalf("new instrument: %v", err)
	}
	return ins
}

func TestPriceToTicks(t *testing.T) {
	ins := testInstrument(t)

	ticks, err := ins.PriceToTicks(decimal.RequireFromString("101.25"))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if ticks != 405 {
		t.Errorf("ticks = %d, want 405", ticks)
	}

	ticks, err = ins.PriceToTicks(decimal.RequireFromString("-0.50"))
	if err != nil {
		t.Fatalf("convert negative: %v", err)
	}
	if ticks != -2 {
		t.Errorf("ticks = %d, want -2", ticks)
	}
}

func TestPriceOffTick(t *testing.T) {
	ins := testInstrument(t)

	_, err := ins.PriceToTicks(decimal.RequireFromString("101.30"))
	if !errors.Is(err, ErrOffTick) {
		t.Errorf("err = %v, want ErrOffTick", err)
	}
}

func TestQuantityToLots(t *testing.T) {
	ins := testInstrument(t)

	lots, err := ins.QuantityToLots(decimal.RequireFromString("2.5"))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if lots != 2500 {
		t.Errorf("lots = %d, want 2500", lots)
	}
}

func TestQuantityOffLot(t *testing.T) {
	ins := testInstrument(t)

	_, err := ins.QuantityToLots(decimal.RequireFromString("2.0005"))
	if !errors.Is(err, ErrOffLot) {
		t.Errorf("err = %v, want ErrOffLot", err)
	}
}

func TestQuantityMustBePositive(t *testing.T) {
	ins := testInstrument(t)

	for _, s := range []string{"0", "-1"} {
		_, err := ins.QuantityToLots(decimal.RequireFromString(s))
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("quantity %s: err = %v, want ErrOutOfRange", s, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	ins := testInstrument(t)

	price := ins.TicksToPrice(405)
	if !price.Equal(decimal.RequireFromString("101.25")) {
		t.Errorf("price = %s, want 101.25", price)
	}

	qty := ins.LotsToQuantity(2500)
	if !qty.Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("quantity = %s, want 2.5", qty)
	}
}

func TestNewRejectsBadConventions(t *testing.T) {
	if _, err := New("X", decimal.Zero, decimal.NewFromInt(1)); err == nil {
		t.Error("zero tick accepted")
	}
	if _, err := New("X", decimal.NewFromInt(1), decimal.RequireFromString("-0.1")); err == nil {
		t.Error("negative lot accepted")
	}
}
