package orderbook

import "github.com/google/btree"

// Occupied levels per side stay modest in practice; degree 32 keeps the
// tree shallow without oversized nodes.
const levelTreeDegree = 32

// bookSide holds one side's occupied price levels, indexed by price.
// Best means highest price for bids and lowest for asks, and priority
// iteration follows the same rule.
type bookSide struct {
	side   Side
	levels *btree.BTree
}

func newBookSide(side Side) *bookSide {
	return &bookSide{
		side:   side,
		levels: btree.New(levelTreeDegree),
	}
}

func (s *bookSide) empty() bool { return s.levels.Len() == 0 }

// depth is the number of occupied levels.
func (s *bookSide) depth() int { return s.levels.Len() }

// best returns the side's top-priority level, or nil when the side is
// empty.
func (s *bookSide) best() *level {
	var it btree.Item
	if s.side == Buy {
		it = s.levels.Max()
	} else {
		it = s.levels.Min()
	}
	if it == nil {
		return nil
	}
	return it.(*level)
}

// getOrCreate returns the level at price, creating and indexing a fresh
// one if the price is currently unoccupied.
func (s *bookSide) getOrCreate(price Price) *level {
	if it := s.levels.Get(&level{price: price}); it != nil {
		return it.(*level)
	}
	l := &level{price: price}
	s.levels.ReplaceOrInsert(l)
	return l
}

// remove drops the level at price from the index. Only emptied levels
// are ever removed.
func (s *bookSide) remove(price Price) {
	s.levels.Delete(&level{price: price})
}

// walk visits the side's levels in priority order until fn returns
// false.
func (s *bookSide) walk(fn func(*level) bool) {
	visit := func(it btree.Item) bool { return fn(it.(*level)) }
	if s.side == Buy {
		s.levels.Descend(visit)
	} else {
		s.levels.Ascend(visit)
	}
}
