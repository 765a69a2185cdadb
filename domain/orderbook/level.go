package orderbook

import "github.com/google/btree"

// level is the FIFO queue of orders resting at one price. Arrival order
// is preserved: enqueue at the tail, match from the head. Because the
// queue is intrusive, unlink works from any position in O(1), which is
// what cancellation leans on.
//
// totalQty is the sum of the queue members' remaining quantities,
// maintained incrementally. Enqueue and unlink adjust it by the
// order's remaining amount; fills subtract what they consume.
type level struct {
	price Price

	head *Order
	tail *Order

	orders   int
	totalQty Quantity
}

// Less orders levels by price inside a side's tree.
func (l *level) Less(than btree.Item) bool {
	return l.price < than.(*level).price
}

func (l *level) empty() bool { return l.head == nil }

func (l *level) front() *Order { return l.head }

// enqueue appends o at the tail of the queue and claims it for this
// level.
func (l *level) enqueue(o *Order) {
	if l.tail == nil {
		l.head = o
		l.tail = o
	} else {
		l.tail.next = o
		o.prev = l.tail
		l.tail = o
	}
	o.level = l
	l.orders++
	l.totalQty += o.remaining
}

// unlink removes o from wherever it sits in the queue and zeroes its
// linkage.
func (l *level) unlink(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		l.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		l.tail = o.prev
	}
	o.prev = nil
	o.next = nil
	o.level = nil
	l.orders--
	l.totalQty -= o.remaining
}

// reduce keeps the level aggregate in step with a partial fill of one
// of its members.
func (l *level) reduce(quantity Quantity) {
	l.totalQty -= quantity
}
