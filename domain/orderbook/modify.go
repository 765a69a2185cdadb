package orderbook

// OrderModify asks the book to re-express a resting order with a new
// side, price, or quantity. Applying it is cancel-then-reinsert: the
// replacement is a brand-new order that joins the back of its level's
// queue, and the existing order's kind is always carried over. There is
// deliberately no kind field here.
type OrderModify struct {
	ID       OrderID
	Side     Side
	Price    Price
	Quantity Quantity
}

// ToOrder builds the replacement order from the request's fields and
// the kind of the order being replaced.
func (m OrderModify) ToOrder(kind Kind) *Order {
	return NewOrder(kind, m.ID, m.Side, m.Price, m.Quantity)
}
