package service

import "errors"

// The core book drops bad commands silently; the service layer turns
// the conditions it can observe around the call into errors callers
// can act on.
var (
	// ErrDuplicateOrder reports a submit reusing a resting order's id.
	ErrDuplicateOrder = errors.New("service: duplicate order id")

	// ErrUnknownOrder reports a cancel or modify for an id that is not
	// resting.
	ErrUnknownOrder = errors.New("service: unknown order id")

	// ErrNoMatchPossible reports a fill-and-kill order that could not
	// trade against the opposite side.
	ErrNoMatchPossible = errors.New("service: fill-and-kill order cannot match")
)
