package oms

import (
	"errors"

	"oms/pkg/oms/book"
)

// The full error taxonomy of the facade. Every operation either returns a
// well-formed result or fails with exactly one of these; all are recoverable,
// caller-facing conditions. Match with errors.Is.
var (
	ErrInvalidOrder   = book.ErrInvalidOrder
	ErrDuplicateOrder = book.ErrDuplicateOrder
	ErrNotFound       = book.ErrNotFound

	// ErrUnknownSymbol reports a price or trade request for a symbol with
	// no order book.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrInvalidRequest rejects a non-positive amount on a price or trade
	// request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInsufficientLiquidity reports that the book cannot fully satisfy
	// the requested amount. No partial result is produced.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
)
