package oms

import (
	"time"

	"oms/pkg/oms/book"
)

// Fill records the consumption of one resting order by a trade.
type Fill struct {
	OrderID      int64 `json:"order_id"`
	FilledAmount int64 `json:"filled_amount"`
	FillPrice    int64 `json:"fill_price"`
}

// Trade is the immutable result of a successful execution. Fills appear in
// the order the resting orders were consumed, and TotalPrice equals the sum
// of FilledAmount*FillPrice over them.
type Trade struct {
	TradeID    string    `json:"trade_id"`
	Symbol     string    `json:"symbol"`
	Side       book.Side `json:"side"`
	Amount     int64     `json:"amount"`
	TotalPrice int64     `json:"total_price"`
	ExecutedAt time.Time `json:"executed_at"`
	Fills      []Fill    `json:"order_fills"`
}
