package api

// Request and response types for the REST endpoints and WebSocket messages.

// OrderRequest is the payload for POST /api/v1/orders. Validation bounds
// mirror the upstream interface: uppercase symbols up to 10 chars, amounts
// and prices capped at 10,000,000.
type OrderRequest struct {
	OrderID int64  `json:"order_id" validate:"required"`
	Symbol  string `json:"symbol" validate:"required,min=1,max=10,alpha,uppercase"`
	Side    string `json:"side" validate:"required,oneof=BUY SELL"`
	Amount  int64  `json:"amount" validate:"required,gt=0,lte=10000000"`
	Price   int64  `json:"price" validate:"gte=0,lte=10000000"`
}

// OrderResponse echoes the accepted order.
type OrderResponse struct {
	OrderID int64  `json:"order_id"`
	Symbol  string `json:"symbol"`
	Side    string `json:"side"`
	Amount  int64  `json:"amount"`
	Price   int64  `json:"price"`
}

// PriceResponse is the result of GET /api/v1/price.
type PriceResponse struct {
	Price int64 `json:"price"`
}

// TradeRequest is the payload for POST /api/v1/trades.
type TradeRequest struct {
	Symbol string `json:"symbol" validate:"required,min=1,max=10,alpha,uppercase"`
	Side   string `json:"side" validate:"required,oneof=BUY SELL"`
	Amount int64  `json:"amount" validate:"required,gt=0,lte=10000000"`
}

// OrderFillResponse is one consumed resting order within a trade.
type OrderFillResponse struct {
	OrderID      int64 `json:"order_id"`
	FilledAmount int64 `json:"filled_amount"`
	FillPrice    int64 `json:"fill_price"`
}

// TradeResponse is the result of a successful trade.
type TradeResponse struct {
	TradeID    string              `json:"trade_id"`
	Symbol     string              `json:"symbol"`
	Side       string              `json:"side"`
	Amount     int64               `json:"amount"`
	TotalPrice int64               `json:"total_price"`
	ExecutedAt string              `json:"executed_at"`
	OrderFills []OrderFillResponse `json:"order_fills"`
}

// BookOrder is one resting order in the order book view.
type BookOrder struct {
	OrderID int64 `json:"order_id"`
	Price   int64 `json:"price"`
	Amount  int64 `json:"amount"`
}

// OrderBookResponse is the full book view for a symbol, both sides in
// priority order.
type OrderBookResponse struct {
	Symbol     string      `json:"symbol"`
	BuyOrders  []BookOrder `json:"buy_orders"`
	SellOrders []BookOrder `json:"sell_orders"`
}

// ErrorResponse is returned for all failures.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WSSubscribeRequest subscribes a WebSocket client to channels, e.g.
// ["orderbook:JPM", "trades:JPM"].
type WSSubscribeRequest struct {
	Op       string   `json:"op"` // "subscribe" or "unsubscribe"
	Channels []string `json:"channels"`
}

// BookLevel is a [price, amount] aggregation in a book update.
type BookLevel struct {
	Price  int64 `json:"price"`
	Amount int64 `json:"amount"`
}

// OrderbookUpdate is broadcast after every committed book mutation.
type OrderbookUpdate struct {
	Type      string      `json:"type"` // "orderbook"
	Symbol    string      `json:"symbol"`
	Buys      []BookLevel `json:"buys"`
	Sells     []BookLevel `json:"sells"`
	Timestamp int64       `json:"timestamp"`
}

// TradeUpdate is broadcast on every executed trade.
type TradeUpdate struct {
	Type       string `json:"type"` // "trade"
	TradeID    string `json:"trade_id"`
	Symbol     string `json:"symbol"`
	Side       string `json:"side"`
	Amount     int64  `json:"amount"`
	TotalPrice int64  `json:"total_price"`
	Timestamp  int64  `json:"timestamp"`
}
