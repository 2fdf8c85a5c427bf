// Package api is the HTTP and WebSocket transport over the order management
// core. It translates wire requests into facade calls and facade errors into
// status codes; it holds no domain state and no locks of its own.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"oms/pkg/metrics"
	"oms/pkg/oms"
	"oms/pkg/oms/book"
)

// TradeJournal is the slice of the storage layer the server needs. A nil
// journal disables trade history.
type TradeJournal interface {
	Append(*oms.Trade) error
	Recent(symbol string, limit int) ([]oms.Trade, error)
}

type Server struct {
	mgr      *oms.Manager
	journal  TradeJournal
	router   *mux.Router
	hub      *Hub
	validate *validator.Validate
	log      *zap.SugaredLogger
}

// NewServer wires the transport to the facade. The server registers itself
// as the manager's trade and book-change observer.
func NewServer(mgr *oms.Manager, journal TradeJournal, log *zap.SugaredLogger) *Server {
	s := &Server{
		mgr:      mgr,
		journal:  journal,
		router:   mux.NewRouter(),
		hub:      NewHub(log),
		validate: validator.New(),
		log:      log,
	}
	mgr.OnTrade = s.onTrade
	mgr.OnBookChange = s.broadcastOrderbook
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.Use(s.instrument)

	api.HandleFunc("/orders", s.handleAddOrder).Methods("POST")
	api.HandleFunc("/orders/{orderId}", s.handleRemoveOrder).Methods("DELETE")
	api.HandleFunc("/price", s.handleCalculatePrice).Methods("GET")
	api.HandleFunc("/trades", s.handlePlaceTrade).Methods("POST")
	api.HandleFunc("/trades", s.handleRecentTrades).Methods("GET")
	api.HandleFunc("/orderbook/{symbol}", s.handleGetOrderBook).Methods("GET")

	s.router.HandleFunc("/ws", s.handleWebSocket)
	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Handler returns the fully configured root handler, CORS included.
func (s *Server) Handler(allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	return c.Handler(s.router)
}

// Run starts the WebSocket hub and serves until the listener fails.
func (s *Server) Run(addr string, allowedOrigins []string) error {
	go s.hub.Run()
	s.log.Infow("api_server_starting", "addr", addr)
	return http.ListenAndServe(addr, s.Handler(allowedOrigins))
}

// Hub exposes the WebSocket hub so the bootstrap can run it when using a
// custom http.Server.
func (s *Server) Hub() *Hub { return s.hub }

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// ==============================
// REST handlers
// ==============================

func (s *Server) handleAddOrder(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}
	side, err := book.ParseSide(req.Side)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid side", err.Error())
		return
	}

	if err := s.mgr.AddOrder(req.OrderID, req.Symbol, side, req.Amount, req.Price); err != nil {
		respondFacadeError(w, err)
		return
	}
	metrics.OrdersAdded.Inc()

	respondJSONStatus(w, http.StatusCreated, OrderResponse{
		OrderID: req.OrderID,
		Symbol:  req.Symbol,
		Side:    req.Side,
		Amount:  req.Amount,
		Price:   req.Price,
	})
}

func (s *Server) handleRemoveOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["orderId"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id", err.Error())
		return
	}
	if err := s.mgr.RemoveOrder(id); err != nil {
		respondFacadeError(w, err)
		return
	}
	metrics.OrdersRemoved.Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCalculatePrice(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	side, err := book.ParseSide(q.Get("side"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid side", err.Error())
		return
	}
	amount, err := strconv.ParseInt(q.Get("amount"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	price, err := s.mgr.CalculatePrice(q.Get("symbol"), side, amount)
	if err != nil {
		respondFacadeError(w, err)
		return
	}
	respondJSON(w, PriceResponse{Price: price})
}

func (s *Server) handlePlaceTrade(w http.ResponseWriter, r *http.Request) {
	var req TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}
	side, err := book.ParseSide(req.Side)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid side", err.Error())
		return
	}

	trade, err := s.mgr.PlaceTrade(req.Symbol, side, req.Amount)
	if err != nil {
		respondFacadeError(w, err)
		return
	}

	respondJSONStatus(w, http.StatusCreated, tradeResponse(trade))
}

func (s *Server) handleRecentTrades(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		respondJSON(w, []TradeResponse{})
		return
	}
	q := r.URL.Query()
	limit := 50
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}
	trades, err := s.journal.Recent(q.Get("symbol"), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "journal read failed", err.Error())
		return
	}
	out := make([]TradeResponse, len(trades))
	for i := range trades {
		out[i] = tradeResponse(&trades[i])
	}
	respondJSON(w, out)
}

func (s *Server) handleGetOrderBook(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	// Unknown symbols yield an empty view, not a 404: the book is created
	// lazily and an empty book and no book are indistinguishable here.
	resp := OrderBookResponse{
		Symbol:     symbol,
		BuyOrders:  bookOrders(s.mgr.BookOrders(symbol, book.Buy)),
		SellOrders: bookOrders(s.mgr.BookOrders(symbol, book.Sell)),
	}
	respondJSON(w, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"})
}

// ==============================
// Broadcast hooks
// ==============================

func (s *Server) onTrade(t *oms.Trade) {
	metrics.TradesExecuted.WithLabelValues(t.Side.String()).Inc()
	metrics.TradeVolume.WithLabelValues(t.Side.String()).Add(float64(t.Amount))

	if s.journal != nil {
		if err := s.journal.Append(t); err != nil {
			s.log.Warnw("journal_append_failed", "trade_id", t.TradeID, "err", err)
		}
	}

	s.hub.BroadcastToChannel("trades:"+t.Symbol, TradeUpdate{
		Type:       "trade",
		TradeID:    t.TradeID,
		Symbol:     t.Symbol,
		Side:       t.Side.String(),
		Amount:     t.Amount,
		TotalPrice: t.TotalPrice,
		Timestamp:  t.ExecutedAt.UnixMilli(),
	})
}

func (s *Server) broadcastOrderbook(symbol string) {
	buys, sells, ok := s.mgr.BookDepth(symbol)
	if !ok {
		return
	}
	update := OrderbookUpdate{
		Type:      "orderbook",
		Symbol:    symbol,
		Buys:      bookLevels(buys),
		Sells:     bookLevels(sells),
		Timestamp: time.Now().UnixMilli(),
	}
	s.hub.BroadcastToChannel("orderbook:"+symbol, update)
}

// ==============================
// Helpers
// ==============================

func tradeResponse(t *oms.Trade) TradeResponse {
	fills := make([]OrderFillResponse, len(t.Fills))
	for i, f := range t.Fills {
		fills[i] = OrderFillResponse{OrderID: f.OrderID, FilledAmount: f.FilledAmount, FillPrice: f.FillPrice}
	}
	return TradeResponse{
		TradeID:    t.TradeID,
		Symbol:     t.Symbol,
		Side:       t.Side.String(),
		Amount:     t.Amount,
		TotalPrice: t.TotalPrice,
		ExecutedAt: t.ExecutedAt.Format(time.RFC3339Nano),
		OrderFills: fills,
	}
}

func bookOrders(orders []book.Order) []BookOrder {
	out := make([]BookOrder, len(orders))
	for i, o := range orders {
		out[i] = BookOrder{OrderID: o.ID, Price: o.Price, Amount: o.Amount}
	}
	return out
}

func bookLevels(levels []book.Level) []BookLevel {
	out := make([]BookLevel, len(levels))
	for i, l := range levels {
		out[i] = BookLevel{Price: l.Price, Amount: l.Amount}
	}
	return out
}

func respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func respondJSONStatus(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, errMsg, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: errMsg, Message: detail})
}

// respondFacadeError maps the core error taxonomy to status codes.
func respondFacadeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, oms.ErrNotFound), errors.Is(err, oms.ErrUnknownSymbol):
		respondError(w, http.StatusNotFound, "not found", err.Error())
	case errors.Is(err, oms.ErrDuplicateOrder):
		respondError(w, http.StatusConflict, "duplicate order", err.Error())
	case errors.Is(err, oms.ErrInvalidOrder), errors.Is(err, oms.ErrInvalidRequest):
		respondError(w, http.StatusBadRequest, "invalid request", err.Error())
	case errors.Is(err, oms.ErrInsufficientLiquidity):
		respondError(w, http.StatusBadRequest, "insufficient liquidity", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error", err.Error())
	}
}
