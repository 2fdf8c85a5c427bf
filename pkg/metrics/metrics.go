// Package metrics holds the process-wide Prometheus collectors, exposed on
// GET /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oms_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "oms_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "path"},
	)

	OrdersAdded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "oms_orders_added_total",
			Help: "Orders accepted into a book",
		},
	)
	OrdersRemoved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "oms_orders_removed_total",
			Help: "Orders explicitly removed from a book",
		},
	)
	TradesExecuted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oms_trades_executed_total",
			Help: "Successfully executed trades",
		},
		[]string{"side"},
	)
	TradeVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oms_trade_volume_total",
			Help: "Units filled by executed trades",
		},
		[]string{"side"},
	)
)

// Register installs the collectors on the default registry. Call once at
// startup.
func Register() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		OrdersAdded,
		OrdersRemoved,
		TradesExecuted,
		TradeVolume,
	)
}
