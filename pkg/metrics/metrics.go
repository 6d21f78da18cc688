package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	LedgerMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "replenishment_ledger_mutations_total",
			Help: "Committed inventory ledger mutations",
		},
		[]string{"change_type"},
	)

	LedgerRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "replenishment_ledger_rejections_total",
			Help: "Ledger mutations rejected because the resulting quantity would be negative",
		},
		[]string{"operation"},
	)

	OrderTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "replenishment_order_transitions_total",
			Help: "Purchase order status transitions",
		},
		[]string{"from", "to"},
	)

	OrdersCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "replenishment_orders_created_total",
			Help: "Purchase orders created",
		},
		[]string{"auto_generated"},
	)

	AlertsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "replenishment_reorder_alerts_created_total",
			Help: "Reorder alerts created by scans",
		},
	)

	AlertsProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "replenishment_reorder_alerts_processed_total",
			Help: "Reorder alerts processed, by outcome",
		},
		[]string{"outcome"},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "replenishment_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "replenishment_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ScanDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "replenishment_reorder_scan_duration_seconds",
			Help:    "Duration of reorder scans",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"trigger", "status"},
	)
)

func init() {
	prometheus.MustRegister(LedgerMutationsTotal)
	prometheus.MustRegister(LedgerRejectionsTotal)
	prometheus.MustRegister(OrderTransitionsTotal)
	prometheus.MustRegister(OrdersCreatedTotal)
	prometheus.MustRegister(AlertsCreatedTotal)
	prometheus.MustRegister(AlertsProcessedTotal)
	prometheus.MustRegister(ScanDuration)
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
}

// ObserveScan records how long a scan took
func ObserveScan(trigger string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	ScanDuration.WithLabelValues(trigger, status).Observe(time.Since(start).Seconds())
}
