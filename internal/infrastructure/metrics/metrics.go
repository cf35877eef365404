package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	TransactionsPosted    *prometheus.CounterVec
	TransactionRejections *prometheus.CounterVec
	TransactionAmount     prometheus.Histogram

	// Account metrics
	AccountsCreated prometheus.Counter

	// Country cache metrics
	CacheReads     *prometheus.CounterVec
	CacheRefreshes prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransactionsPosted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankcore_transactions_posted_total",
				Help: "Total number of ledger transactions posted",
			},
			[]string{"direction"},
		),
		TransactionRejections: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankcore_transaction_rejections_total",
				Help: "Total number of rejected transaction requests",
			},
			[]string{"reason"},
		),
		TransactionAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bankcore_transaction_amount",
			Help:    "Posted transaction amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankcore_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		CacheReads: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankcore_country_cache_reads_total",
				Help: "Country cache reads by tier and result",
			},
			[]string{"tier", "result"},
		),
		CacheRefreshes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankcore_country_cache_refreshes_total",
			Help: "Total number of country cache refreshes after mutations",
		}),
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankcore_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bankcore_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}
