package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "phonebook",
			Name:      "store_operations_total",
			Help:      "Total number of contact store operations.",
		},
		[]string{"operation", "status"}, // operation="save", status="success"
	)

	storePersistDurationHist = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "phonebook",
			Name:      "store_persist_duration_seconds",
			Help:      "Duration of save and load against the backing file.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	storeContactsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "phonebook",
			Name:      "store_contacts",
			Help:      "Number of contacts currently held in memory.",
		},
	)
)

const (
	statusSuccess = "success"
	statusNoop    = "noop"
	statusError   = "error"
)
