package splitter

import (
	"strconv"
	"sync"

	"github.com/iov-one/paysplit/coin"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	assetNative = "native"
	assetToken  = "token"
)

var (
	registerOnce sync.Once

	splitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paysplit",
			Subsystem: "splitter",
			Name:      "splits_total",
			Help:      "Split executions by asset and outcome.",
		},
		[]string{"asset", "success"},
	)
	distributedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paysplit",
			Subsystem: "splitter",
			Name:      "distributed_total",
			Help:      "Total amount paid out to recipients.",
		},
		[]string{"asset"},
	)
	createdTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paysplit",
			Subsystem: "splitter",
			Name:      "instances_created_total",
			Help:      "Splitter instances created by factories.",
		},
		[]string{"clone"},
	)
)

// RegisterMetrics registers splitter collectors with the default prometheus
// registry. It is safe to call it many times.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(splitsTotal, distributedTotal, createdTotal)
	})
}

func recordSplit(asset string, amount coin.Amount, err error) {
	RegisterMetrics()
	splitsTotal.WithLabelValues(asset, strconv.FormatBool(err == nil)).Inc()
	if err == nil && !amount.IsZero() {
		distributedTotal.WithLabelValues(asset).Add(float64(amount))
	}
}

func recordCreated(clone bool) {
	RegisterMetrics()
	createdTotal.WithLabelValues(strconv.FormatBool(clone)).Inc()
}
