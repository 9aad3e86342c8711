// Package metrics は Prometheus 向けの計測値を専用レジストリで公開します。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "compliance"

// Metrics は遷移・一括予約・gRPC リクエストの計測値を保持します。
type Metrics struct {
	registry *prometheus.Registry

	transitions  *prometheus.CounterVec
	batches      *prometheus.CounterVec
	batchSize    prometheus.Histogram
	rpcTotal     *prometheus.CounterVec
	rpcDuration  *prometheus.HistogramVec
	rpcThrottled prometheus.Counter
	published    *prometheus.CounterVec
}

// New は Metrics を生成して登録します。
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workflow",
			Name:      "transitions_total",
			Help:      "Workflow transitions by machine, action and outcome.",
		}, []string{"machine", "action", "outcome"}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "schedule",
			Name:      "batches_total",
			Help:      "Bulk scheduling requests by outcome.",
		}, []string{"outcome"}),
		batchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "schedule",
			Name:      "batch_size",
			Help:      "Employees per bulk scheduling request.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
		}),
		rpcTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "requests_total",
			Help:      "Unary RPCs by method and status code.",
		}, []string{"method", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "request_duration_seconds",
			Help:      "Unary RPC latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		rpcThrottled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "throttled_total",
			Help:      "Unary RPCs rejected by the rate limiter.",
		}),
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Approval records handed to the event bus by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		m.transitions,
		m.batches,
		m.batchSize,
		m.rpcTotal,
		m.rpcDuration,
		m.rpcThrottled,
		m.published,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler は /metrics 用の HTTP ハンドラーを返します。
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveTransition は状態遷移の結果を記録します。
func (m *Metrics) ObserveTransition(machine, action, outcome string) {
	m.transitions.WithLabelValues(machine, action, outcome).Inc()
}

// ObserveBatch は一括予約の件数と結果を記録します。
func (m *Metrics) ObserveBatch(size int, outcome string) {
	m.batches.WithLabelValues(outcome).Inc()
	if size > 0 {
		m.batchSize.Observe(float64(size))
	}
}

// ObserveRPC は単項 RPC の結果と所要時間を記録します。
func (m *Metrics) ObserveRPC(method, code string, elapsed time.Duration) {
	m.rpcTotal.WithLabelValues(method, code).Inc()
	m.rpcDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveThrottled は流量制限で拒否した RPC を数えます。
func (m *Metrics) ObserveThrottled() {
	m.rpcThrottled.Inc()
}

// ObservePublish はイベント配信の結果を件数分記録します。
func (m *Metrics) ObservePublish(records int, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.published.WithLabelValues(result).Add(float64(records))
}
