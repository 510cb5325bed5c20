// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder はAPIクライアントのリクエスト結果を記録するインターフェース。
type Recorder interface {
	RecordRequest(op string, statusCode int)
	RecordFailure(op string, kind string)
	RecordLatency(op string, duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blogman_api_requests_total",
			Help: "APIリクエストの操作・ステータスコード別の合計数",
		}, []string{"op", "status_code"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blogman_api_failures_total",
			Help: "APIリクエスト失敗の操作・種別（transport/server）別の合計数",
		}, []string{"op", "kind"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "blogman_api_request_latency_seconds",
			Help:    "APIリクエストのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
	}

	reg.MustRegister(
		c.requests,
		c.failures,
		c.latency,
	)

	return c
}

// RecordRequest はリクエスト完了をステータスコード付きで記録する。
func (c *Collector) RecordRequest(op string, statusCode int) {
	c.requests.WithLabelValues(op, strconv.Itoa(statusCode)).Inc()
}

// RecordFailure はリクエスト失敗を種別付きで記録する。
func (c *Collector) RecordFailure(op string, kind string) {
	c.failures.WithLabelValues(op, kind).Inc()
}

// RecordLatency はリクエストのレイテンシを記録する。
func (c *Collector) RecordLatency(op string, duration time.Duration) {
	c.latency.WithLabelValues(op).Observe(duration.Seconds())
}

// NopRecorder は何も記録しないRecorder。メトリクス無効時に使う。
type NopRecorder struct{}

// RecordRequest は何もしない。
func (NopRecorder) RecordRequest(op string, statusCode int) {}

// RecordFailure は何もしない。
func (NopRecorder) RecordFailure(op string, kind string) {}

// RecordLatency は何もしない。
func (NopRecorder) RecordLatency(op string, duration time.Duration) {}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
