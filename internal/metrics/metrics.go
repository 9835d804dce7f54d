// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder はメトリクス収集のインターフェース。
// サービス層とミドルウェアから利用する。
type Recorder interface {
	RecordUploadSuccess(sizeBytes int64)
	RecordUploadFailure()
	RecordVideosListed(count int)
	RecordDeleteSuccess()
	RecordDeleteFailure()
	RecordHTTPStatus(statusCode int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	uploadSuccess prometheus.Counter
	uploadFail    prometheus.Counter
	uploadBytes   prometheus.Histogram
	videosListed  prometheus.Counter
	deleteSuccess prometheus.Counter
	deleteFail    prometheus.Counter
	httpStatus    *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		uploadSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clipvault_upload_success_total",
			Help: "動画アップロード成功の合計数",
		}),
		uploadFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clipvault_upload_fail_total",
			Help: "動画アップロード失敗の合計数",
		}),
		uploadBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "clipvault_upload_bytes",
			Help:    "アップロードされた動画のサイズ（バイト）",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
		}),
		videosListed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clipvault_videos_listed_total",
			Help: "一覧レスポンスに含まれた動画の合計数",
		}),
		deleteSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clipvault_delete_success_total",
			Help: "動画のアーカイブ移動成功の合計数",
		}),
		deleteFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clipvault_delete_fail_total",
			Help: "動画のアーカイブ移動失敗の合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clipvault_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.uploadSuccess,
		c.uploadFail,
		c.uploadBytes,
		c.videosListed,
		c.deleteSuccess,
		c.deleteFail,
		c.httpStatus,
	)

	return c
}

// RecordUploadSuccess はアップロード成功とサイズを記録する。
func (c *Collector) RecordUploadSuccess(sizeBytes int64) {
	c.uploadSuccess.Inc()
	c.uploadBytes.Observe(float64(sizeBytes))
}

// RecordUploadFailure はアップロード失敗を記録する。
func (c *Collector) RecordUploadFailure() {
	c.uploadFail.Inc()
}

// RecordVideosListed は一覧レスポンスに含まれた動画数を記録する。
func (c *Collector) RecordVideosListed(count int) {
	c.videosListed.Add(float64(count))
}

// RecordDeleteSuccess はアーカイブ移動成功を記録する。
func (c *Collector) RecordDeleteSuccess() {
	c.deleteSuccess.Inc()
}

// RecordDeleteFailure はアーカイブ移動失敗を記録する。
func (c *Collector) RecordDeleteFailure() {
	c.deleteFail.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ Recorder = (*Collector)(nil)
