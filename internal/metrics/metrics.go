package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	classifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "artformat",
			Name:      "classifications_total",
			Help:      "Completed classifications by resulting label and region kind",
		},
		[]string{"label", "region"},
	)

	classifyLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "artformat",
			Name:      "classification_duration_seconds",
			Help:      "End-to-end duration of a classification request",
			Buckets:   prometheus.DefBuckets,
		},
	)

	requestFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "artformat",
			Name:      "request_failures_total",
			Help:      "Request failures by stage (upload, fetch, validate, parse, render)",
		},
		[]string{"stage"},
	)

	uploadBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "artformat",
			Name:      "upload_size_bytes",
			Help:      "Size of uploaded source documents",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
		},
	)

	rendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "artformat",
			Name:      "renders_total",
			Help:      "Design image renders by result (success, error)",
		},
		[]string{"result"},
	)

	archivesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "artformat",
			Name:      "archives_total",
			Help:      "S3 archive writes of rendered images by result",
		},
		[]string{"result"},
	)
)

// Init registers collectors.
func Init() {
	prometheus.MustRegister(classifications, classifyLatency, requestFailures, uploadBytes, rendersTotal, archivesTotal)
}

// Handler returns the http.Handler for /metrics
func Handler() http.Handler { return promhttp.Handler() }

func ObserveClassification(label, region string, dur time.Duration) {
	classifications.WithLabelValues(label, region).Inc()
	classifyLatency.Observe(dur.Seconds())
}

func IncFailure(stage string) { requestFailures.WithLabelValues(stage).Inc() }

func ObserveUploadSize(n int64) { uploadBytes.Observe(float64(n)) }

func IncRender(result string) { rendersTotal.WithLabelValues(result).Inc() }

func IncArchive(result string) { archivesTotal.WithLabelValues(result).Inc() }
