// Package metrics holds the Prometheus collectors of the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Results used as label values.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Metrics is a set of collectors registered on their own registry, so tests
// and several servers in one process do not collide.
type Metrics struct {
	registry *prometheus.Registry

	Uploads     *prometheus.CounterVec
	Downloads   *prometheus.CounterVec
	UploadBytes prometheus.Counter
	Sessions    prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "s3share_uploads_total",
				Help: "Number of upload attempts",
			},
			[]string{"result"},
		),
		Downloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "s3share_downloads_total",
				Help: "Number of download attempts",
			},
			[]string{"result"},
		),
		UploadBytes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "s3share_upload_bytes_total",
				Help: "Bytes stored by successful uploads",
			},
		),
		Sessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "s3share_sessions",
				Help: "Number of signed-in browser sessions",
			},
		),
	}

	m.registry.MustRegister(m.Uploads, m.Downloads, m.UploadBytes, m.Sessions)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
