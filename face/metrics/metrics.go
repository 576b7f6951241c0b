// Package metrics exposes clock engine counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"clockface/face/component"
)

// Metrics implements engine.Metrics on a private registry.
type Metrics struct {
	redraws        prometheus.Counter
	redrawDuration prometheus.Histogram
	staticPaints   *prometheus.CounterVec
	renderFailures *prometheus.CounterVec
	backlight      prometheus.Gauge
	backlightFlips prometheus.Counter

	registry *prometheus.Registry
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		redraws: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clockface_redraws_total",
			Help: "Number of dynamic redraw passes.",
		}),
		redrawDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "clockface_redraw_duration_seconds",
			Help:    "Time spent drawing one dynamic pass.",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}),
		staticPaints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clockface_static_paints_total",
			Help: "Static widgets painted, by kind.",
		}, []string{"kind"}),
		renderFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clockface_render_failures_total",
			Help: "Widget draws that failed, by kind.",
		}, []string{"kind"}),
		backlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "clockface_backlight_on",
			Help: "1 while the backlight is on.",
		}),
		backlightFlips: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clockface_backlight_switches_total",
			Help: "Backlight state changes.",
		}),
		registry: registry,
	}

	registry.MustRegister(
		m.redraws,
		m.redrawDuration,
		m.staticPaints,
		m.renderFailures,
		m.backlight,
		m.backlightFlips,
	)
	return m
}

func (m *Metrics) Redraw(d time.Duration) {
	m.redraws.Inc()
	m.redrawDuration.Observe(d.Seconds())
}

func (m *Metrics) StaticPaint(kind component.Kind) {
	m.staticPaints.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) RenderFailure(kind component.Kind) {
	m.renderFailures.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) Backlight(on bool) {
	v := 0.0
	if on {
		v = 1
	}
	m.backlight.Set(v)
	m.backlightFlips.Inc()
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
