package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector mirrors Collector's timings and counts into
// Prometheus metrics, for a long-running kmapmin instance serving
// /metrics. It embeds a Collector so the plain Timings/Counts view stays
// available for callers that want it without scraping.
type PrometheusCollector struct {
	Collector

	stageSeconds *prometheus.HistogramVec
	sizeGauges   *prometheus.GaugeVec
}

// NewPrometheusCollector registers its metrics on reg and returns a ready
// collector. reg must not be nil.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	p := &PrometheusCollector{
		stageSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kmapmin",
			Subsystem: "qm",
			Name:      "stage_seconds",
			Help:      "Duration of each minimization stage.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		sizeGauges: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "kmapmin",
			Subsystem: "qm",
			Name:      "size",
			Help:      "Size metrics of the last minimization (prime implicants, essentials, selected, B&B nodes).",
		}, []string{"metric"}),
	}
	reg.MustRegister(p.stageSeconds, p.sizeGauges)
	return p
}

// Start begins timing stage, updating both the embedded Collector and the
// Prometheus histogram when the stage completes.
func (p *PrometheusCollector) Start(stage string) func() {
	stopCollector := p.Collector.Start(stage)
	timer := prometheus.NewTimer(p.stageSeconds.WithLabelValues(stage))
	return func() {
		stopCollector()
		timer.ObserveDuration()
	}
}

// AddCount updates both the embedded Collector and the Prometheus gauge
// for name.
func (p *PrometheusCollector) AddCount(name string, n int) {
	p.Collector.AddCount(name, n)
	p.sizeGauges.WithLabelValues(name).Add(float64(n))
}
