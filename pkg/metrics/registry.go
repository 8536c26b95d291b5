package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Registry is a named collection of metric instruments backed by a dedicated
// Prometheus registry. Instruments are created on first use and shared on
// subsequent lookups under the same name.
type Registry struct {
	mu         sync.Mutex
	name       string
	prom       *prometheus.Registry
	counters   map[string]prometheus.Counter
	gauges     map[string]prometheus.Gauge
	histograms map[string]prometheus.Histogram
}

func newRegistry(name string) *Registry {
	return &Registry{
		name:       name,
		prom:       prometheus.NewRegistry(),
		counters:   make(map[string]prometheus.Counter),
		gauges:     make(map[string]prometheus.Gauge),
		histograms: make(map[string]prometheus.Histogram),
	}
}

// Name returns the hierarchical registry name.
func (r *Registry) Name() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.name
}

func (r *Registry) setName(name string) {
	r.mu.Lock()
	r.name = name
	r.mu.Unlock()
}

// Counter returns the counter registered under name, creating it on first use.
// Dotted names are accepted and sanitized for Prometheus.
func (r *Registry) Counter(name string) prometheus.Counter {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.counters[name]; ok {
		return c
	}
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Name: SanitizeName(name),
		Help: fmt.Sprintf("Counter %q", name),
	})
	r.prom.MustRegister(c)
	r.counters[name] = c
	return c
}

// Gauge returns the gauge registered under name, creating it on first use.
func (r *Registry) Gauge(name string) prometheus.Gauge {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.gauges[name]; ok {
		return g
	}
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: SanitizeName(name),
		Help: fmt.Sprintf("Gauge %q", name),
	})
	r.prom.MustRegister(g)
	r.gauges[name] = g
	return g
}

// Histogram returns the histogram registered under name, creating it on
// first use with default buckets.
func (r *Registry) Histogram(name string) prometheus.Histogram {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.histograms[name]; ok {
		return h
	}
	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: SanitizeName(name),
		Help: fmt.Sprintf("Histogram %q", name),
	})
	r.prom.MustRegister(h)
	r.histograms[name] = h
	return h
}

// Size returns the number of instruments held by the registry.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.counters) + len(r.gauges) + len(r.histograms)
}

// Gatherer exposes the underlying Prometheus gatherer for pull exporters.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.prom
}

// Snapshot flattens the current instrument values into a name -> value map.
// Histograms contribute <name>_count and <name>_sum entries. Push reporters
// serialize this map instead of scraping the registry.
func (r *Registry) Snapshot() (map[string]float64, error) {
	families, err := r.prom.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather registry %s: %w", r.Name(), err)
	}
	out := make(map[string]float64, len(families))
	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			switch fam.GetType() {
			case dto.MetricType_COUNTER:
				out[fam.GetName()] = m.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				out[fam.GetName()] = m.GetGauge().GetValue()
			case dto.MetricType_HISTOGRAM:
				out[fam.GetName()+"_count"] = float64(m.GetHistogram().GetSampleCount())
				out[fam.GetName()+"_sum"] = m.GetHistogram().GetSampleSum()
			case dto.MetricType_UNTYPED:
				out[fam.GetName()] = m.GetUntyped().GetValue()
			}
		}
	}
	return out, nil
}
