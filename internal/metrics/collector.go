// Package metrics wires a pipeline's scheduler to Prometheus, implementing
// piper.MetricsSink the way the teacher wires its own cross-cutting
// extensions (extensions/logging.go): a small adapter struct that forwards
// scheduler events into a collaborator with its own lifecycle.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements piper.MetricsSink with a pressure gauge and a
// batches-processed counter, both labeled by segment path.
type Collector struct {
	pressureVec *prometheus.GaugeVec
	batches     *prometheus.CounterVec
	batchSizes  *prometheus.HistogramVec
}

// NewCollector builds a Collector and registers its metrics against reg. A
// nil reg registers against prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		pressureVec: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "piper",
			Name:      "segment_pressure",
			Help:      "Last observed scheduling pressure (0-100+) for a leaf segment.",
		}, []string{"segment"}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "piper",
			Name:      "segment_batches_total",
			Help:      "Number of batches processed by a leaf segment.",
		}, []string{"segment"}),
		batchSizes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "piper",
			Name:      "segment_batch_size",
			Help:      "Size of batches processed by a leaf segment.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}, []string{"segment"}),
	}

	reg.MustRegister(c.pressureVec, c.batches, c.batchSizes)
	return c
}

// ObservePressure records a leaf's pressure right after a batch has been
// taken from its queue, before the handler runs.
func (c *Collector) ObservePressure(segment string, pressure int) {
	c.pressureVec.WithLabelValues(segment).Set(float64(pressure))
}

// ObserveBatch records that segment processed a batch of size items.
func (c *Collector) ObserveBatch(segment string, size int) {
	c.batches.WithLabelValues(segment).Inc()
	c.batchSizes.WithLabelValues(segment).Observe(float64(size))
}
