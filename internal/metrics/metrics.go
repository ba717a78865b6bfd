// Package metrics exposes generation and export counters. A nil *Metrics is
// valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "paperwallet"

// Generation results
const (
	ResultOK         = "ok"
	ResultInvalid    = "invalid"
	ResultEngine     = "engine_failure"
	ResultParse      = "parse_error"
	ResultSkipped    = "skipped"
	ResultRenderFail = "render_failed"
	ResultIOFail     = "io_failed"
)

// Metrics holds the collectors of one process.
type Metrics struct {
	generations    *prometheus.CounterVec
	records        prometheus.Counter
	currentRecords prometheus.Gauge
	exports        *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Generation requests by result.",
		}, []string{"result"}),
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_generated_total",
			Help:      "Wallet records produced by successful generations.",
		}),
		currentRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "current_batch_records",
			Help:      "Records in the current batch.",
		}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Export requests by format and result.",
		}, []string{"format", "result"}),
	}
	reg.MustRegister(m.generations, m.records, m.currentRecords, m.exports)
	return m
}

// ObserveGeneration counts one generation request.
func (m *Metrics) ObserveGeneration(result string, records int) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(result).Inc()
	if result == ResultOK {
		m.records.Add(float64(records))
	}
}

// SetCurrent records the size of the current batch.
func (m *Metrics) SetCurrent(records int) {
	if m == nil {
		return
	}
	m.currentRecords.Set(float64(records))
}

// ObserveExport counts one export request.
func (m *Metrics) ObserveExport(format, result string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(format, result).Inc()
}

// ExportCounter returns the export counter for one format and result.
func (m *Metrics) ExportCounter(format, result string) prometheus.Counter {
	return m.exports.WithLabelValues(format, result)
}
