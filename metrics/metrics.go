// Package metrics exports carousel engine activity to Prometheus.
package metrics

import (
	"github.com/ayn2op/carousel/engine"
	"github.com/prometheus/client_golang/prometheus"
)

const Namespace = "carousel"

// Metrics implements engine.Recorder.
type Metrics struct {
	materialized *prometheus.CounterVec
	released     prometheus.Counter

	selection        prometheus.Gauge
	selectionChanges prometheus.Counter

	touchState       *prometheus.GaugeVec
	touchTransitions *prometheus.CounterVec

	windowSize prometheus.Gauge
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		materialized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "elements_materialized_total",
			Help:      "Elements bound to a dataset item, by whether the handle came from the recycling pool",
		}, []string{"source"}),
		released: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "elements_released_total",
			Help:      "Elements evicted from the window to the recycling pool",
		}),
		selection: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "selection",
			Help:      "Index of the selected element",
		}),
		selectionChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "selection_changes_total",
			Help:      "Times the selected index changed",
		}),
		touchState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "touch",
			Name:      "state",
			Help:      "1 for the current touch state, 0 otherwise",
		}, []string{"state"}),
		touchTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "touch",
			Name:      "transitions_total",
			Help:      "Touch state machine transitions",
		}, []string{"from", "to"}),
		windowSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "window_size",
			Help:      "Number of materialized elements",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.materialized,
		m.released,
		m.selection,
		m.selectionChanges,
		m.touchState,
		m.touchTransitions,
		m.windowSize,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	m.materialized.WithLabelValues(SourceNew)
	m.materialized.WithLabelValues(SourcePool)
	m.touchState.WithLabelValues(engine.Resting.String()).Set(1)
	return m, nil
}

// Label values of elements_materialized_total.
const (
	SourceNew  = "new"
	SourcePool = "pool"
)

func (m *Metrics) Materialized(recycled bool) {
	source := SourceNew
	if recycled {
		source = SourcePool
	}
	m.materialized.WithLabelValues(source).Inc()
}

func (m *Metrics) Released() {
	m.released.Inc()
}

func (m *Metrics) SelectionChanged(index int) {
	m.selection.Set(float64(index))
	m.selectionChanges.Inc()
}

func (m *Metrics) TouchTransition(from, to engine.TouchState) {
	m.touchTransitions.WithLabelValues(from.String(), to.String()).Inc()
	m.touchState.WithLabelValues(from.String()).Set(0)
	m.touchState.WithLabelValues(to.String()).Set(1)
}

func (m *Metrics) WindowSize(n int) {
	m.windowSize.Set(float64(n))
}

var _ engine.Recorder = (*Metrics)(nil)
