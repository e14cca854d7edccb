package metrics

import (
	"sort"

	"github.com/san-kum/flycam/internal/sim"
)

// Metric accumulates a scalar over a replay. Every Metric is a sim.Observer.
type Metric interface {
	sim.Observer
	Name() string
	Value() float64
	Reset()
}

// Standard returns a fresh set of the metrics recorded for every replay.
func Standard() []Metric {
	return []Metric{NewPeakSpeed(), NewTurn(), NewAltitudeSpan()}
}

func Observers(ms []Metric) []sim.Observer {
	out := make([]sim.Observer, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return out
}

func Values(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// Names returns the keys of a value map in order.
func Names(values map[string]float64) []string {
	names := make([]string, 0, len(values))
	for n := range values {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
