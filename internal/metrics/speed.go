package metrics

import "github.com/san-kum/flycam/internal/sim"

// PeakSpeed is the fastest displacement rate seen between two steps.
type PeakSpeed struct {
	prev  sim.Sample
	seen  bool
	value float64
}

func NewPeakSpeed() *PeakSpeed { return &PeakSpeed{} }

func (p *PeakSpeed) Name() string { return "peak_speed" }

func (p *PeakSpeed) OnStep(s sim.Sample) {
	if p.seen {
		if dt := s.Time - p.prev.Time; dt > 0 {
			if v := s.Position.Sub(p.prev.Position).Len() / dt; v > p.value {
				p.value = v
			}
		}
	}
	p.prev, p.seen = s, true
}

func (p *PeakSpeed) Value() float64 { return p.value }

func (p *PeakSpeed) Reset() {
	p.seen = false
	p.value = 0
}
