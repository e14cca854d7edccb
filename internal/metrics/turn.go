package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/flycam/internal/sim"
)

// Turn sums the rotation angle between consecutive orientations, in radians.
type Turn struct {
	prev  mgl64.Quat
	seen  bool
	total float64
}

func NewTurn() *Turn { return &Turn{} }

func (t *Turn) Name() string { return "turn" }

func (t *Turn) OnStep(s sim.Sample) {
	if t.seen {
		d := math.Min(math.Abs(t.prev.Dot(s.Rotation)), 1)
		t.total += 2 * math.Acos(d)
	}
	t.prev, t.seen = s.Rotation, true
}

func (t *Turn) Value() float64 { return t.total }

func (t *Turn) Reset() {
	t.seen = false
	t.total = 0
}

// AltitudeSpan is the spread between the highest and lowest y reached.
type AltitudeSpan struct {
	lo, hi float64
	seen   bool
}

func NewAltitudeSpan() *AltitudeSpan { return &AltitudeSpan{} }

func (a *AltitudeSpan) Name() string { return "altitude_span" }

func (a *AltitudeSpan) OnStep(s sim.Sample) {
	y := s.Position.Y()
	if !a.seen {
		a.lo, a.hi, a.seen = y, y, true
		return
	}
	a.lo = math.Min(a.lo, y)
	a.hi = math.Max(a.hi, y)
}

func (a *AltitudeSpan) Value() float64 {
	if !a.seen {
		return 0
	}
	return a.hi - a.lo
}

func (a *AltitudeSpan) Reset() { a.seen = false }
