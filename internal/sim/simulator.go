package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/flycam/internal/input"
	"github.com/san-kum/flycam/internal/session"
)

// Simulator replays scripts against a session at a fixed timestep.
type Simulator struct {
	session   *session.Session
	observers []Observer
}

func New(s *session.Session) *Simulator {
	return &Simulator{session: s, observers: make([]Observer, 0)}
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run dispatches each event once its time has come, then ticks. The first
// sample is the starting pose at t=0.
func (s *Simulator) Run(ctx context.Context, script *Script) (*Result, error) {
	if err := validate(script); err != nil {
		return nil, err
	}
	if script.Surface.Width > 0 && script.Surface.Height > 0 {
		b := s.session.Surface.Bounds()
		s.session.Surface.SetBounds(input.Rect{X: b.X, Y: b.Y, Width: script.Surface.Width, Height: script.Surface.Height})
	}

	steps := int(script.Duration/script.Dt + 0.5)
	result := &Result{Samples: make([]Sample, 0, steps+1), Metrics: make(map[string]float64)}
	result.Samples = append(result.Samples, s.sample(0))

	// Events are due within a small fraction of a step of their time, so
	// At = n*Dt lands on step n despite rounding.
	slack := script.Dt * 1e-9
	next := 0
	for i := 0; i < steps; i++ {
		t := float64(i) * script.Dt
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for next < len(script.Events) && script.Events[next].At <= t+slack {
			ev, err := script.Events[next].Event()
			if err != nil {
				return result, &StepError{Step: i, Time: t, Wrapped: err}
			}
			s.session.Dispatch(ev)
			result.Dispatched++
			next++
		}

		prev := s.session.Rig.Position
		s.session.Tick(script.Dt)
		result.Distance += s.session.Rig.Position.Sub(prev).Len()

		smp := s.sample(float64(i+1) * script.Dt)
		result.Samples = append(result.Samples, smp)
		for _, o := range s.observers {
			o.OnStep(smp)
		}
	}
	return result, nil
}

func (s *Simulator) sample(t float64) Sample {
	snap := s.session.Snapshot()
	return Sample{
		Time:     t,
		Position: snap.Position,
		Rotation: snap.Rotation,
		Move:     snap.Move,
		Rotate:   snap.Rotate,
	}
}

func validate(script *Script) error {
	if script.Dt <= 0 {
		return fmt.Errorf("%w, got %f", ErrInvalidStep, script.Dt)
	}
	if script.Duration <= 0 {
		return fmt.Errorf("%w, got %f", ErrInvalidSpan, script.Duration)
	}
	return nil
}
