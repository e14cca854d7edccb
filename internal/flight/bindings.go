package flight

import (
	"github.com/san-kum/flycam/internal/input"
)

// Bindings maps every axis and the speed modifier to a key code.
// input.KeyNone leaves a slot unbound.
type Bindings struct {
	Axes          [numAxes]input.Code
	SpeedModifier input.Code
}

// DefaultBindings returns the classic layout: Shift slows movement down,
// WASD translates, R/F move up/down, arrows pitch and yaw, Q/E roll.
func DefaultBindings() Bindings {
	var b Bindings
	b.SpeedModifier = input.KeyShift
	b.Axes[Forward] = input.KeyW
	b.Axes[Back] = input.KeyS
	b.Axes[Left] = input.KeyA
	b.Axes[Right] = input.KeyD
	b.Axes[Up] = input.KeyR
	b.Axes[Down] = input.KeyF
	b.Axes[PitchUp] = input.KeyArrowUp
	b.Axes[PitchDown] = input.KeyArrowDown
	b.Axes[YawLeft] = input.KeyArrowLeft
	b.Axes[YawRight] = input.KeyArrowRight
	b.Axes[RollLeft] = input.KeyQ
	b.Axes[RollRight] = input.KeyE
	return b
}

func (b *Bindings) Bind(a Axis, code input.Code) {
	if a.valid() {
		b.Axes[a] = code
	}
}

func (b Bindings) Code(a Axis) input.Code {
	if !a.valid() {
		return input.KeyNone
	}
	return b.Axes[a]
}

// Lookup finds the axis bound to code. When a code is bound to several axes
// the first in declaration order wins.
func (b Bindings) Lookup(code input.Code) (Axis, bool) {
	if code == input.KeyNone {
		return 0, false
	}
	for i, c := range b.Axes {
		if c == code {
			return Axis(i), true
		}
	}
	return 0, false
}

// ExtraBinding is an application-specific key with its own callbacks.
// Either callback may be nil.
type ExtraBinding struct {
	Press   func()
	Release func()
}
