package flight

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis is one of the twelve named motion and rotation directions.
type Axis int

const (
	Forward Axis = iota
	Back
	Left
	Right
	Up
	Down
	PitchUp
	PitchDown
	YawLeft
	YawRight
	RollLeft
	RollRight
	numAxes
)

var axisNames = [numAxes]string{
	"forward", "back", "left", "right", "up", "down",
	"pitchUp", "pitchDown", "yawLeft", "yawRight", "rollLeft", "rollRight",
}

func (a Axis) String() string {
	if a < 0 || a >= numAxes {
		return fmt.Sprintf("axis(%d)", int(a))
	}
	return axisNames[a]
}

func (a Axis) valid() bool { return a >= 0 && a < numAxes }

// ParseAxis resolves an axis name as returned by Axis.String.
func ParseAxis(s string) (Axis, bool) {
	for i, name := range axisNames {
		if name == s {
			return Axis(i), true
		}
	}
	return 0, false
}

// Axes returns all axes in declaration order.
func Axes() []Axis {
	out := make([]Axis, numAxes)
	for i := range out {
		out[i] = Axis(i)
	}
	return out
}

// MotionState holds one activation level per axis. Keyboard levels are 0 or
// 1; pointer-driven yawLeft and pitchDown are continuous.
type MotionState [numAxes]float64

func (s MotionState) Level(a Axis) float64 {
	if !a.valid() {
		return 0
	}
	return s[a]
}

// MoveVector derives the linear move vector. Forward also fires when
// autoForward is set and back is inactive.
func (s MotionState) MoveVector(autoForward bool) mgl64.Vec3 {
	forward := 0.0
	if s[Forward] != 0 || (autoForward && s[Back] == 0) {
		forward = 1
	}
	return mgl64.Vec3{
		-s[Left] + s[Right],
		-s[Down] + s[Up],
		-forward + s[Back],
	}
}

// RotationVector derives the angular vector.
func (s MotionState) RotationVector() mgl64.Vec3 {
	return mgl64.Vec3{
		-s[PitchDown] + s[PitchUp],
		-s[YawRight] + s[YawLeft],
		-s[RollRight] + s[RollLeft],
	}
}
