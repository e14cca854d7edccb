package flight

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/flycam/internal/input"
	"github.com/sirupsen/logrus"
)

const (
	DefaultMovementSpeed = 1.0
	DefaultRollSpeed     = 0.005

	// SlowMultiplier scales translation while the speed modifier is held.
	SlowMultiplier = 0.1
)

// Transformable is the capability a rig must offer.
type Transformable interface {
	// TranslateLocal moves along the rig's own axes.
	TranslateLocal(dx, dy, dz float64)
	// ComposeLocalRotation right-multiplies delta onto the orientation.
	ComposeLocalRotation(delta mgl64.Quat)
	// MarkWorldDirty signals that the world transform needs recomputing.
	MarkWorldDirty()
}

// Thruster is implemented by rigs that honour the one-shot forward/backward
// flags set by pointer buttons outside drag-to-look mode.
type Thruster interface {
	SetMoveForward(bool)
	SetMoveBackward(bool)
}

// Surface is the event source a controller attaches to. *input.Surface
// satisfies it.
type Surface interface {
	Listen(k input.Kind, fn input.Handler) input.ListenerID
	Unlisten(id input.ListenerID)
	Bounds() input.Rect
	IsDefault() bool
	SetTabIndex(i int)
	Focus()
}

// Controller drives a rig from key and pointer input.
type Controller struct {
	// Tunable by the owner at any time.
	MovementSpeed  float64
	RollSpeed      float64
	PointerEnabled bool
	Bindings       Bindings
	Extras         map[input.Code]ExtraBinding
	Log            logrus.FieldLogger

	rig     Transformable
	surface Surface
	ids     []input.ListenerID

	dragToLook  bool
	autoForward bool

	state           MotionState
	moveVector      mgl64.Vec3
	rotationVector  mgl64.Vec3
	speedMultiplier float64
	holdCount       int
	thrustForward   bool
	thrustBack      bool
}

// New attaches a controller to rig and surface. A nil surface selects the
// process-wide default target. A specific surface is taken out of the tab
// order.
func New(rig Transformable, surface Surface) *Controller {
	if surface == nil {
		surface = input.Global()
	}
	c := &Controller{
		MovementSpeed:   DefaultMovementSpeed,
		RollSpeed:       DefaultRollSpeed,
		PointerEnabled:  true,
		Bindings:        DefaultBindings(),
		Extras:          make(map[input.Code]ExtraBinding),
		Log:             logrus.StandardLogger().WithField("component", "flight"),
		rig:             rig,
		surface:         surface,
		speedMultiplier: 1,
	}
	if !surface.IsDefault() {
		surface.SetTabIndex(-1)
	}
	for _, k := range []input.Kind{input.PointerMove, input.PointerDown, input.PointerUp, input.KeyDown, input.KeyUp} {
		c.ids = append(c.ids, surface.Listen(k, c.HandleEvent))
	}
	c.updateMovementVector()
	c.updateRotationVector()
	return c
}

// Dispose removes every listener the controller registered. It is safe to
// call more than once.
func (c *Controller) Dispose() {
	for _, id := range c.ids {
		c.surface.Unlisten(id)
	}
	c.ids = nil
}

// Attached reports whether the controller is still listening on its surface.
func (c *Controller) Attached() bool { return len(c.ids) > 0 }

// HandleEvent dispatches a surface event to the matching handler.
func (c *Controller) HandleEvent(e *input.Event) {
	switch e.Kind {
	case input.KeyDown:
		c.HandleKeyDown(e.Code, e.Alt)
	case input.KeyUp:
		c.HandleKeyUp(e.Code)
	case input.PointerDown:
		if c.PointerEnabled {
			e.PreventDefault()
			e.StopPropagation()
		}
		c.HandlePointerDown(e.Button)
	case input.PointerMove:
		c.HandlePointerMove(e.X, e.Y)
	case input.PointerUp:
		if c.PointerEnabled {
			e.PreventDefault()
			e.StopPropagation()
		}
		c.HandlePointerUp(e.Button)
	}
}

// HandleKeyDown activates the axis bound to code. Nothing happens while alt
// is held.
func (c *Controller) HandleKeyDown(code input.Code, alt bool) {
	if alt {
		return
	}
	switch axis, ok := c.Bindings.Lookup(code); {
	case code != input.KeyNone && code == c.Bindings.SpeedModifier:
		c.speedMultiplier = SlowMultiplier
	case ok:
		c.state[axis] = 1
	default:
		if x, found := c.Extras[code]; found {
			if x.Press != nil {
				x.Press()
			}
		} else {
			c.Log.WithField("code", int(code)).Debug("ignoring unbound key down")
		}
	}
	c.updateMovementVector()
	c.updateRotationVector()
}

// HandleKeyUp is the release counterpart of HandleKeyDown.
func (c *Controller) HandleKeyUp(code input.Code) {
	switch axis, ok := c.Bindings.Lookup(code); {
	case code != input.KeyNone && code == c.Bindings.SpeedModifier:
		c.speedMultiplier = 1
	case ok:
		c.state[axis] = 0
	default:
		if x, found := c.Extras[code]; found {
			if x.Release != nil {
				x.Release()
			}
		} else {
			c.Log.WithField("code", int(code)).Debug("ignoring unbound key up")
		}
	}
	c.updateMovementVector()
	c.updateRotationVector()
}

func (c *Controller) HandlePointerDown(b input.Button) {
	if !c.PointerEnabled {
		return
	}
	if !c.surface.IsDefault() {
		c.surface.Focus()
	}
	if c.dragToLook {
		c.holdCount++
		return
	}
	switch b {
	case input.ButtonPrimary:
		c.setThrust(true, c.thrustBack)
	case input.ButtonSecondary:
		c.setThrust(c.thrustForward, true)
	}
	c.updateMovementVector()
}

// HandlePointerMove steers yaw and pitch from the pointer's offset to the
// centre of the surface, normalised so the edges read ±1. Positions beyond
// the surface are not clamped.
func (c *Controller) HandlePointerMove(x, y float64) {
	if !c.PointerEnabled {
		return
	}
	if c.dragToLook && c.holdCount <= 0 {
		return
	}
	box := c.surface.Bounds()
	if box.Empty() {
		c.Log.WithField("bounds", box).Debug("ignoring pointer move on empty surface")
		return
	}
	halfW, halfH := box.Width/2, box.Height/2
	c.state[YawLeft] = -((x - box.X) - halfW) / halfW
	c.state[PitchDown] = ((y - box.Y) - halfH) / halfH
	c.updateRotationVector()
}

func (c *Controller) HandlePointerUp(b input.Button) {
	if !c.PointerEnabled {
		return
	}
	if c.dragToLook {
		if c.holdCount > 0 {
			c.holdCount--
		}
		c.state[YawLeft] = 0
		c.state[PitchDown] = 0
	} else {
		switch b {
		case input.ButtonPrimary:
			c.setThrust(false, c.thrustBack)
		case input.ButtonSecondary:
			c.setThrust(c.thrustForward, false)
		}
		c.updateMovementVector()
	}
	c.updateRotationVector()
}

// Tick integrates the current vectors over elapsed seconds.
func (c *Controller) Tick(elapsed float64) {
	moveMult := elapsed * c.MovementSpeed * c.speedMultiplier
	rotMult := elapsed * c.RollSpeed

	c.rig.TranslateLocal(
		c.moveVector.X()*moveMult,
		c.moveVector.Y()*moveMult,
		c.moveVector.Z()*moveMult,
	)

	delta := mgl64.Quat{W: 1, V: c.rotationVector.Mul(rotMult)}.Normalize()
	c.rig.ComposeLocalRotation(delta)
	c.rig.MarkWorldDirty()
}

func (c *Controller) DragToLook() bool { return c.dragToLook }

// SetDragToLook switches between drag-to-look and always-look. Any pending
// holds are forgotten. Entering drag-to-look also drops the pointer's yaw and
// pitch, since no drag is in progress to steer them.
func (c *Controller) SetDragToLook(on bool) {
	c.dragToLook = on
	c.holdCount = 0
	if on {
		c.state[YawLeft] = 0
		c.state[PitchDown] = 0
		c.updateRotationVector()
	}
}

func (c *Controller) AutoForward() bool { return c.autoForward }

func (c *Controller) SetAutoForward(on bool) {
	c.autoForward = on
	c.updateMovementVector()
}

// State returns a copy of the motion state.
func (c *Controller) State() MotionState          { return c.state }
func (c *Controller) MoveVector() mgl64.Vec3      { return c.moveVector }
func (c *Controller) RotationVector() mgl64.Vec3  { return c.rotationVector }
func (c *Controller) SpeedMultiplier() float64    { return c.speedMultiplier }
func (c *Controller) HoldCount() int              { return c.holdCount }
func (c *Controller) PointerThrust() (bool, bool) { return c.thrustForward, c.thrustBack }

// Reset zeroes every axis, hold and thrust flag without detaching.
func (c *Controller) Reset() {
	c.state = MotionState{}
	c.speedMultiplier = 1
	c.holdCount = 0
	c.setThrust(false, false)
	c.updateMovementVector()
	c.updateRotationVector()
}

func (c *Controller) setThrust(forward, back bool) {
	c.thrustForward, c.thrustBack = forward, back
	if t, ok := c.rig.(Thruster); ok {
		t.SetMoveForward(forward)
		t.SetMoveBackward(back)
	}
}

func (c *Controller) updateMovementVector() {
	s := c.state
	if c.thrustForward {
		s[Forward] = 1
	}
	if c.thrustBack {
		s[Back] = 1
	}
	c.moveVector = s.MoveVector(c.autoForward)
}

func (c *Controller) updateRotationVector() {
	c.rotationVector = c.state.RotationVector()
}
