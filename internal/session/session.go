package session

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/flycam/internal/config"
	"github.com/san-kum/flycam/internal/flight"
	"github.com/san-kum/flycam/internal/input"
	"github.com/san-kum/flycam/internal/scene"
)

var ErrUnknownAction = errors.New("session: unknown action")

// Session owns one rig, the surface it is steered from and the controller
// between them.
type Session struct {
	Rig        *scene.Node
	Surface    *input.Surface
	Controller *flight.Controller

	cfg     *config.Config
	log     *logrus.Entry
	actions map[string]action
	boosted bool
}

// Snapshot is the observable state after a tick.
type Snapshot struct {
	Position    mgl64.Vec3
	Rotation    mgl64.Quat
	Move        mgl64.Vec3
	Rotate      mgl64.Vec3
	AutoForward bool
	DragToLook  bool
	Slow        bool
	Holds       int
}

// New builds a session from cfg. A nil surface attaches to the global input
// target.
func New(cfg *config.Config, surf *input.Surface, log *logrus.Logger) (*Session, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if surf == nil {
		surf = input.Global()
		surf.SetBounds(input.Rect{Width: float64(cfg.Viewport.Width), Height: float64(cfg.Viewport.Height)})
	}
	s := &Session{
		Rig:     scene.NewNode("rig"),
		Surface: surf,
		log:     log.WithField("component", "session"),
	}
	s.Controller = flight.New(s.Rig, surf)
	s.Controller.Log = log.WithField("component", "flight")
	s.actions = s.builtinActions()

	if err := s.Apply(cfg); err != nil {
		s.Controller.Dispose()
		return nil, err
	}
	s.ResetRig()
	return s, nil
}

// Apply re-applies a configuration to the live controller. On error the
// previous configuration stays in effect.
func (s *Session) Apply(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	bindings, err := cfg.Bindings()
	if err != nil {
		return err
	}
	keys, err := cfg.ExtraKeys()
	if err != nil {
		return err
	}
	extras := make(map[input.Code]flight.ExtraBinding, len(keys))
	for code, name := range keys {
		a, ok := s.actions[name]
		if !ok {
			return fmt.Errorf("%w: %q on key %s", ErrUnknownAction, name, code)
		}
		extras[code] = flight.ExtraBinding{Press: a.press, Release: a.release}
	}

	c := s.Controller
	c.MovementSpeed = cfg.MovementSpeed
	c.RollSpeed = cfg.RollSpeed
	c.PointerEnabled = cfg.PointerEnabled
	c.Bindings = bindings
	c.Extras = extras
	if c.DragToLook() != cfg.DragToLook {
		c.SetDragToLook(cfg.DragToLook)
	}
	c.SetAutoForward(cfg.AutoForward)
	s.boosted = false

	s.cfg = cfg.Clone()
	s.log.WithFields(logrus.Fields{
		"movement_speed": cfg.MovementSpeed,
		"roll_speed":     cfg.RollSpeed,
		"extras":         len(extras),
	}).Debug("configuration applied")
	return nil
}

// Config returns a copy of the configuration in effect.
func (s *Session) Config() *config.Config { return s.cfg.Clone() }

// Tick advances the rig and refreshes its world transform.
func (s *Session) Tick(elapsed float64) {
	s.Controller.Tick(elapsed)
	s.Rig.UpdateWorld()
}

// ResetRig moves the rig back to its configured start pose.
func (s *Session) ResetRig() {
	s.Rig.Reset(s.cfg.Rig.Position.Vec3(), mgl64.QuatIdent())
	if target := s.cfg.Rig.LookAt.Vec3(); target != s.Rig.Position {
		s.Rig.LookAt(target, mgl64.Vec3{0, 1, 0})
	}
	s.Rig.UpdateWorld()
}

func (s *Session) Snapshot() Snapshot {
	c := s.Controller
	return Snapshot{
		Position:    s.Rig.Position,
		Rotation:    s.Rig.Rotation,
		Move:        c.MoveVector(),
		Rotate:      c.RotationVector(),
		AutoForward: c.AutoForward(),
		DragToLook:  c.DragToLook(),
		Slow:        c.SpeedMultiplier() < 1,
		Holds:       c.HoldCount(),
	}
}

// Dispatch feeds an event through the session's surface.
func (s *Session) Dispatch(e *input.Event) bool {
	return s.Surface.Dispatch(e)
}

// Close detaches the controller from the surface.
func (s *Session) Close() {
	s.Controller.Dispose()
}
