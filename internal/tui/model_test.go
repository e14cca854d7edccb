package tui

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/flycam/internal/config"
	"github.com/san-kum/flycam/internal/input"
	"github.com/san-kum/flycam/internal/session"
	"github.com/san-kum/flycam/internal/sim"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func frame(m *Model, c *fakeClock, d time.Duration) {
	c.advance(d)
	m.Update(tickMsg(c.t))
}

func newTestModel(t *testing.T) (*Model, *fakeClock) {
	t.Helper()
	log := logrus.New()
	log.Out = io.Discard

	cfg := config.DefaultConfig()
	cfg.Rig.Position = config.Vec3Config{}
	s, err := session.New(cfg, input.NewElement(input.Rect{}), log)
	if err != nil {
		t.Fatalf("session failed: %v", err)
	}
	t.Cleanup(s.Close)

	clock := &fakeClock{t: time.Unix(100, 0)}
	m := NewModel(s, withClock(clock.now), WithLogger(log), WithPreset("default"))
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 82, Height: 25})
	return m, clock
}

func TestModelResizeSetsBounds(t *testing.T) {
	m, _ := newTestModel(t)

	b := m.sess.Surface.Bounds()
	if b != (input.Rect{X: 1, Y: 2, Width: 80, Height: 20}) {
		t.Errorf("unexpected bounds %+v", b)
	}
	if m.canvas.Cols != 80 || m.canvas.Rows != 20 {
		t.Errorf("unexpected canvas %dx%d", m.canvas.Cols, m.canvas.Rows)
	}
}

func TestModelKeyHoldAndRelease(t *testing.T) {
	m, clock := newTestModel(t)

	m.Update(runes("w"))
	frame(m, clock, 100*time.Millisecond)

	if z := m.sess.Rig.Position.Z(); z >= 0 {
		t.Fatalf("expected forward motion, got z=%f", z)
	}

	// Autorepeat keeps the key held past the first window.
	clock.advance(400 * time.Millisecond)
	m.Update(runes("w"))
	frame(m, clock, 100*time.Millisecond)
	if m.sess.Snapshot().Move.Z() != -1 {
		t.Fatal("key released during autorepeat")
	}

	frame(m, clock, 100*time.Millisecond)
	if m.sess.Snapshot().Move != (mgl64.Vec3{}) {
		t.Errorf("expected release after repeat window, move=%v", m.sess.Snapshot().Move)
	}
}

func TestModelUpperCaseHoldsShift(t *testing.T) {
	m, clock := newTestModel(t)

	m.Update(runes("W"))
	if !m.sess.Snapshot().Slow {
		t.Error("upper-case letter should hold the speed modifier")
	}

	frame(m, clock, time.Second)
	if m.sess.Snapshot().Slow {
		t.Error("speed modifier not released")
	}
}

func TestModelQuitReleasesKeys(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(runes("d"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.sess.Snapshot().Move != (mgl64.Vec3{}) {
		t.Error("held key not released on quit")
	}
}

func TestModelMouse(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(tea.MouseMsg{X: 41, Y: 12, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	snap := m.sess.Snapshot()
	if snap.Move.Z() != -1 {
		t.Errorf("primary button should thrust forward, move=%v", snap.Move)
	}
	if snap.Rotate != (mgl64.Vec3{}) {
		t.Errorf("press at centre should not rotate, got %v", snap.Rotate)
	}

	m.Update(tea.MouseMsg{X: 81, Y: 12, Action: tea.MouseActionMotion})
	if got := m.sess.Snapshot().Rotate.Y(); got != -1 {
		t.Errorf("expected full yaw at right edge, got %f", got)
	}

	m.Update(tea.MouseMsg{X: 81, Y: 12, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
	if m.sess.Snapshot().Move != (mgl64.Vec3{}) {
		t.Error("release should stop thrust")
	}

	m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if m.pressed {
		t.Error("wheel should be ignored")
	}
}

func TestModelConfigReload(t *testing.T) {
	m, _ := newTestModel(t)

	cfg := config.DefaultConfig()
	cfg.MovementSpeed = 3
	cfg.Terminal.FirstRepeatMs = 900
	m.Update(configMsg{cfg})

	if m.sess.Controller.MovementSpeed != 3 {
		t.Errorf("expected speed 3, got %f", m.sess.Controller.MovementSpeed)
	}
	if m.held.first != 900*time.Millisecond {
		t.Errorf("repeat window not updated: %v", m.held.first)
	}

	bad := config.DefaultConfig()
	bad.Extras["t"] = "teleport"
	m.Update(configMsg{bad})
	if !strings.HasPrefix(m.status, "config:") {
		t.Errorf("expected error status, got %q", m.status)
	}
	if m.sess.Controller.MovementSpeed != 3 {
		t.Error("rejected config changed the controller")
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(runes("a"))

	out := m.View()
	for _, want := range []string{"flycam", "default", "pos", "keys", "esc quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestLiveRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 20, 8, 0)

	r.OnStep(sim.Sample{Time: 0, Position: mgl64.Vec3{0, 0, 30}, Rotation: mgl64.QuatIdent()})
	r.OnStep(sim.Sample{Time: 0.1, Position: mgl64.Vec3{0, 0, 29}, Rotation: mgl64.QuatIdent()})
	r.Close()

	if r.Frames() != 2 {
		t.Errorf("expected 2 frames, got %d", r.Frames())
	}
	out := buf.String()
	if !strings.Contains(out, "t=  0.10s") {
		t.Errorf("missing status line in %q", out)
	}
	if !strings.HasSuffix(out, showCursor) {
		t.Error("cursor not restored")
	}
}
