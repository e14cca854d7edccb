package tui

import (
	"fmt"
	"strings"

	"github.com/san-kum/flycam/internal/flight"
	"github.com/san-kum/flycam/internal/input"
	"github.com/san-kum/flycam/internal/viz"
)

func (m *Model) View() string {
	m.canvas.Clear()
	m.cam.Follow(m.sess.Rig)
	viz.Render(m.canvas, m.world, m.cam)

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("flycam") + " " + m.styles.Label.Render(m.preset) + "\n")
	b.WriteString(m.styles.Frame.Render(m.canvas.String()) + "\n")
	b.WriteString(m.hud() + "\n")
	b.WriteString(m.hint())
	return b.String()
}

func (m *Model) hud() string {
	snap := m.sess.Snapshot()
	p := snap.Position
	parts := []string{
		m.styles.Label.Render("pos ") + m.styles.Value.Render(fmt.Sprintf("%7.2f %7.2f %7.2f", p.X(), p.Y(), p.Z())),
		m.styles.Label.Render("speed ") + m.styles.Value.Render(fmt.Sprintf("%.2f", m.sess.Controller.MovementSpeed)),
		m.styles.Label.Render("fps ") + m.styles.Value.Render(fmt.Sprintf("%.0f", m.fps)),
	}

	flag := func(on bool, name string) string {
		if on {
			return m.styles.Active.Render(name)
		}
		return m.styles.Label.Render(name)
	}
	parts = append(parts,
		flag(snap.AutoForward, "AUTO"),
		flag(snap.DragToLook, "DRAG"),
		flag(snap.Slow, "SLOW"),
	)

	if held := m.held.held(); len(held) > 0 {
		names := make([]string, len(held))
		for i, c := range held {
			names[i] = c.String()
		}
		parts = append(parts, m.styles.Label.Render("keys ")+m.styles.Value.Render(strings.Join(names, "+")))
	}
	if m.status != "" {
		parts = append(parts, m.styles.Warning.Render(m.status))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) hint() string {
	b := m.sess.Controller.Bindings
	keys := func(axes ...flight.Axis) string {
		names := make([]string, 0, len(axes))
		for _, a := range axes {
			if code := b.Code(a); code != input.KeyNone {
				names = append(names, code.String())
			}
		}
		return strings.Join(names, "")
	}

	hints := []string{
		keys(flight.Forward, flight.Left, flight.Back, flight.Right) + " move",
		keys(flight.Up, flight.Down) + " rise/sink",
		keys(flight.RollLeft, flight.RollRight) + " roll",
	}
	if b.SpeedModifier != input.KeyNone {
		hints = append(hints, b.SpeedModifier.String()+" slow")
	}
	hints = append(hints, "mouse look", "esc quit")
	return m.styles.Hint.Render(strings.Join(hints, " · "))
}
