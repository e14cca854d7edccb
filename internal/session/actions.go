package session

import "sort"

const boostFactor = 4

type action struct {
	press   func()
	release func()
}

func (s *Session) builtinActions() map[string]action {
	return map[string]action{
		"toggle_auto_forward": {press: func() {
			s.Controller.SetAutoForward(!s.Controller.AutoForward())
		}},
		"toggle_drag_to_look": {press: func() {
			s.Controller.SetDragToLook(!s.Controller.DragToLook())
		}},
		"toggle_pointer": {press: func() {
			s.Controller.PointerEnabled = !s.Controller.PointerEnabled
		}},
		"reset": {press: func() {
			s.Controller.Reset()
			s.ResetRig()
		}},
		// Boost multiplies movement speed while held.
		"boost": {
			press: func() {
				if !s.boosted {
					s.Controller.MovementSpeed *= boostFactor
					s.boosted = true
				}
			},
			release: func() {
				if s.boosted {
					s.Controller.MovementSpeed /= boostFactor
					s.boosted = false
				}
			},
		},
	}
}

// Actions lists the names usable in a configuration's extras table.
func Actions() []string {
	names := make([]string, 0)
	for name := range (&Session{}).builtinActions() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
