package gui

import (
	"sort"

	"github.com/san-kum/flycam/internal/input"
)

// device is the per-frame input state the window exposes.
type device interface {
	KeyPressed(key int32) bool
	KeyReleased(key int32) bool
	KeyDown(key int32) bool
	ButtonPressed(b int32) bool
	ButtonReleased(b int32) bool
	MousePosition() (x, y float64)
}

// pump converts frame polling into discrete events. Keys sharing a code are
// tracked so that releasing one shift key while the other is held does not
// release shift.
type pump struct {
	keys    []int32
	buttons []int32
	down    map[input.Code]int
	lastX   float64
	lastY   float64
	moved   bool
}

func newPump() *pump {
	p := &pump{down: make(map[input.Code]int)}
	for k := range keyTable {
		p.keys = append(p.keys, k)
	}
	sort.Slice(p.keys, func(i, j int) bool { return p.keys[i] < p.keys[j] })
	for b := range buttonTable {
		p.buttons = append(p.buttons, b)
	}
	sort.Slice(p.buttons, func(i, j int) bool { return p.buttons[i] < p.buttons[j] })
	return p
}

// poll returns this frame's events in order: pointer motion, buttons, keys.
func (p *pump) poll(dev device) []*input.Event {
	var events []*input.Event

	x, y := dev.MousePosition()
	if !p.moved || x != p.lastX || y != p.lastY {
		p.lastX, p.lastY, p.moved = x, y, true
		events = append(events, input.NewPointerMove(x, y))
	}

	for _, b := range p.buttons {
		if dev.ButtonPressed(b) {
			events = append(events, input.NewPointerDown(buttonTable[b]))
		}
		if dev.ButtonReleased(b) {
			events = append(events, input.NewPointerUp(buttonTable[b]))
		}
	}

	alt := false
	for _, k := range altKeys {
		alt = alt || dev.KeyDown(k)
	}
	for _, k := range p.keys {
		code := keyTable[k]
		if dev.KeyPressed(k) {
			if p.down[code] == 0 {
				events = append(events, input.NewKeyDown(code, alt))
			}
			p.down[code]++
		}
		if dev.KeyReleased(k) && p.down[code] > 0 {
			p.down[code]--
			if p.down[code] == 0 {
				events = append(events, input.NewKeyUp(code))
			}
		}
	}
	return events
}
