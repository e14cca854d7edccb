package tui

import (
	"sort"
	"time"

	"github.com/san-kum/flycam/internal/input"
)

// heldKeys turns a stream of key presses and autorepeats into press and
// release pairs. A key counts as released once no repeat arrives inside its
// window: the first window covers the terminal's initial repeat delay, later
// ones the repeat interval.
type heldKeys struct {
	first    time.Duration
	repeat   time.Duration
	deadline map[input.Code]time.Time
}

func newHeldKeys(first, repeat time.Duration) *heldKeys {
	return &heldKeys{first: first, repeat: repeat, deadline: make(map[input.Code]time.Time)}
}

// press records a key report and returns true when the key was not held.
func (h *heldKeys) press(code input.Code, now time.Time) bool {
	if _, ok := h.deadline[code]; ok {
		h.deadline[code] = now.Add(h.repeat)
		return false
	}
	h.deadline[code] = now.Add(h.first)
	return true
}

// expire removes and returns keys whose window has passed, in code order.
func (h *heldKeys) expire(now time.Time) []input.Code {
	var out []input.Code
	for code, d := range h.deadline {
		if !now.Before(d) {
			out = append(out, code)
			delete(h.deadline, code)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// releaseAll empties the set and returns what was held.
func (h *heldKeys) releaseAll() []input.Code {
	return h.expire(time.Unix(1<<40, 0))
}

func (h *heldKeys) held() []input.Code {
	out := make([]input.Code, 0, len(h.deadline))
	for code := range h.deadline {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (h *heldKeys) setWindows(first, repeat time.Duration) {
	h.first, h.repeat = first, repeat
}
