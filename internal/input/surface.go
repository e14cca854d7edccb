package input

import (
	"sync"
)

// Rect is the rendered box of a surface in page coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Center returns the page coordinates of the middle of the box.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Handler receives events dispatched to a surface.
type Handler func(*Event)

// ListenerID identifies a registration so it can be removed again.
type ListenerID uint64

type listener struct {
	id ListenerID
	fn Handler
}

// Surface dispatches events to the listeners registered for each kind.
// Dispatch is synchronous: handlers run on the caller's goroutine, in
// registration order, and each runs to completion before the next.
type Surface struct {
	mu        sync.RWMutex
	listeners [numKinds][]listener
	nextID    ListenerID

	bounds   Rect
	isGlobal bool
	tabIndex int
	focused  bool
}

// NewElement creates a specific surface occupying the given box.
func NewElement(bounds Rect) *Surface {
	return &Surface{bounds: bounds}
}

var (
	globalOnce sync.Once
	global     *Surface
)

// DefaultViewport is the size reported by the global surface until the host sets one.
var DefaultViewport = Rect{Width: 1280, Height: 720}

// Global returns the process-wide default input target. Its bounds are the
// viewport with a zero offset.
func Global() *Surface {
	globalOnce.Do(func() {
		global = &Surface{bounds: DefaultViewport, isGlobal: true}
	})
	return global
}

func (s *Surface) IsDefault() bool { return s.isGlobal }

// Listen registers fn for events of kind k. An unknown kind registers
// nothing and returns the zero id.
func (s *Surface) Listen(k Kind, fn Handler) ListenerID {
	if !k.valid() || fn == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.listeners[k] = append(s.listeners[k], listener{id: s.nextID, fn: fn})
	return s.nextID
}

// Unlisten removes a registration. Unknown ids are ignored.
func (s *Surface) Unlisten(id ListenerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.listeners {
		ls := s.listeners[k]
		for i, l := range ls {
			if l.id == id {
				s.listeners[k] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// Listeners reports how many handlers are registered for k.
func (s *Surface) Listeners(k Kind) int {
	if !k.valid() {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listeners[k])
}

// Dispatch delivers e to the listeners of its kind and reports whether any
// handler asked to suppress the host's default handling.
func (s *Surface) Dispatch(e *Event) bool {
	if e == nil || !e.Kind.valid() {
		return false
	}
	s.mu.RLock()
	ls := make([]listener, len(s.listeners[e.Kind]))
	copy(ls, s.listeners[e.Kind])
	s.mu.RUnlock()

	for _, l := range ls {
		l.fn(e)
		if e.stopped {
			break
		}
	}
	return e.prevented
}

func (s *Surface) Bounds() Rect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.isGlobal {
		return Rect{Width: s.bounds.Width, Height: s.bounds.Height}
	}
	return s.bounds
}

// SetBounds updates the rendered box, or the viewport size for the global surface.
func (s *Surface) SetBounds(r Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds = r
}

func (s *Surface) SetTabIndex(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabIndex = i
}

func (s *Surface) TabIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tabIndex
}

// Focus makes the surface the input focus target.
func (s *Surface) Focus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focused = true
}

func (s *Surface) Blur() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focused = false
}

func (s *Surface) Focused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.focused
}
