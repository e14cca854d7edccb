package input

import "fmt"

// Kind discriminates the events a surface emits.
type Kind int

const (
	PointerMove Kind = iota
	PointerDown
	PointerUp
	KeyDown
	KeyUp
	numKinds
)

var kindNames = [numKinds]string{"pointermove", "pointerdown", "pointerup", "keydown", "keyup"}

func (k Kind) valid() bool { return k >= 0 && k < numKinds }

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind accepts the lower-case names used in replay scripts.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// Kinds returns every event kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary   Button = 0
	ButtonMiddle    Button = 1
	ButtonSecondary Button = 2
)

// Event is a single input event. Which fields are meaningful depends on Kind:
// key events carry Code and Alt, pointer-down/up carry Button, pointer-move
// carries the page coordinates X and Y.
type Event struct {
	Kind   Kind
	Code   Code
	Alt    bool
	Button Button
	X, Y   float64

	prevented bool
	stopped   bool
}

func NewKeyDown(code Code, alt bool) *Event {
	return &Event{Kind: KeyDown, Code: code, Alt: alt}
}

func NewKeyUp(code Code) *Event {
	return &Event{Kind: KeyUp, Code: code}
}

func NewPointerDown(b Button) *Event {
	return &Event{Kind: PointerDown, Button: b}
}

func NewPointerUp(b Button) *Event {
	return &Event{Kind: PointerUp, Button: b}
}

func NewPointerMove(x, y float64) *Event {
	return &Event{Kind: PointerMove, X: x, Y: y}
}

// PreventDefault asks the host to skip its own handling of the event.
func (e *Event) PreventDefault() { e.prevented = true }

// StopPropagation stops the remaining listeners of the current dispatch.
func (e *Event) StopPropagation() { e.stopped = true }

func (e *Event) DefaultPrevented() bool  { return e.prevented }
func (e *Event) PropagationStopped() bool { return e.stopped }

func (e *Event) String() string {
	switch e.Kind {
	case KeyDown, KeyUp:
		if e.Alt {
			return fmt.Sprintf("%s alt+%s", e.Kind, e.Code)
		}
		return fmt.Sprintf("%s %s", e.Kind, e.Code)
	case PointerDown, PointerUp:
		return fmt.Sprintf("%s button=%d", e.Kind, e.Button)
	default:
		return fmt.Sprintf("%s (%.1f, %.1f)", e.Kind, e.X, e.Y)
	}
}
