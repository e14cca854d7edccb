package input

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey is returned by ParseKey for names outside the key table.
var ErrUnknownKey = errors.New("input: unknown key name")

// Code is a key code in DOM keyCode numbering.
type Code int

// Key codes. Printable keys use their upper-case ASCII value.
const (
	KeyNone       Code = 0
	KeyBackspace  Code = 8
	KeyTab        Code = 9
	KeyEnter      Code = 13
	KeyShift      Code = 16
	KeyCtrl       Code = 17
	KeyAlt        Code = 18
	KeyEscape     Code = 27
	KeySpace      Code = 32
	KeyArrowLeft  Code = 37
	KeyArrowUp    Code = 38
	KeyArrowRight Code = 39
	KeyArrowDown  Code = 40

	Key0 Code = 48
	Key9 Code = 57

	KeyA Code = 65
	KeyD Code = 68
	KeyE Code = 69
	KeyF Code = 70
	KeyQ Code = 81
	KeyR Code = 82
	KeyS Code = 83
	KeyW Code = 87
	KeyZ Code = 90

	KeyF1  Code = 112
	KeyF12 Code = 123
)

var namedKeys = map[string]Code{
	"backspace": KeyBackspace,
	"tab":       KeyTab,
	"enter":     KeyEnter,
	"shift":     KeyShift,
	"ctrl":      KeyCtrl,
	"alt":       KeyAlt,
	"escape":    KeyEscape,
	"space":     KeySpace,
	"left":      KeyArrowLeft,
	"up":        KeyArrowUp,
	"right":     KeyArrowRight,
	"down":      KeyArrowDown,
}

var keyAliases = map[string]string{
	"esc":     "escape",
	"control": "ctrl",
	"return":  "enter",
}

// ParseKey resolves a case-insensitive key name to its code.
func ParseKey(name string) (Code, error) {
	if name == " " {
		return KeySpace, nil
	}
	n := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := keyAliases[n]; ok {
		n = alias
	}
	if c, ok := namedKeys[n]; ok {
		return c, nil
	}
	if len(n) == 1 {
		switch ch := n[0]; {
		case ch >= 'a' && ch <= 'z':
			return KeyA + Code(ch-'a'), nil
		case ch >= '0' && ch <= '9':
			return Key0 + Code(ch-'0'), nil
		}
	}
	if strings.HasPrefix(n, "f") {
		var i int
		if _, err := fmt.Sscanf(n, "f%d", &i); err == nil && i >= 1 && i <= 12 && n == fmt.Sprintf("f%d", i) {
			return KeyF1 + Code(i-1), nil
		}
	}
	return KeyNone, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// MustParseKey is ParseKey for names known at compile time.
func MustParseKey(name string) Code {
	c, err := ParseKey(name)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the canonical name, or the decimal code for keys outside the table.
func (c Code) String() string {
	for name, code := range namedKeys {
		if code == c {
			return name
		}
	}
	switch {
	case c >= KeyA && c <= KeyZ:
		return string(rune('a' + (c - KeyA)))
	case c >= Key0 && c <= Key9:
		return string(rune('0' + (c - Key0)))
	case c >= KeyF1 && c <= KeyF12:
		return fmt.Sprintf("f%d", int(c-KeyF1)+1)
	}
	return fmt.Sprintf("%d", int(c))
}
