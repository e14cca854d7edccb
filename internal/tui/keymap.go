package tui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/flycam/internal/input"
)

var specialKeys = map[tea.KeyType]input.Code{
	tea.KeyUp:        input.KeyArrowUp,
	tea.KeyDown:      input.KeyArrowDown,
	tea.KeyLeft:      input.KeyArrowLeft,
	tea.KeyRight:     input.KeyArrowRight,
	tea.KeySpace:     input.KeySpace,
	tea.KeyEnter:     input.KeyEnter,
	tea.KeyTab:       input.KeyTab,
	tea.KeyBackspace: input.KeyBackspace,
	tea.KeyF1:        input.KeyF1,
	tea.KeyF2:        input.KeyF1 + 1,
	tea.KeyF3:        input.KeyF1 + 2,
	tea.KeyF4:        input.KeyF1 + 3,
	tea.KeyF5:        input.KeyF1 + 4,
	tea.KeyF6:        input.KeyF1 + 5,
	tea.KeyF7:        input.KeyF1 + 6,
	tea.KeyF8:        input.KeyF1 + 7,
	tea.KeyF9:        input.KeyF1 + 8,
	tea.KeyF10:       input.KeyF1 + 9,
	tea.KeyF11:       input.KeyF1 + 10,
	tea.KeyF12:       input.KeyF12,
}

// keyStroke is a terminal key translated to input codes. Terminals only
// report shift through the character itself, so upper-case letters carry
// shift as a separate held key.
type keyStroke struct {
	code  input.Code
	shift bool
	alt   bool
}

func translateKey(msg tea.KeyMsg) (keyStroke, bool) {
	if code, ok := specialKeys[msg.Type]; ok {
		return keyStroke{code: code, alt: msg.Alt}, true
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return keyStroke{}, false
	}
	r := msg.Runes[0]
	code, err := input.ParseKey(string(r))
	if err != nil {
		return keyStroke{}, false
	}
	return keyStroke{code: code, shift: unicode.IsUpper(r), alt: msg.Alt}, true
}

func translateButton(b tea.MouseButton) (input.Button, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return input.ButtonPrimary, true
	case tea.MouseButtonMiddle:
		return input.ButtonMiddle, true
	case tea.MouseButtonRight:
		return input.ButtonSecondary, true
	}
	return 0, false
}
