package input

import (
	"errors"
	"testing"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		want Code
	}{
		{"w", 87},
		{"W", 87},
		{"shift", 16},
		{"up", KeyArrowUp},
		{"down", KeyArrowDown},
		{"left", KeyArrowLeft},
		{"right", KeyArrowRight},
		{"q", 81},
		{"e", 69},
		{"0", 48},
		{"9", 57},
		{"esc", KeyEscape},
		{"Space", KeySpace},
		{" ", KeySpace},
		{"f1", KeyF1},
		{"F12", KeyF12},
	}

	for _, tt := range tests {
		got, err := ParseKey(tt.name)
		if err != nil {
			t.Errorf("ParseKey(%q) failed: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKey(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestArrowCodesAreKeyCodes(t *testing.T) {
	arrows := map[Code]Code{KeyArrowLeft: 37, KeyArrowUp: 38, KeyArrowRight: 39, KeyArrowDown: 40}
	for got, want := range arrows {
		if got != want {
			t.Errorf("arrow code %d, want %d", got, want)
		}
	}
	if e := NewKeyDown(KeyArrowUp, false); e.Kind != KeyDown || e.Code != 38 {
		t.Errorf("arrow key down = %+v", e)
	}
}

func TestParseKeyUnknown(t *testing.T) {
	for _, name := range []string{"", "ww", "f13", "f0", "hyper"} {
		if _, err := ParseKey(name); !errors.Is(err, ErrUnknownKey) {
			t.Errorf("ParseKey(%q) error = %v, want ErrUnknownKey", name, err)
		}
	}
}

func TestCodeString(t *testing.T) {
	for _, name := range []string{"w", "shift", "up", "7", "f5", "space"} {
		if s := MustParseKey(name).String(); s != name {
			t.Errorf("%q round tripped to %q", name, s)
		}
	}
	if s := Code(999).String(); s != "999" {
		t.Errorf("unexpected name for unmapped code: %q", s)
	}
}
