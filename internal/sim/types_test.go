package sim

import (
	"errors"
	"testing"

	"github.com/san-kum/flycam/internal/input"
)

func TestParseScript(t *testing.T) {
	data := []byte(`
name: climb
dt: 0.05
duration: 2
events:
  - {at: 1.0, type: keyup, key: r}
  - {at: 0, type: keydown, key: r, alt: false}
  - {at: 0.5, type: pointerdown, button: 2}
`)
	s, err := ParseScript(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if s.Name != "climb" || s.Dt != 0.05 || s.Duration != 2 {
		t.Errorf("unexpected header: %+v", s)
	}
	if s.Surface.Width != 800 {
		t.Errorf("expected default surface width, got %f", s.Surface.Width)
	}
	for i := 1; i < len(s.Events); i++ {
		if s.Events[i].At < s.Events[i-1].At {
			t.Fatalf("events not sorted: %+v", s.Events)
		}
	}

	ev, err := s.Events[1].Event()
	if err != nil {
		t.Fatal(err)
	}
	if ev.Kind != input.PointerDown || ev.Button != input.ButtonSecondary {
		t.Errorf("unexpected event %v", ev)
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"unknown type", "events: [{type: wheel}]", ErrUnknownEvent},
		{"unknown key", "events: [{type: keydown, key: hyper}]", input.ErrUnknownKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestScriptEventKeys(t *testing.T) {
	ev, err := ScriptEvent{Type: "keydown", Key: "W", Alt: true}.Event()
	if err != nil {
		t.Fatal(err)
	}
	if ev.Code != input.KeyW || !ev.Alt {
		t.Errorf("unexpected event %v", ev)
	}

	ev, err = ScriptEvent{Type: "pointermove", X: 3, Y: 4}.Event()
	if err != nil {
		t.Fatal(err)
	}
	if ev.X != 3 || ev.Y != 4 {
		t.Errorf("unexpected event %v", ev)
	}
}

func TestResultFinalEmpty(t *testing.T) {
	r := &Result{}
	if r.Final().Rotation.W != 1 {
		t.Error("empty result should report identity rotation")
	}
}
