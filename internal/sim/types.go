package sim

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/flycam/internal/input"
)

// Script is a timed sequence of input events replayed against a session.
type Script struct {
	Name     string        `yaml:"name"`
	Dt       float64       `yaml:"dt"`
	Duration float64       `yaml:"duration"`
	Surface  SurfaceConfig `yaml:"surface"`
	Events   []ScriptEvent `yaml:"events"`
}

type SurfaceConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ScriptEvent is one entry of a script. Type is an input.Kind name.
type ScriptEvent struct {
	At     float64 `yaml:"at"`
	Type   string  `yaml:"type"`
	Key    string  `yaml:"key,omitempty"`
	Alt    bool    `yaml:"alt,omitempty"`
	Button int     `yaml:"button,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
}

// Event converts the entry to an input event.
func (e ScriptEvent) Event() (*input.Event, error) {
	kind, ok := input.ParseKind(e.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, e.Type)
	}
	switch kind {
	case input.KeyDown, input.KeyUp:
		code, err := input.ParseKey(e.Key)
		if err != nil {
			return nil, err
		}
		if kind == input.KeyDown {
			return input.NewKeyDown(code, e.Alt), nil
		}
		return input.NewKeyUp(code), nil
	case input.PointerDown:
		return input.NewPointerDown(input.Button(e.Button)), nil
	case input.PointerUp:
		return input.NewPointerUp(input.Button(e.Button)), nil
	default:
		return input.NewPointerMove(e.X, e.Y), nil
	}
}

func DefaultScript() *Script {
	return &Script{
		Name:     "replay",
		Dt:       1.0 / 60,
		Duration: 5,
		Surface:  SurfaceConfig{Width: 800, Height: 600},
	}
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScript(data)
}

func ParseScript(data []byte) (*Script, error) {
	s := DefaultScript()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	sort.SliceStable(s.Events, func(i, j int) bool { return s.Events[i].At < s.Events[j].At })
	for i, e := range s.Events {
		if _, err := e.Event(); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
	}
	return s, nil
}

// Sample is the rig state recorded after one step.
type Sample struct {
	Time     float64
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Move     mgl64.Vec3
	Rotate   mgl64.Vec3
}

type Result struct {
	Samples    []Sample
	Dispatched int
	Distance   float64
	Metrics    map[string]float64
}

func (r *Result) Final() Sample {
	if len(r.Samples) == 0 {
		return Sample{Rotation: mgl64.QuatIdent()}
	}
	return r.Samples[len(r.Samples)-1]
}

// Observer is notified after every step.
type Observer interface {
	OnStep(s Sample)
}
