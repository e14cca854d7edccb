package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/flycam/internal/flight"
	"github.com/san-kum/flycam/internal/input"
)

const (
	DefaultMovementSpeed = 1.0
	DefaultRollSpeed     = 0.005
	DefaultWidth         = 1280
	DefaultHeight        = 720
	DefaultFirstRepeatMs = 600
	DefaultRepeatMs      = 150

	// SpeedModifierKey is the controls entry for the slow-down modifier.
	SpeedModifierKey = "speed_modifier"
	unbound          = "none"
)

var (
	ErrUnknownAxis   = errors.New("config: unknown control axis")
	ErrInvalidConfig = errors.New("config: invalid value")
)

type Config struct {
	MovementSpeed  float64           `yaml:"movement_speed"`
	RollSpeed      float64           `yaml:"roll_speed"`
	PointerEnabled bool              `yaml:"pointer_enabled"`
	DragToLook     bool              `yaml:"drag_to_look"`
	AutoForward    bool              `yaml:"auto_forward"`
	Controls       map[string]string `yaml:"controls"`
	Extras         map[string]string `yaml:"extras"`
	Rig            RigConfig         `yaml:"rig"`
	Viewport       ViewportConfig    `yaml:"viewport"`
	Terminal       TerminalConfig    `yaml:"terminal"`
}

type Vec3Config struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3Config) Vec3() mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

type RigConfig struct {
	Position Vec3Config `yaml:"position"`
	LookAt   Vec3Config `yaml:"look_at"`
}

type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TerminalConfig tunes the key-release synthesis of the terminal frontend.
type TerminalConfig struct {
	FirstRepeatMs int `yaml:"first_repeat_ms"`
	RepeatMs      int `yaml:"repeat_ms"`
}

func DefaultControls() map[string]string {
	return map[string]string{
		SpeedModifierKey: "shift",
		"forward":        "w",
		"back":           "s",
		"left":           "a",
		"right":          "d",
		"up":             "r",
		"down":           "f",
		"pitch_up":       "up",
		"pitch_down":     "down",
		"yaw_left":       "left",
		"yaw_right":      "right",
		"roll_left":      "q",
		"roll_right":     "e",
	}
}

func DefaultConfig() *Config {
	return &Config{
		MovementSpeed:  DefaultMovementSpeed,
		RollSpeed:      DefaultRollSpeed,
		PointerEnabled: true,
		Controls:       DefaultControls(),
		Extras: map[string]string{
			"space": "toggle_auto_forward",
			"g":     "toggle_drag_to_look",
			"0":     "reset",
		},
		Rig: RigConfig{
			Position: Vec3Config{Z: 30},
		},
		Viewport: ViewportConfig{Width: DefaultWidth, Height: DefaultHeight},
		Terminal: TerminalConfig{FirstRepeatMs: DefaultFirstRepeatMs, RepeatMs: DefaultRepeatMs},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults. Controls and extras merge with the
// default tables; map a name to "none" to unbind it.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.MovementSpeed < 0 {
		return fmt.Errorf("%w: movement_speed %f is negative", ErrInvalidConfig, c.MovementSpeed)
	}
	if c.RollSpeed < 0 {
		return fmt.Errorf("%w: roll_speed %f is negative", ErrInvalidConfig, c.RollSpeed)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidConfig, c.Viewport.Width, c.Viewport.Height)
	}
	if c.Terminal.FirstRepeatMs <= 0 || c.Terminal.RepeatMs <= 0 {
		return fmt.Errorf("%w: terminal repeat windows must be positive", ErrInvalidConfig)
	}
	if _, err := c.Bindings(); err != nil {
		return err
	}
	if _, err := c.ExtraKeys(); err != nil {
		return err
	}
	return nil
}

// Bindings converts the controls table. Axis names may be written as
// pitch_up or pitchUp.
func (c *Config) Bindings() (flight.Bindings, error) {
	var b flight.Bindings
	for _, name := range sortedKeys(c.Controls) {
		code, err := parseBinding(c.Controls[name])
		if err != nil {
			return b, fmt.Errorf("controls.%s: %w", name, err)
		}
		if name == SpeedModifierKey {
			b.SpeedModifier = code
			continue
		}
		axis, ok := lookupAxis(name)
		if !ok {
			return b, fmt.Errorf("%w: %q", ErrUnknownAxis, name)
		}
		b.Bind(axis, code)
	}
	return b, nil
}

// ExtraKeys resolves the key side of the extras table. Entries mapped to
// "none" or an empty action are skipped.
func (c *Config) ExtraKeys() (map[input.Code]string, error) {
	out := make(map[input.Code]string, len(c.Extras))
	for _, key := range sortedKeys(c.Extras) {
		action := c.Extras[key]
		if action == "" || action == unbound {
			continue
		}
		code, err := input.ParseKey(key)
		if err != nil {
			return nil, fmt.Errorf("extras: %w", err)
		}
		out[code] = action
	}
	return out, nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Controls = make(map[string]string, len(c.Controls))
	for k, v := range c.Controls {
		out.Controls[k] = v
	}
	out.Extras = make(map[string]string, len(c.Extras))
	for k, v := range c.Extras {
		out.Extras[k] = v
	}
	return &out
}

func parseBinding(key string) (input.Code, error) {
	if key == "" || strings.EqualFold(key, unbound) {
		return input.KeyNone, nil
	}
	return input.ParseKey(key)
}

func lookupAxis(name string) (flight.Axis, bool) {
	norm := strings.ToLower(strings.ReplaceAll(name, "_", ""))
	for _, a := range flight.Axes() {
		if strings.ToLower(a.String()) == norm {
			return a, true
		}
	}
	return 0, false
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
