package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/flycam/internal/flight"
	"github.com/san-kum/flycam/internal/input"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MovementSpeed != 1.0 {
		t.Errorf("expected movement speed 1.0, got %f", cfg.MovementSpeed)
	}
	if cfg.RollSpeed != 0.005 {
		t.Errorf("expected roll speed 0.005, got %f", cfg.RollSpeed)
	}
	if !cfg.PointerEnabled {
		t.Error("pointer input should be enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestDefaultBindingsMatchController(t *testing.T) {
	b, err := DefaultConfig().Bindings()
	if err != nil {
		t.Fatalf("bindings failed: %v", err)
	}
	if b != flight.DefaultBindings() {
		t.Errorf("config defaults diverge from controller defaults:\n%+v\n%+v", b, flight.DefaultBindings())
	}
}

func TestParseMergesControls(t *testing.T) {
	cfg, err := Parse([]byte(`
movement_speed: 4
drag_to_look: true
controls:
  forward: z
  speed_modifier: none
extras:
  space: none
  t: boost
`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cfg.MovementSpeed != 4 || !cfg.DragToLook {
		t.Errorf("scalar fields not decoded: %+v", cfg)
	}
	if !cfg.PointerEnabled {
		t.Error("omitted pointer_enabled should keep its default")
	}

	b, err := cfg.Bindings()
	if err != nil {
		t.Fatalf("bindings failed: %v", err)
	}
	if b.Code(flight.Forward) != input.KeyZ {
		t.Errorf("expected forward on z, got %s", b.Code(flight.Forward))
	}
	if b.Code(flight.Back) != input.KeyS {
		t.Errorf("unmentioned axes should keep defaults, back on %s", b.Code(flight.Back))
	}
	if b.SpeedModifier != input.KeyNone {
		t.Errorf("speed modifier should be unbound, got %s", b.SpeedModifier)
	}

	extras, err := cfg.ExtraKeys()
	if err != nil {
		t.Fatalf("extras failed: %v", err)
	}
	if _, ok := extras[input.KeySpace]; ok {
		t.Error("space should have been unbound")
	}
	if extras[input.MustParseKey("t")] != "boost" {
		t.Errorf("expected t -> boost, got %q", extras[input.MustParseKey("t")])
	}
}

func TestCamelCaseAxisNames(t *testing.T) {
	cfg := DefaultConfig()
	delete(cfg.Controls, "roll_left")
	cfg.Controls["rollLeft"] = "z"

	b, err := cfg.Bindings()
	if err != nil {
		t.Fatalf("bindings failed: %v", err)
	}
	if b.Code(flight.RollLeft) != input.KeyZ {
		t.Errorf("expected rollLeft on z, got %s", b.Code(flight.RollLeft))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown axis", "controls:\n  sideways: x\n", ErrUnknownAxis},
		{"unknown key", "controls:\n  forward: hyper\n", input.ErrUnknownKey},
		{"unknown extra key", "extras:\n  hyper: reset\n", input.ErrUnknownKey},
		{"negative speed", "movement_speed: -1\n", ErrInvalidConfig},
		{"empty viewport", "viewport:\n  width: 0\n", ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flycam.yaml")
	cfg := GetPreset("drone")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.MovementSpeed != cfg.MovementSpeed || loaded.AutoForward != cfg.AutoForward || loaded.DragToLook != cfg.DragToLook {
		t.Errorf("loaded config differs: %+v vs %+v", loaded, cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("slow")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.MovementSpeed != 0.25 {
		t.Errorf("expected movement speed 0.25, got %f", cfg.MovementSpeed)
	}

	arcade := GetPreset("arcade")
	if arcade.Extras["b"] != "boost" {
		t.Error("arcade preset should bind boost")
	}
	if _, ok := GetPreset("default").Extras["b"]; ok {
		t.Error("presets must not share extras tables")
	}
}

func TestGetPresetNotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestClone(t *testing.T) {
	cfg := DefaultConfig()
	c := cfg.Clone()
	c.Controls["forward"] = "z"
	c.Extras["t"] = "boost"

	if cfg.Controls["forward"] != "w" {
		t.Error("clone shares controls with original")
	}
	if _, ok := cfg.Extras["t"]; ok {
		t.Error("clone shares extras with original")
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flycam.yaml")
	if err := Save(path, DefaultConfig()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("watcher failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("movement_speed: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Changes:
		if filepath.Base(got) != "flycam.yaml" {
			t.Errorf("unexpected change for %s", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
	}

	if err := w.Close(); err != nil {
		t.Errorf("close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second close failed: %v", err)
	}
}

func TestWatcherCoalescesBurst(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flycam.yaml")
	if err := Save(path, DefaultConfig()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("watcher failed: %v", err)
	}
	defer w.Close()

	for i := 1; i <= 5; i++ {
		if err := os.WriteFile(path, []byte(fmt.Sprintf("movement_speed: %d\n", i)), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(debounce / 5)
	}

	select {
	case <-w.Changes:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load after change failed: %v", err)
	}
	if cfg.MovementSpeed != 5 {
		t.Errorf("reloaded movement speed %f, want 5", cfg.MovementSpeed)
	}

	select {
	case got := <-w.Changes:
		t.Errorf("burst reported twice: %s", got)
	case <-time.After(3 * debounce):
	}
}
