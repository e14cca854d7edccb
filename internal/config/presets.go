package config

import "sort"

var presets = map[string]func(c *Config){
	"default": func(c *Config) {},
	"slow": func(c *Config) {
		c.MovementSpeed = 0.25
		c.RollSpeed = 0.002
	},
	"drone": func(c *Config) {
		c.MovementSpeed = 5
		c.RollSpeed = 0.5
		c.DragToLook = true
		c.AutoForward = true
	},
	"arcade": func(c *Config) {
		c.MovementSpeed = 20
		c.RollSpeed = 1
		c.Extras["b"] = "boost"
	},
	"inspect": func(c *Config) {
		c.MovementSpeed = 2
		c.RollSpeed = 0.3
		c.DragToLook = true
		c.Rig.Position = Vec3Config{X: 12, Y: 8, Z: 12}
	},
}

// GetPreset returns a fresh configuration for name, or nil if there is none.
func GetPreset(name string) *Config {
	apply, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
