package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Explicit path takes priority
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		return nil, err
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile returns defaults overlaid with the YAML file at path. Structure
// paths in the file are taken relative to its directory. An empty path
// yields the defaults. The result is not validated.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if err := loadFromFile(cfg, path); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	resolveRelative(cfg, filepath.Dir(path))
	return cfg, nil
}

// Validate rejects settings the camera and projection math cannot use.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180 {
		errs = append(errs, fmt.Errorf("camera.fov_degrees %v must be in (0, 180)", c.Camera.FOVDegrees))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip range near=%v far=%v needs 0 < near < far", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.DistanceFactor <= 0 {
		errs = append(errs, fmt.Errorf("camera.distance_factor %v must be positive", c.Camera.DistanceFactor))
	}
	if c.Structure.Nodes == "" || c.Structure.Edges == "" {
		errs = append(errs, errors.New("structure.nodes and structure.edges are required"))
	}
	return errors.Join(errs...)
}

// resolveRelative makes structure paths from a config file relative to
// that file's directory.
func resolveRelative(cfg *Config, dir string) {
	for _, p := range []*string{&cfg.Structure.Nodes, &cfg.Structure.Edges} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./frameview.yaml",
		filepath.Join(ConfigDir(), "frameview.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "frameview")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "frameview")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "frameview")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "frameview")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
