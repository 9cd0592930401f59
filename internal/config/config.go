// Package config loads diagsynth.toml, discovered upward from the working directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the config file searched for.
const FileName = "diagsynth.toml"

type Config struct {
	// Path is the file the config was read from; empty for defaults.
	Path   string       `toml:"-"`
	Report ReportConfig `toml:"report"`
	Output OutputConfig `toml:"output"`
	Run    RunConfig    `toml:"run"`
}

type ReportConfig struct {
	Mode string `toml:"mode"`
}

type OutputConfig struct {
	Format         string `toml:"format"`
	PathMode       string `toml:"path_mode"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Color          string `toml:"color"`
}

type RunConfig struct {
	Jobs  int  `toml:"jobs"`
	Cache bool `toml:"cache"`
}

// Default is the configuration used when no file is found.
func Default() Config {
	return Config{
		Report: ReportConfig{Mode: "friendly"},
		Output: OutputConfig{Format: "pretty", PathMode: "auto", MaxDiagnostics: 100, Color: "auto"},
	}
}

var (
	modes     = []string{"classic", "friendly"}
	formats   = []string{"pretty", "json", "msgpack", "short"}
	pathModes = []string{"absolute", "relative", "basename", "auto"}
	colors    = []string{"auto", "on", "off"}
)

// Find looks for FileName in startDir and its parents.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover returns the nearest config above startDir, or the defaults.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return Default(), err
	}
	return Load(path)
}

// Load reads path over the defaults; keys missing from the file keep their default.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path

	checks := []struct {
		key     []string
		value   string
		allowed []string
	}{
		{[]string{"report", "mode"}, cfg.Report.Mode, modes},
		{[]string{"output", "format"}, cfg.Output.Format, formats},
		{[]string{"output", "path_mode"}, cfg.Output.PathMode, pathModes},
		{[]string{"output", "color"}, cfg.Output.Color, colors},
	}
	for _, c := range checks {
		if meta.IsDefined(c.key...) && !oneOf(c.value, c.allowed) {
			return Config{}, fmt.Errorf("%s: [%s].%s must be one of %s, got %q",
				path, c.key[0], c.key[1], strings.Join(c.allowed, "|"), c.value)
		}
	}
	if meta.IsDefined("output", "max_diagnostics") && cfg.Output.MaxDiagnostics < 0 {
		return Config{}, fmt.Errorf("%s: [output].max_diagnostics must not be negative", path)
	}
	if meta.IsDefined("run", "jobs") && cfg.Run.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [run].jobs must not be negative", path)
	}
	return cfg, nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
