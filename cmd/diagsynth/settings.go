package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"diagsynth/internal/config"
)

// loadSettings reads diagsynth.toml (from --config or the nearest one above the
// working directory) and applies command-line overrides on top of it.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	root := cmd.Root().PersistentFlags()
	path, err := root.GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return config.Config{}, err
	}

	if root.Changed("color") {
		if cfg.Output.Color, err = root.GetString("color"); err != nil {
			return cfg, err
		}
	}
	if root.Changed("max-diagnostics") {
		if cfg.Output.MaxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
			return cfg, err
		}
	}

	local := cmd.Flags()
	overrides := []struct {
		flag string
		dst  *string
	}{
		{"mode", &cfg.Report.Mode},
		{"format", &cfg.Output.Format},
		{"path-mode", &cfg.Output.PathMode},
	}
	for _, o := range overrides {
		if local.Lookup(o.flag) == nil || !local.Changed(o.flag) {
			continue
		}
		if *o.dst, err = local.GetString(o.flag); err != nil {
			return cfg, fmt.Errorf("failed to get %s flag: %w", o.flag, err)
		}
	}
	if local.Lookup("fullpath") != nil {
		full, err := local.GetBool("fullpath")
		if err != nil {
			return cfg, fmt.Errorf("failed to get fullpath flag: %w", err)
		}
		if full {
			cfg.Output.PathMode = "absolute"
		}
	}
	if local.Lookup("jobs") != nil && local.Changed("jobs") {
		if cfg.Run.Jobs, err = local.GetInt("jobs"); err != nil {
			return cfg, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if local.Lookup("cache") != nil && local.Changed("cache") {
		if cfg.Run.Cache, err = local.GetBool("cache"); err != nil {
			return cfg, fmt.Errorf("failed to get cache flag: %w", err)
		}
	}
	return cfg, nil
}
