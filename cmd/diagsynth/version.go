package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"diagsynth/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show diagsynth build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
		info := version.Current()
		switch strings.ToLower(format) {
		case "json":
			data, err := info.JSON()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		case "pretty":
			colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
			if err != nil {
				return fmt.Errorf("failed to get color flag: %w", err)
			}
			switch colorFlag {
			case "on":
				color.NoColor = false
			case "off":
				color.NoColor = true
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), info.Text())
			return err
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
		}
	},
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}
