package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"diagsynth/internal/version"
)

// errHasErrors signals that output was produced and contained errors; the
// process exits 1 without printing anything more.
var errHasErrors = errors.New("diagnostics contain errors")

// traceCleanup stops tracing and profiling. It is set by the root pre-run
// hook; PersistentPostRun is not called when a command fails, so main runs it.
var traceCleanup = func() {}

var rootCmd = &cobra.Command{
	Use:           "diagsynth",
	Short:         "Explain type-checker facts as readable diagnostics",
	Long:          `diagsynth turns machine-level facts emitted by a type checker into ranked, normalised error reports`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		stopTracing, err := setupTracing(cmd)
		if err != nil {
			stopProfiling()
			return err
		}
		traceCleanup = func() {
			stopTracing()
			stopProfiling()
		}
		return nil
	},
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("config", "", "path to diagsynth.toml (default: search upward from the working directory)")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to this file (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace verbosity (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace output format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")
}

// main executes the root command; any error, including rendered error
// diagnostics, exits with status 1.
func main() {
	err := rootCmd.Execute()
	traceCleanup()
	if err != nil {
		if !errors.Is(err, errHasErrors) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
