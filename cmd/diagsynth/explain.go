package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"diagsynth/internal/config"
	"diagsynth/internal/diag"
	"diagsynth/internal/diagfmt"
	"diagsynth/internal/driver"
	"diagsynth/internal/pipeline"
	"diagsynth/internal/report"
)

var explainCmd = &cobra.Command{
	Use:   "explain [flags] <file.facts.yaml|directory>",
	Short: "Render fact documents as diagnostics",
	Long:  `Decode fact documents, rank speculative branches, normalise blame chains and render the resulting diagnostics`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExplain,
}

func init() {
	explainCmd.Flags().String("mode", "friendly", "report mode (classic|friendly)")
	explainCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack|short)")
	explainCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	explainCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	explainCmd.Flags().String("path-mode", "auto", "how to print paths (absolute|relative|basename|auto)")
	explainCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	explainCmd.Flags().String("source-file", "", "override the source_file of every document")
	explainCmd.Flags().Bool("with-notes", true, "include notes in output")
	explainCmd.Flags().Bool("tree", false, "print the classic info tree under each diagnostic")
	explainCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	explainCmd.Flags().Bool("preview", false, "preview fix edits")
	explainCmd.Flags().Bool("cache", false, "reuse rendered diagnostics from the disk cache")
}

// runExplain executes the "explain" command and exits non-zero when any
// rendered diagnostic is an error.
func runExplain(cmd *cobra.Command, args []string) error {
	target := args[0]

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	mode, err := report.ParseMode(cfg.Report.Mode)
	if err != nil {
		return err
	}
	switch cfg.Output.Format {
	case "pretty", "json", "msgpack", "short":
	default:
		return fmt.Errorf("unknown format: %s", cfg.Output.Format)
	}

	flags := cmd.Flags()
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	ui, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	sourceFile, err := flags.GetString("source-file")
	if err != nil {
		return fmt.Errorf("failed to get source-file flag: %w", err)
	}
	withNotes, err := flags.GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	showTree, err := flags.GetBool("tree")
	if err != nil {
		return fmt.Errorf("failed to get tree flag: %w", err)
	}
	suggest, err := flags.GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	preview, err := flags.GetBool("preview")
	if err != nil {
		return fmt.Errorf("failed to get preview flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	machine := cfg.Output.Format == "json" || cfg.Output.Format == "msgpack"
	opts := driver.Options{
		Mode:              mode,
		MaxDiagnostics:    cfg.Output.MaxDiagnostics,
		Jobs:              cfg.Run.Jobs,
		SourceFile:        sourceFile,
		EnableTimings:     showTimings,
		TimingsDiagnostic: showTimings && machine,
	}
	if cfg.Run.Cache {
		if opts.Cache, err = driver.OpenDiskCache("diagsynth"); err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
	}

	req := &pipeline.Request{Target: target, Options: opts}
	var res pipeline.Result
	if !machine && shouldUseTUI(ui) {
		var display []string
		if _, _, display, err = pipeline.Plan(target); err != nil {
			return err
		}
		res, err = runExplainWithUI(cmd.Context(), "explain "+target, display, req)
	} else {
		res, err = pipeline.Run(cmd.Context(), req)
	}
	if err != nil {
		return fmt.Errorf("explain failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if err := writeDiagnostics(out, res.Result, cfg, renderFlags{
		notes: withNotes, tree: showTree, fixes: suggest || preview, preview: preview,
	}); err != nil {
		return err
	}
	if showTimings && !machine {
		printStageTimings(cmd.ErrOrStderr(), res.Timings, res.Timing)
	}
	if res.HasErrors {
		return errHasErrors
	}
	return nil
}

type renderFlags struct {
	notes, tree, fixes, preview bool
}

func writeDiagnostics(out io.Writer, res *driver.Result, cfg config.Config, rf renderFlags) error {
	pathMode := diagfmt.ParsePathMode(cfg.Output.PathMode)
	switch cfg.Output.Format {
	case "pretty":
		file, _ := out.(*os.File)
		colored := useColor(cfg.Output.Color, file)
		diagfmt.Pretty(out, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:       colored,
			Context:     2,
			PathMode:    pathMode,
			ShowNotes:   rf.notes,
			ShowFixes:   rf.fixes,
			ShowPreview: rf.preview,
			ShowTree:    rf.tree,
		})
		writeSummary(out, res, colored)
		return nil
	case "short":
		return diagfmt.Short(out, res.Bag, res.FileSet, rf.notes)
	case "json", "msgpack":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     rf.notes,
			IncludeFixes:     rf.fixes,
			IncludePreviews:  rf.preview,
			IncludeTree:      rf.tree,
		}
		if cfg.Output.Format == "json" {
			return diagfmt.JSON(out, res.Bag, res.FileSet, jsonOpts)
		}
		return diagfmt.Msgpack(out, res.Bag, res.FileSet, jsonOpts)
	}
	return fmt.Errorf("unknown format: %s", cfg.Output.Format)
}

// writeSummary prints the closing "N errors, M warnings" line of pretty output.
func writeSummary(out io.Writer, res *driver.Result, colored bool) {
	counts := countBySeverity(res.Bag)
	if res.Bag.Len() == 0 && res.Failed() == 0 {
		return
	}
	style := color.New(color.FgYellow, color.Bold)
	if counts[diag.SevError] > 0 {
		style = color.New(color.FgRed, color.Bold)
	}
	if colored {
		style.EnableColor()
	} else {
		style.DisableColor()
	}
	line := fmt.Sprintf("%d %s, %d %s", counts[diag.SevError], plural(counts[diag.SevError], "error"),
		counts[diag.SevWarning], plural(counts[diag.SevWarning], "warning"))
	if n := res.Failed(); n > 0 {
		line += fmt.Sprintf(" (%d of %d documents could not be read)", n, len(res.Documents))
	}
	fmt.Fprintln(out, style.Sprint(line))
}

func countBySeverity(bag *diag.Bag) map[diag.Severity]int {
	counts := make(map[diag.Severity]int, 3)
	for _, d := range bag.Items() {
		counts[d.Severity]++
	}
	return counts
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
