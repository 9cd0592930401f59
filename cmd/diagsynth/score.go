package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"diagsynth/internal/factio"
	"diagsynth/internal/facts"
	"diagsynth/internal/score"
	"diagsynth/internal/source"
)

var scoreCmd = &cobra.Command{
	Use:   "score [flags] <file.facts.yaml>",
	Short: "Print the score of every speculative branch",
	Long:  `Score each speculative branch of the facts in a document against the fact's own root and mark the ones that would be reported`,
	Args:  cobra.ExactArgs(1),
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().String("format", "text", "output format (text|json)")
	scoreCmd.Flags().Bool("all", false, "list facts without speculative branches too")
}

// branchScore is one scored branch; Branches holds its own nested siblings.
type branchScore struct {
	Index    int           `json:"index"`
	Member   string        `json:"member,omitempty"`
	Kind     string        `json:"kind"`
	Score    int           `json:"score"`
	Selected bool          `json:"selected"`
	Branches []branchScore `json:"branches,omitempty"`
}

type factScore struct {
	Index    int           `json:"index"`
	Kind     string        `json:"kind"`
	Chain    string        `json:"chain,omitempty"`
	Branches []branchScore `json:"branches,omitempty"`
}

func runScore(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be text or json)", format)
	}

	doc, _, err := factio.ReadFile(args[0])
	if err != nil {
		return err
	}
	in, err := doc.Resolve(source.NewFileSet(), filepath.Dir(args[0]))
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	scores := scoreFacts(in.Facts, all)
	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(scores)
	}
	writeScores(cmd.OutOrStdout(), scores)
	return nil
}

func scoreFacts(fs []facts.Fact, all bool) []factScore {
	out := make([]factScore, 0, len(fs))
	for i, f := range fs {
		fsc := factScore{Index: i, Kind: f.Kind().String()}
		if b, ok := f.(facts.Blamed); ok {
			fsc.Chain = b.Blame().String()
			fsc.Branches = scoreBranches(b)
		}
		if len(fsc.Branches) == 0 && !all {
			continue
		}
		out = append(out, fsc)
	}
	return out
}

// scoreBranches scores b's siblings against b's own root, recursing into
// branches that are speculative themselves.
func scoreBranches(b facts.Blamed) []branchScore {
	branches := b.Siblings()
	if len(branches) == 0 {
		return nil
	}
	ref := score.Reference(b)
	best := score.Best(branches, ref)
	out := make([]branchScore, len(branches))
	for i, br := range branches {
		bs := branchScore{
			Index:    i,
			Member:   br.Member.String(),
			Kind:     br.Fact.Kind().String(),
			Score:    score.Score(br.Fact, ref),
			Selected: slices.Contains(best, i),
		}
		if nested, ok := br.Fact.(facts.Blamed); ok {
			bs.Branches = scoreBranches(nested)
		}
		out[i] = bs
	}
	return out
}

func writeScores(w io.Writer, scores []factScore) {
	if len(scores) == 0 {
		fmt.Fprintln(w, "no speculative facts")
		return
	}
	for _, fsc := range scores {
		fmt.Fprintf(w, "fact %d: %s", fsc.Index, fsc.Kind)
		if fsc.Chain != "" {
			fmt.Fprintf(w, " (%s)", fsc.Chain)
		}
		fmt.Fprintln(w)
		writeBranches(w, fsc.Branches, 1)
	}
}

func writeBranches(w io.Writer, branches []branchScore, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, bs := range branches {
		mark := ""
		if bs.Selected {
			mark = " *"
		}
		fmt.Fprintf(w, "%sbranch %d: %s score=%d%s", indent, bs.Index, bs.Kind, bs.Score, mark)
		if bs.Member != "" {
			fmt.Fprintf(w, " [%s]", bs.Member)
		}
		fmt.Fprintln(w)
		writeBranches(w, bs.Branches, depth+1)
	}
}
