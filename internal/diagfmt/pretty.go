package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"diagsynth/internal/diag"
	"diagsynth/internal/source"
)

type palette struct {
	err, warn, info, note, fix, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgBlue, color.Bold),
		note:   color.New(color.FgCyan),
		fix:    color.New(color.FgGreen),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.fix, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	header := d.Severity.String() + " " + d.Code.ID()
	if d.Kind != diag.KindTypeError {
		header += " [" + d.Kind.Label(d.Severity) + "]"
	}
	msg := d.Message
	if d.LintRule != "" {
		msg = "(" + d.LintRule + ") " + msg
	}
	if opts.Width > 0 {
		msg = runewidth.Truncate(msg, int(opts.Width), "...")
	}
	fmt.Fprintf(w, "%s%s: %s\n", locPrefix(d.Primary, fs, opts.PathMode), p.severity(d.Severity).Sprint(header), msg)
	writeSnippet(w, d.Primary, fs, opts.Context, p)

	if opts.ShowTree && d.Classic != nil && (d.Friendly == nil || len(d.Classic.Extra) > 0) {
		if d.Friendly == nil {
			writeInfos(w, d.Classic.PrimaryInfos, fs, opts.PathMode, 1)
		}
		writeTrees(w, d.Classic.Extra, fs, opts.PathMode, 1)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s%s\n", p.note.Sprint("note:"), locPrefix(n.Span, fs, opts.PathMode), n.Msg)
		}
	}

	if opts.ShowFixes {
		for i, fix := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", p.fix.Sprintf("fix #%d:", i+1), fix.Title)
			for _, edit := range fix.Edits {
				fmt.Fprintf(w, "    edit %sapply=%q\n", locPrefix(edit.Span, fs, opts.PathMode), edit.NewText)
				if !opts.ShowPreview {
					continue
				}
				preview, err := buildFixEditPreview(fs, edit)
				if err != nil {
					continue
				}
				fmt.Fprintln(w, "    preview:")
				for _, line := range preview.before {
					fmt.Fprintf(w, "      - %s\n", line)
				}
				for _, line := range preview.after {
					fmt.Fprintf(w, "      + %s\n", line)
				}
			}
		}
	}
}

// locPrefix is "path:line:col: ", or nothing for spans outside the file set.
func locPrefix(span source.Span, fs *source.FileSet, mode PathMode) string {
	if span.IsNone() {
		return ""
	}
	f := fs.Get(span.File)
	if f == nil {
		return ""
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d: ", formatPath(f, fs, mode), start.Line, start.Col)
}

// writeSnippet prints context lines and the primary line underlined with ^~~~.
func writeSnippet(w io.Writer, span source.Span, fs *source.FileSet, context int8, p palette) {
	if span.IsNone() {
		return
	}
	f := fs.Get(span.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(span)
	if start.Line == 0 {
		return
	}
	first := start.Line
	if context > 0 {
		first = max(1, start.Line-uint32(context))
	}
	gutterWidth := len(fmt.Sprint(start.Line))
	for line := first; line <= start.Line; line++ {
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, line), f.GetLine(line))
	}

	text := f.GetLine(start.Line)
	col := clampCol(text, start.Col)
	endCol := len(text) + 1
	if end.Line == start.Line {
		endCol = clampCol(text, end.Col)
	}
	pad := runewidth.StringWidth(text[:col-1])
	width := max(1, runewidth.StringWidth(text[col-1:max(col, endCol)-1]))
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), p.caret.Sprint(marker))
}

// clampCol keeps a 1-based byte column inside text (one past the end allowed).
func clampCol(text string, col uint32) int {
	c := int(col)
	if c < 1 {
		return 1
	}
	return min(c, len(text)+1)
}

func writeInfos(w io.Writer, infos []diag.Info, fs *source.FileSet, mode PathMode, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, info := range infos {
		if len(info.Lines) == 0 {
			continue
		}
		where := strings.TrimSuffix(locPrefix(info.Loc, fs, mode), ": ")
		line := strings.Join(info.Lines, " ")
		if where != "" {
			line += " [" + where + "]"
		}
		fmt.Fprintf(w, "%s%s\n", indent, line)
	}
}

func writeTrees(w io.Writer, trees []diag.InfoTree, fs *source.FileSet, mode PathMode, depth int) {
	for _, t := range trees {
		writeInfos(w, t.Infos, fs, mode, depth)
		writeTrees(w, t.Children, fs, mode, depth+1)
	}
}
