package diagfmt

import (
	"encoding/json"
	"io"

	"diagsynth/internal/diag"
	"diagsynth/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
}

// FixEditJSON представляет одно редактирование для JSON
type FixEditJSON struct {
	Location    *LocationJSON `json:"location,omitempty"`
	NewText     string        `json:"new_text"`
	BeforeLines []string      `json:"before_lines,omitempty"`
	AfterLines  []string      `json:"after_lines,omitempty"`
}

// FixJSON представляет предложение по исправлению для JSON
type FixJSON struct {
	Title string        `json:"title"`
	Edits []FixEditJSON `json:"edits,omitempty"`
}

// TextJSON is one styled piece of a friendly message.
type TextJSON struct {
	Text     string        `json:"text"`
	Code     bool          `json:"code,omitempty"`
	Location *LocationJSON `json:"location,omitempty"`
}

type FriendlyJSON struct {
	Root         []TextJSON    `json:"root,omitempty"`
	RootLocation *LocationJSON `json:"root_location,omitempty"`
	Frames       [][]TextJSON  `json:"frames,omitempty"`
	Final        []TextJSON    `json:"final"`
}

type InfoJSON struct {
	Location *LocationJSON `json:"location,omitempty"`
	Lines    []string      `json:"lines,omitempty"`
}

type InfoTreeJSON struct {
	Infos    []InfoJSON     `json:"infos"`
	Children []InfoTreeJSON `json:"children,omitempty"`
}

type ClassicJSON struct {
	Primary []InfoJSON     `json:"primary"`
	Extra   []InfoTreeJSON `json:"extra,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Kind     string        `json:"kind"`
	LintRule string        `json:"lint_rule,omitempty"`
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
	Notes    []NoteJSON    `json:"notes,omitempty"`
	Fixes    []FixJSON     `json:"fixes,omitempty"`
	Friendly *FriendlyJSON `json:"friendly,omitempty"`
	Classic  *ClassicJSON  `json:"classic,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// formatPath renders the path of f according to the path mode.
func formatPath(f *source.File, fs *source.FileSet, pathMode PathMode) string {
	switch pathMode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	case PathModeAuto:
		return f.FormatPath("auto", "")
	default:
		return f.Path
	}
}

// makeLocation создаёт LocationJSON из Span; nil для спанов без файла
func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode, includePositions bool) *LocationJSON {
	if span.IsNone() {
		return nil
	}
	f := fs.Get(span.File)
	if f == nil {
		return nil
	}

	loc := &LocationJSON{
		File:      formatPath(f, fs, pathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}

	// Добавляем позиции строк/колонок если требуется
	if includePositions {
		startPos, endPos := fs.Resolve(span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}

	return loc
}

type locator struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (l locator) at(span source.Span) *LocationJSON {
	return makeLocation(span, l.fs, l.opts.PathMode, l.opts.IncludePositions)
}

func (l locator) texts(parts []diag.Text) []TextJSON {
	if len(parts) == 0 {
		return nil
	}
	out := make([]TextJSON, len(parts))
	for i, p := range parts {
		out[i] = TextJSON{Text: p.Value, Code: p.Code}
		if p.HasRef() {
			out[i].Location = l.at(p.Ref)
		}
	}
	return out
}

func (l locator) infos(infos []diag.Info) []InfoJSON {
	out := make([]InfoJSON, len(infos))
	for i, info := range infos {
		out[i] = InfoJSON{Location: l.at(info.Loc), Lines: info.Lines}
	}
	return out
}

func (l locator) trees(trees []diag.InfoTree) []InfoTreeJSON {
	if len(trees) == 0 {
		return nil
	}
	out := make([]InfoTreeJSON, len(trees))
	for i, t := range trees {
		out[i] = InfoTreeJSON{Infos: l.infos(t.Infos), Children: l.trees(t.Children)}
	}
	return out
}

func (l locator) friendly(fr *diag.Friendly) *FriendlyJSON {
	out := &FriendlyJSON{
		Root:         l.texts(fr.RootClause),
		RootLocation: l.at(fr.RootLoc),
		Final:        l.texts(fr.Final),
	}
	for _, f := range fr.Frames {
		out.Frames = append(out.Frames, l.texts(f))
	}
	return out
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) (DiagnosticsOutput, error) {
	loc := locator{fs: fs, opts: opts}
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}
	diagnostics := make([]DiagnosticJSON, 0, maxItems)

	for i := range maxItems {
		d := items[i]

		diagJSON := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Kind:     d.Kind.String(),
			LintRule: d.LintRule,
			Message:  d.Message,
			Location: loc.at(d.Primary),
		}

		if opts.IncludeNotes && len(d.Notes) > 0 {
			diagJSON.Notes = make([]NoteJSON, len(d.Notes))
			for j, note := range d.Notes {
				diagJSON.Notes[j] = NoteJSON{Message: note.Msg, Location: loc.at(note.Span)}
			}
		}

		if opts.IncludeFixes && len(d.Fixes) > 0 {
			diagJSON.Fixes = make([]FixJSON, 0, len(d.Fixes))
			for _, fix := range d.Fixes {
				fixJSON := FixJSON{Title: fix.Title}
				for _, edit := range fix.Edits {
					editJSON := FixEditJSON{Location: loc.at(edit.Span), NewText: edit.NewText}
					if opts.IncludePreviews {
						if preview, err := buildFixEditPreview(fs, edit); err == nil {
							editJSON.BeforeLines = preview.before
							editJSON.AfterLines = preview.after
						}
					}
					fixJSON.Edits = append(fixJSON.Edits, editJSON)
				}
				diagJSON.Fixes = append(diagJSON.Fixes, fixJSON)
			}
		}

		if opts.IncludeTree {
			if d.Friendly != nil {
				diagJSON.Friendly = loc.friendly(d.Friendly)
			}
			if d.Classic != nil {
				diagJSON.Classic = &ClassicJSON{
					Primary: loc.infos(d.Classic.PrimaryInfos),
					Extra:   loc.trees(d.Classic.Extra),
				}
			}
		}

		diagnostics = append(diagnostics, diagJSON)
	}

	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
	}, nil
}

// JSON форматирует диагностики в JSON формат.
// Выводит массив диагностик с полной информацией о местоположении, заметках и исправлениях.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	output, err := BuildDiagnosticsOutput(bag, fs, opts)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
