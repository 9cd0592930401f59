package pipeline

import (
	"path/filepath"
	"strings"
)

// displayPaths maps every document path to the name shown in progress output:
// relative to baseDir when inside it, slash-separated.
func displayPaths(files []string, baseDir string) (map[string]string, []string) {
	byPath := make(map[string]string, len(files))
	ordered := make([]string, 0, len(files))

	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
	}

	for _, file := range files {
		if file == "" {
			continue
		}
		path := filepath.Clean(file)
		if base != "" {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			if rel, err := filepath.Rel(base, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
				path = rel
			}
		}
		path = filepath.ToSlash(path)
		if _, ok := byPath[file]; ok {
			continue
		}
		byPath[file] = path
		ordered = append(ordered, path)
	}
	return byPath, ordered
}

func emitQueued(sink ProgressSink, files []string) {
	for _, file := range files {
		emit(sink, Event{File: file, Status: StatusQueued})
	}
}

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
