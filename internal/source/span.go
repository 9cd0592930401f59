package source

import (
	"fmt"
)

// Span is a half-open byte range inside one file.
type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

// NoSpan marks "no location" (synthetic infos, builtins).
var NoSpan = Span{File: NoFileID}

// IsNone reports whether s is NoSpan.
func (s Span) IsNone() bool {
	return s.File == NoFileID
}

// Degenerate reports whether s cannot serve as a blame location.
func (s Span) Degenerate() bool {
	return s.IsNone() || s.End <= s.Start
}

func (s Span) Len() uint32 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

func (s Span) String() string {
	if s.IsNone() {
		return "<none>"
	}
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Contains reports whether other lies entirely inside s (equal spans contain each other).
func (s Span) Contains(other Span) bool {
	if s.IsNone() || other.IsNone() || s.File != other.File {
		return false
	}
	return s.Start <= other.Start && other.End <= s.End
}

func (s Span) Cover(other Span) Span {
	if s.IsNone() {
		return other
	}
	if other.IsNone() || s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Less orders spans by file, start, then end.
func (s Span) Less(other Span) bool {
	if s.File != other.File {
		return s.File < other.File
	}
	if s.Start != other.Start {
		return s.Start < other.Start
	}
	return s.End < other.End
}
