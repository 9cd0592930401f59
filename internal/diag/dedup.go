package diag

import (
	"sync"

	"github.com/hashicorp/go-set/v3"

	"diagsynth/internal/source"
)

type dedupKey struct {
	code  Code
	sev   Severity
	file  source.FileID
	start uint32
	end   uint32
	msg   string
}

func keyOf(d *Diagnostic) dedupKey {
	return dedupKey{
		code:  d.Code,
		sev:   d.Severity,
		file:  d.Primary.File,
		start: d.Primary.Start,
		end:   d.Primary.End,
		msg:   d.Message,
	}
}

// DedupSet remembers rendered diagnostics; safe for concurrent use.
type DedupSet struct {
	mu   sync.Mutex
	seen *set.Set[dedupKey]
}

func NewDedupSet() *DedupSet {
	return &DedupSet{seen: set.New[dedupKey](0)}
}

// Insert returns true when d was not seen before.
func (s *DedupSet) Insert(d *Diagnostic) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen.Insert(keyOf(d))
}

func (s *DedupSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen.Size()
}

// DedupReporter wraps another Reporter and suppresses duplicate diagnostics
// with the same code, severity, primary span and message.
type DedupReporter struct {
	next Reporter
	set  *DedupSet
}

// NewDedupReporter returns a Reporter that filters out duplicates while
// forwarding unique diagnostics to the provided reporter.
func NewDedupReporter(next Reporter, seen *DedupSet) *DedupReporter {
	if seen == nil {
		seen = NewDedupSet()
	}
	return &DedupReporter{next: next, set: seen}
}

func (r *DedupReporter) Report(d *Diagnostic) {
	if r == nil || d == nil {
		return
	}
	if !r.set.Insert(d) {
		return
	}
	if r.next != nil {
		r.next.Report(d)
	}
}
