package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a phase boundary. Document is empty for phases that
// cover the whole batch.
type PhaseEvent struct {
	Name     string
	Document string
	Status   PhaseStatus
	Elapsed  time.Duration
	Err      error
	Cached   bool
}

// PhaseObserver receives phase events emitted during Explain. It may be called
// from several goroutines at once.
type PhaseObserver func(PhaseEvent)

func (o PhaseObserver) start(name, doc string) time.Time {
	if o != nil {
		o(PhaseEvent{Name: name, Document: doc, Status: PhaseStart})
	}
	return time.Now()
}

func (o PhaseObserver) end(name, doc string, started time.Time, err error, cached bool) {
	if o != nil {
		o(PhaseEvent{Name: name, Document: doc, Status: PhaseEnd, Elapsed: time.Since(started), Err: err, Cached: cached})
	}
}
