package diag

import "sync"

// Reporter — минимальный контракт получения готовых диагностик.
// Реализации: BagReporter (кладёт в Bag), DedupReporter, ChanReporter.
type Reporter interface {
	Report(d *Diagnostic)
}

// BagReporter — адаптер, который пишет в *Bag. Безопасен для горутин.
type BagReporter struct {
	mu  sync.Mutex
	Bag *Bag
}

func NewBagReporter(bag *Bag) *BagReporter {
	return &BagReporter{Bag: bag}
}

func (r *BagReporter) Report(d *Diagnostic) {
	if r == nil || r.Bag == nil || d == nil {
		return
	}
	r.mu.Lock()
	r.Bag.Add(*d)
	r.mu.Unlock()
}

// ChanReporter forwards diagnostics to a channel (streaming output).
type ChanReporter chan<- Diagnostic

func (c ChanReporter) Report(d *Diagnostic) {
	if d != nil {
		c <- *d
	}
}
