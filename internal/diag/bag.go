package diag

import (
	"cmp"
	"slices"
)

// Bag collects diagnostics up to a limit. It is not safe for concurrent
// use; concurrent probers each get their own.
type Bag struct {
	items []Diagnostic
	max   int
}

func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add stores d and reports whether it fit under the limit.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) any(pred func(Diagnostic) bool) bool {
	return slices.ContainsFunc(b.items, pred)
}

func (b *Bag) HasErrors() bool {
	return b.any(func(d Diagnostic) bool { return d.Severity >= SevError })
}

// Has reports whether code was recorded at any severity.
func (b *Bag) Has(code Code) bool {
	return b.any(func(d Diagnostic) bool { return d.Code == code })
}

func (b *Bag) Len() int { return len(b.items) }

// Items aliases the bag's storage.
func (b *Bag) Items() []Diagnostic { return b.items }

// Merge takes every diagnostic of other; the limit grows to fit them.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
	b.max = max(b.max, len(b.items))
}

// Sort puts the most severe first, then orders by code, subject and message.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
			cmp.Compare(x.Subject, y.Subject),
			cmp.Compare(x.Message, y.Message),
		)
	})
}
