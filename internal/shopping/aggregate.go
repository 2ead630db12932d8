package shopping

import (
	"sort"
	"strings"
	"sync"
)

// Entry is one line of the final shopping list.
type Entry struct {
	Description string
	Quantity    Quantity
}

// String renders "<quantity> <description>", or just the description when the
// quantity is unknown.
func (e Entry) String() string {
	if !e.Quantity.IsKnown() {
		return e.Description
	}
	return strings.TrimSpace(e.Quantity.String() + " " + e.Description)
}

// Aggregator folds ingredient lines into per-description totals. Keys match
// exactly: "Cucumber" and "cucumber" are different items. It is safe for
// concurrent use.
type Aggregator struct {
	mu      sync.Mutex
	entries map[string]Quantity
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{entries: make(map[string]Quantity)}
}

// Add merges one parsed ingredient into the running totals. Blank lines are
// ignored.
func (a *Aggregator) Add(p ParsedIngredient) {
	if p.Description == "" && !p.Quantity.IsKnown() {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	current, ok := a.entries[p.Description]
	if !ok {
		a.entries[p.Description] = p.Quantity
		return
	}
	a.entries[p.Description] = current.Merge(p.Quantity)
}

// AddLine parses a (scaled) ingredient line and merges it.
func (a *Aggregator) AddLine(line string) {
	a.Add(ParseIngredient(line))
}

// Entries returns the aggregate sorted by rendered line.
func (a *Aggregator) Entries() []Entry {
	a.mu.Lock()
	entries := make([]Entry, 0, len(a.entries))
	for desc, q := range a.entries {
		entries = append(entries, Entry{Description: desc, Quantity: q})
	}
	a.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		li, lj := entries[i].String(), entries[j].String()
		if li != lj {
			return li < lj
		}
		return entries[i].Description < entries[j].Description
	})
	return entries
}

// Lines renders the aggregate as sorted shopping list lines.
func (a *Aggregator) Lines() []string {
	entries := a.Entries()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	return lines
}
