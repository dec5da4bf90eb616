// Package pool builds the value pools that bingo cards and the caller
// draw from.
//
// A pool is either flat (a plain ordered list of values) or column-tagged
// (values grouped under ordered column labels). Pools come from the
// built-in number tables or from a user-supplied value file, and are
// immutable once constructed.
package pool

import (
	"github.com/matzehuels/bingoforge/pkg/errors"
)

// Value is a single pool entry. Label is empty for flat pools.
type Value struct {
	Label string
	Text  string
}

// Pool holds the candidate values for card spaces or caller draws.
// The zero value is not usable; construct pools with Defaults, Parse or Load.
type Pool struct {
	labels  []string            // column order, nil for flat pools
	columns map[string][]string // per-column values, nil for flat pools
	flat    []string            // nil for tagged pools
}

// newTagged builds a column-tagged pool. labels preserves first-encountered order.
func newTagged(labels []string, columns map[string][]string) *Pool {
	return &Pool{labels: labels, columns: columns}
}

// newFlat builds a flat pool.
func newFlat(values []string) *Pool {
	return &Pool{flat: values}
}

// Tagged reports whether the pool is column-partitioned.
func (p *Pool) Tagged() bool {
	return p.labels != nil
}

// Labels returns the column labels in their original order.
// It returns nil for flat pools.
func (p *Pool) Labels() []string {
	return p.labels
}

// Column returns the values of the named column, in file order.
func (p *Pool) Column(label string) []string {
	return p.columns[label]
}

// Flat returns the values of a flat pool, in file order.
func (p *Pool) Flat() []string {
	return p.flat
}

// Size returns the total number of values in the pool.
func (p *Pool) Size() int {
	if !p.Tagged() {
		return len(p.flat)
	}
	n := 0
	for _, label := range p.labels {
		n += len(p.columns[label])
	}
	return n
}

// Values flattens the pool into a single ordered list, retaining column
// labels for tagged pools. Tagged pools yield column by column in label
// order; flat pools yield in file order with empty labels.
func (p *Pool) Values() []Value {
	out := make([]Value, 0, p.Size())
	if !p.Tagged() {
		for _, v := range p.flat {
			out = append(out, Value{Text: v})
		}
		return out
	}
	for _, label := range p.labels {
		for _, v := range p.columns[label] {
			out = append(out, Value{Label: label, Text: v})
		}
	}
	return out
}

// DistinctTexts returns the pool's values with duplicate texts removed,
// preserving first-encountered order. A tagged pool may carry the same
// text under two columns; scatter placement must treat those as one
// candidate so a card never shows the same value twice.
func (p *Pool) DistinctTexts() []string {
	seen := make(map[string]struct{}, p.Size())
	out := make([]string, 0, p.Size())
	for _, v := range p.Values() {
		if _, dup := seen[v.Text]; dup {
			continue
		}
		seen[v.Text] = struct{}{}
		out = append(out, v.Text)
	}
	return out
}

// Partition splits a flat pool positionally into cols column slices of
// equal size. Trailing values that do not fill a complete slice are
// dropped. It returns nil for tagged pools.
func (p *Pool) Partition(cols int) [][]string {
	if p.Tagged() || cols <= 0 {
		return nil
	}
	per := len(p.flat) / cols
	out := make([][]string, cols)
	for i := range out {
		out[i] = p.flat[i*per : (i+1)*per]
	}
	return out
}

// Trim returns a pool restricted to the first cols columns. Flat pools
// and pools with at most cols columns are returned unchanged.
func (p *Pool) Trim(cols int) *Pool {
	if !p.Tagged() || len(p.labels) <= cols {
		return p
	}
	labels := p.labels[:cols]
	columns := make(map[string][]string, cols)
	for _, label := range labels {
		columns[label] = p.columns[label]
	}
	return newTagged(labels, columns)
}

// ValidateFor checks that the pool can fill a rows x cols card without
// repeating a value within a column (column mode) or within a card
// (scatter mode).
//
// It returns VALIDATION_FAILED when a tagged pool has fewer columns than
// the grid, and INSUFFICIENT_VALUES when any column (or the flat pool)
// is too small.
func (p *Pool) ValidateFor(rows, cols int, scatter bool) error {
	if p.Tagged() {
		if len(p.labels) < cols {
			return errors.New(errors.ErrCodeValidation,
				"pool defines %d columns but the card has %d; add columns or shrink the card", len(p.labels), cols)
		}
		if scatter {
			if n := len(p.DistinctTexts()); n < rows*cols {
				return errors.New(errors.ErrCodeInsufficientValues,
					"pool has %d distinct values but a scattered %dx%d card needs %d", n, rows, cols, rows*cols)
			}
			return nil
		}
		for _, label := range p.labels[:cols] {
			if n := len(p.columns[label]); n < rows {
				return errors.New(errors.ErrCodeInsufficientValues,
					"column %q has %d values but needs at least %d", label, n, rows)
			}
		}
		return nil
	}

	if len(p.flat) < rows*cols {
		return errors.New(errors.ErrCodeInsufficientValues,
			"pool has %d values but a %dx%d card needs %d", len(p.flat), rows, cols, rows*cols)
	}
	if !scatter {
		// Positional column slices must each cover a full column.
		if per := len(p.flat) / cols; per < rows {
			return errors.New(errors.ErrCodeInsufficientValues,
				"pool splits into columns of %d values but each column needs %d", len(p.flat)/cols, rows)
		}
	}
	return nil
}
