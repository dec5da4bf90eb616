// Package draw produces the randomized call sequence for a bingo caller.
//
// A Sequence is a one-time random permutation of a value pool, consumed
// one value at a time. Every value comes up exactly once; when the pool
// is exhausted the sequence says so rather than repeating.
package draw

import (
	"math/rand/v2"

	"github.com/matzehuels/bingoforge/pkg/pool"
)

// Sequence is a randomized, non-repeating draw order over a value pool.
// It is not safe for concurrent use.
type Sequence struct {
	values []pool.Value
	next   int
}

// New shuffles the pool's values into a fresh draw order.
// Column labels are retained so tagged values can be announced as
// "B 7" rather than just "7".
func New(rng *rand.Rand, p *pool.Pool) *Sequence {
	values := p.Values()
	rng.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
	return &Sequence{values: values}
}

// Next returns the next value to announce. ok is false once every value
// has been drawn.
func (s *Sequence) Next() (v pool.Value, ok bool) {
	if s.next >= len(s.values) {
		return pool.Value{}, false
	}
	v = s.values[s.next]
	s.next++
	return v, true
}

// Len returns the total number of values in the sequence.
func (s *Sequence) Len() int {
	return len(s.values)
}

// Remaining returns how many values have not been drawn yet.
func (s *Sequence) Remaining() int {
	return len(s.values) - s.next
}

// Drawn returns the values announced so far, in draw order.
func (s *Sequence) Drawn() []pool.Value {
	return s.values[:s.next]
}
