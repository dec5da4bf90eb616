// Package cli implements the bingo-cards and bingo-caller command-line
// interfaces.
//
// bingo-cards generates a PDF of printable bingo cards; bingo-caller
// draws values one at a time for game play. Both share the value-pool
// loading logic and are built with cobra. Logging uses the
// charmbracelet/log library; loggers are passed through
// context.Context.
package cli

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/matzehuels/bingoforge/pkg/errors"
)

// newRNG returns a seeded random source. A zero seed draws fresh
// entropy so every run differs; a fixed seed reproduces a run exactly.
func newRNG(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// parseCardCount parses the positional card-count argument.
func parseCardCount(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig,
			"card count must be a positive integer, got %q", arg)
	}
	return n, nil
}

// splitLabels splits a comma-delimited label string, trimming
// whitespace around each label.
func splitLabels(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// sameLabelSet reports whether a and b contain the same labels,
// ignoring order.
func sameLabelSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := set[v]; !ok {
			return false
		}
	}
	return true
}
