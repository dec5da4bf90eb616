package pool

import "strconv"

// Standard bingo number table: five columns of fifteen numbers each,
// B 1-15 through O 61-75. Smaller cards use a prefix of the same table.
const (
	defaultSpan = 15
	maxColumns  = 5
)

var defaultLabels = [maxColumns]string{"B", "I", "N", "G", "O"}

// Defaults returns the standard number pool for a card with cols columns.
// Column i holds the numbers i*15+1 through (i+1)*15 as strings, labeled
// B, I, N, G, O in order. cols is clamped to the five standard columns.
func Defaults(cols int) *Pool {
	if cols > maxColumns {
		cols = maxColumns
	}
	labels := make([]string, cols)
	columns := make(map[string][]string, cols)
	for i := 0; i < cols; i++ {
		values := make([]string, defaultSpan)
		for j := range values {
			values[j] = strconv.Itoa(i*defaultSpan + j + 1)
		}
		labels[i] = defaultLabels[i]
		columns[labels[i]] = values
	}
	return newTagged(labels, columns)
}
