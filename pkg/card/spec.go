// Package card turns a value pool into bingo card grids.
//
// The layout engine fills each card either column by column (every
// column drawing from its own sub-pool) or in scatter mode (the whole
// card drawing from the flat pool), places the optional free space, and
// rejects any grid identical to one already produced in the run.
package card

import (
	"github.com/matzehuels/bingoforge/pkg/errors"
)

// Spec describes the shape and fill rules of the cards to generate.
type Spec struct {
	Rows      int  // grid rows
	Cols      int  // grid columns
	FreeSpace bool // reserve one cell as a free space
	Scatter   bool // ignore column boundaries when placing values
}

// sizes maps the accepted card-size tokens to their grid dimensions.
var sizes = map[string][2]int{
	"3x3": {3, 3},
	"4x4": {4, 4},
	"5x5": {5, 5},
}

// ParseSize parses a card-size token such as "5x5" into rows and columns.
// Valid tokens are "3x3", "4x4" and "5x5"; anything else fails with
// INVALID_CONFIG.
func ParseSize(s string) (rows, cols int, err error) {
	dims, ok := sizes[s]
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeInvalidConfig,
			"invalid card size %q (must be 3x3, 4x4 or 5x5)", s)
	}
	return dims[0], dims[1], nil
}
