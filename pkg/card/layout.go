package card

import (
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/bingoforge/pkg/errors"
	"github.com/matzehuels/bingoforge/pkg/pool"
)

// Retry budget for duplicate rejection: proportional to the request with
// a floor so tiny runs against tiny pools still get a fair number of
// resamples before giving up.
const (
	retriesPerCard = 10
	retryFloor     = 100
)

// Cell is one card space.
type Cell struct {
	Text      string // cell value, empty for the free space
	Free      bool   // pre-filled free space, not drawn from the pool
	Multiline bool   // text spans lines; renderer uses the fixed font size
}

// Card is a generated rows x cols grid.
type Card struct {
	Cells  [][]Cell // row-major grid
	Serial string   // short identifier printed on the rendered card
}

// Key returns the card's value-by-cell identity. Two cards with the
// same key carry the same values in the same cells; the free-space
// marker itself does not participate.
func (c Card) Key() string {
	var b strings.Builder
	for _, row := range c.Cells {
		for _, cell := range row {
			if !cell.Free {
				b.WriteString(cell.Text)
			}
			b.WriteByte('\x1f')
		}
	}
	return b.String()
}

// Generate produces n pairwise-distinct cards from the pool.
//
// Candidate grids identical to an already accepted card are discarded
// and resampled. The total number of grid builds is bounded at
// 10*n+100; running out fails with DUPLICATE_EXHAUSTION, which means
// the pool cannot yield n distinct cards.
func Generate(rng *rand.Rand, p *pool.Pool, spec Spec, n int) ([]Card, error) {
	if n <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "card count must be positive, got %d", n)
	}
	if err := p.ValidateFor(spec.Rows, spec.Cols, spec.Scatter); err != nil {
		return nil, err
	}
	p = p.Trim(spec.Cols)

	var (
		columns [][]string
		flat    []string
	)
	if spec.Scatter {
		flat = p.DistinctTexts()
	} else {
		columns = columnPools(p, spec.Cols)
	}

	cards := make([]Card, 0, n)
	seen := make(map[string]struct{}, n)
	budget := retriesPerCard*n + retryFloor
	for len(cards) < n {
		if budget == 0 {
			return nil, errors.New(errors.ErrCodeDuplicateExhaustion,
				"could not produce %d distinct cards (%d so far); the value pool is too small", n, len(cards))
		}
		budget--

		c := Card{Cells: buildGrid(rng, spec, columns, flat)}
		key := c.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		c.Serial = uuid.NewString()[:8]
		cards = append(cards, c)
	}
	return cards, nil
}

// columnPools returns the per-column sub-pools for column mode: the
// tagged columns when the pool has labels, positional slices otherwise.
func columnPools(p *pool.Pool, cols int) [][]string {
	if !p.Tagged() {
		return p.Partition(cols)
	}
	out := make([][]string, cols)
	for i, label := range p.Labels()[:cols] {
		out[i] = p.Column(label)
	}
	return out
}

// buildGrid assembles one candidate grid.
func buildGrid(rng *rand.Rand, spec Spec, columns [][]string, flat []string) [][]Cell {
	freeRow, freeCol := freeCell(rng, spec)

	cells := make([][]Cell, spec.Rows)
	for r := range cells {
		cells[r] = make([]Cell, spec.Cols)
	}

	if spec.Scatter {
		need := spec.Rows * spec.Cols
		if freeRow >= 0 {
			need--
		}
		picked := sample(rng, flat, need)
		i := 0
		for r := 0; r < spec.Rows; r++ {
			for c := 0; c < spec.Cols; c++ {
				if r == freeRow && c == freeCol {
					cells[r][c] = Cell{Free: true}
					continue
				}
				cells[r][c] = newCell(picked[i])
				i++
			}
		}
		return cells
	}

	for c := 0; c < spec.Cols; c++ {
		need := spec.Rows
		if c == freeCol && freeRow >= 0 {
			need--
		}
		picked := sample(rng, columns[c], need)
		i := 0
		for r := 0; r < spec.Rows; r++ {
			if r == freeRow && c == freeCol {
				cells[r][c] = Cell{Free: true}
				continue
			}
			cells[r][c] = newCell(picked[i])
			i++
		}
	}
	return cells
}

// freeCell picks the free-space position, or (-1, -1) when disabled.
// Odd dimensions pin the free space to the exact center; even dimensions
// pick uniformly at random, independently per card.
func freeCell(rng *rand.Rand, spec Spec) (row, col int) {
	if !spec.FreeSpace {
		return -1, -1
	}
	row = spec.Rows / 2
	if spec.Rows%2 == 0 {
		row = rng.IntN(spec.Rows)
	}
	col = spec.Cols / 2
	if spec.Cols%2 == 0 {
		col = rng.IntN(spec.Cols)
	}
	return row, col
}

// sample draws n distinct values from vals in random order using a
// partial Fisher-Yates shuffle over a copy.
func sample(rng *rand.Rand, vals []string, n int) []string {
	s := slices.Clone(vals)
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(s)-i)
		s[i], s[j] = s[j], s[i]
	}
	return s[:n]
}

func newCell(text string) Cell {
	return Cell{Text: text, Multiline: strings.Contains(text, "\n")}
}
