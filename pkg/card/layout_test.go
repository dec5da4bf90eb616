package card

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/matzehuels/bingoforge/pkg/errors"
	"github.com/matzehuels/bingoforge/pkg/pool"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(7, 7^0xdeadbeef))
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		token   string
		rows    int
		cols    int
		wantErr bool
	}{
		{"3x3", 3, 3, false},
		{"4x4", 4, 4, false},
		{"5x5", 5, 5, false},
		{"6x6", 0, 0, true},
		{"5X5", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			rows, cols, err := ParseSize(tt.token)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidConfig) {
					t.Fatalf("ParseSize(%q) error = %v, want INVALID_CONFIG", tt.token, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSize(%q) error = %v", tt.token, err)
			}
			if rows != tt.rows || cols != tt.cols {
				t.Errorf("ParseSize(%q) = %dx%d, want %dx%d", tt.token, rows, cols, tt.rows, tt.cols)
			}
		})
	}
}

func TestGenerateStandard5x5(t *testing.T) {
	spec := Spec{Rows: 5, Cols: 5, FreeSpace: true}
	cards, err := Generate(testRNG(), pool.Defaults(5), spec, 4)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(cards) != 4 {
		t.Fatalf("got %d cards, want 4", len(cards))
	}

	ranges := map[int][2]int{0: {1, 15}, 1: {16, 30}, 2: {31, 45}, 3: {46, 60}, 4: {61, 75}}
	seen := map[string]struct{}{}
	for i, c := range cards {
		if len(c.Cells) != 5 {
			t.Fatalf("card %d has %d rows, want 5", i, len(c.Cells))
		}
		values := map[string]struct{}{}
		frees := 0
		for r, row := range c.Cells {
			if len(row) != 5 {
				t.Fatalf("card %d row %d has %d cells, want 5", i, r, len(row))
			}
			for col, cell := range row {
				if cell.Free {
					frees++
					if r != 2 || col != 2 {
						t.Errorf("card %d free space at (%d,%d), want center (2,2)", i, r, col)
					}
					continue
				}
				if _, dup := values[cell.Text]; dup {
					t.Errorf("card %d repeats value %q", i, cell.Text)
				}
				values[cell.Text] = struct{}{}

				n, err := strconv.Atoi(cell.Text)
				if err != nil {
					t.Fatalf("card %d cell (%d,%d) = %q, not a number", i, r, col, cell.Text)
				}
				span := ranges[col]
				if n < span[0] || n > span[1] {
					t.Errorf("card %d column %d has %d, want %d..%d", i, col, n, span[0], span[1])
				}
			}
		}
		if frees != 1 {
			t.Errorf("card %d has %d free spaces, want 1", i, frees)
		}
		if len(c.Serial) != 8 {
			t.Errorf("card %d serial = %q, want 8 characters", i, c.Serial)
		}
		if _, dup := seen[c.Key()]; dup {
			t.Errorf("card %d duplicates an earlier grid", i)
		}
		seen[c.Key()] = struct{}{}
	}
}

func TestGenerateNoFreeSpace(t *testing.T) {
	spec := Spec{Rows: 3, Cols: 3}
	cards, err := Generate(testRNG(), pool.Defaults(3), spec, 3)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for i, c := range cards {
		for _, row := range c.Cells {
			for _, cell := range row {
				if cell.Free {
					t.Fatalf("card %d has a free space with free spaces disabled", i)
				}
				if cell.Text == "" {
					t.Fatalf("card %d has an empty cell", i)
				}
			}
		}
	}
}

func TestGenerate4x4FreePositionVaries(t *testing.T) {
	spec := Spec{Rows: 4, Cols: 4, FreeSpace: true}
	cards, err := Generate(testRNG(), pool.Defaults(4), spec, 30)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	positions := map[[2]int]struct{}{}
	for i, c := range cards {
		frees := 0
		for r, row := range c.Cells {
			for col, cell := range row {
				if cell.Free {
					frees++
					positions[[2]int{r, col}] = struct{}{}
				}
			}
		}
		if frees != 1 {
			t.Errorf("card %d has %d free spaces, want 1", i, frees)
		}
	}
	if len(positions) < 2 {
		t.Errorf("free space landed on %d distinct cells across 30 cards, want several", len(positions))
	}
}

func TestGenerateScatter(t *testing.T) {
	flat := make([]string, 30)
	for i := range flat {
		flat[i] = fmt.Sprintf("item-%02d", i)
	}
	var sb strings.Builder
	for _, v := range flat {
		sb.WriteString(v + "\n")
	}
	p, err := pool.Parse(strings.NewReader(sb.String()), "scatter.txt")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	spec := Spec{Rows: 5, Cols: 5, FreeSpace: true, Scatter: true}
	cards, err := Generate(testRNG(), p, spec, 3)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	valid := map[string]struct{}{}
	for _, v := range flat {
		valid[v] = struct{}{}
	}
	for i, c := range cards {
		values := map[string]struct{}{}
		for _, row := range c.Cells {
			for _, cell := range row {
				if cell.Free {
					continue
				}
				if _, ok := valid[cell.Text]; !ok {
					t.Errorf("card %d has %q, not in the pool", i, cell.Text)
				}
				if _, dup := values[cell.Text]; dup {
					t.Errorf("card %d repeats %q", i, cell.Text)
				}
				values[cell.Text] = struct{}{}
			}
		}
		if len(values) != 24 {
			t.Errorf("card %d has %d distinct values, want 24", i, len(values))
		}
	}
}

func TestGenerateColumnModeFlatPool(t *testing.T) {
	// A flat pool in column mode splits positionally: values 0-3 feed
	// column 0, 4-7 column 1, 8-11 column 2.
	flat := make([]string, 12)
	for i := range flat {
		flat[i] = fmt.Sprintf("v%02d", i)
	}
	p, err := pool.Parse(strings.NewReader(strings.Join(flat, "\n")+"\n"), "flat.txt")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	spec := Spec{Rows: 3, Cols: 3}
	cards, err := Generate(testRNG(), p, spec, 2)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for i, c := range cards {
		for r, row := range c.Cells {
			for col, cell := range row {
				var idx int
				if _, err := fmt.Sscanf(cell.Text, "v%02d", &idx); err != nil {
					t.Fatalf("card %d cell (%d,%d) = %q", i, r, col, cell.Text)
				}
				if idx/4 != col {
					t.Errorf("card %d column %d has %q from slice %d", i, col, cell.Text, idx/4)
				}
			}
		}
	}
}

func TestGenerateDuplicateExhaustion(t *testing.T) {
	// Three columns of three values yield at most (3!)^3 = 216 distinct
	// grids; asking for 300 must fail within the retry budget.
	input := ""
	for c, label := range []string{"B", "I", "N"} {
		for v := 0; v < 3; v++ {
			input += fmt.Sprintf("%s::%d\n", label, c*3+v)
		}
	}
	p, err := pool.Parse(strings.NewReader(input), "tiny.txt")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	_, err = Generate(testRNG(), p, Spec{Rows: 3, Cols: 3}, 300)
	if !errors.Is(err, errors.ErrCodeDuplicateExhaustion) {
		t.Fatalf("Generate() error = %v, want DUPLICATE_EXHAUSTION", err)
	}
}

func TestGenerateInsufficientPool(t *testing.T) {
	p, err := pool.Parse(strings.NewReader("B::1\nI::2\nN::3\n"), "short.txt")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	_, err = Generate(testRNG(), p, Spec{Rows: 3, Cols: 3}, 1)
	if !errors.Is(err, errors.ErrCodeInsufficientValues) {
		t.Fatalf("Generate() error = %v, want INSUFFICIENT_VALUES", err)
	}
}

func TestGenerateInvalidCount(t *testing.T) {
	_, err := Generate(testRNG(), pool.Defaults(5), Spec{Rows: 5, Cols: 5}, 0)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("Generate() error = %v, want INVALID_CONFIG", err)
	}
}

func TestGenerateMultilineTagging(t *testing.T) {
	input := "B::one\\nmore\nB::a\nB::b\nI::c\nI::d\nI::e\nN::f\nN::g\nN::h\n"
	p, err := pool.Parse(strings.NewReader(input), "multi.txt")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cards, err := Generate(testRNG(), p, Spec{Rows: 3, Cols: 3}, 1)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	found := false
	for _, row := range cards[0].Cells {
		for _, cell := range row {
			if strings.Contains(cell.Text, "\n") {
				found = true
				if !cell.Multiline {
					t.Errorf("cell %q not tagged multiline", cell.Text)
				}
			} else if cell.Multiline {
				t.Errorf("single-line cell %q tagged multiline", cell.Text)
			}
		}
	}
	// Column B has exactly three values, so the multiline one is always drawn.
	if !found {
		t.Error("multiline value missing from the card")
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	spec := Spec{Rows: 5, Cols: 5, FreeSpace: true}
	a, err := Generate(rand.New(rand.NewPCG(42, 42)), pool.Defaults(5), spec, 5)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	b, err := Generate(rand.New(rand.NewPCG(42, 42)), pool.Defaults(5), spec, 5)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for i := range a {
		if a[i].Key() != b[i].Key() {
			t.Errorf("card %d differs between identically seeded runs", i)
		}
	}
}
