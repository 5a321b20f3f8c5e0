// Package pssm builds position-specific scoring matrices from aligned
// motif fragments.
package pssm

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// PseudocountWeight is b in the pseudocount b*f_a added to every cell.
const PseudocountWeight = 0.1

var (
	// ErrInput is the root of every error caused by bad matrix input data.
	ErrInput = errors.New("invalid matrix input")

	// ErrEmptyAlignment is returned for an alignment without rows.
	ErrEmptyAlignment = fmt.Errorf("%w: empty alignment", ErrInput)

	// ErrRaggedAlignment is returned when rows differ in width or have none.
	ErrRaggedAlignment = fmt.Errorf("%w: alignment rows differ in width", ErrInput)

	// ErrBackground is returned for an unusable background frequency table.
	ErrBackground = fmt.Errorf("%w: bad background frequencies", ErrInput)
)

// Matrix is a PSSM: a natural log score for each residue at each column
// of a motif. It's immutable after New and safe to share between goroutines.
type Matrix struct {
	// Name of the motif fragment the matrix was built from
	Name string

	// scores[col][row]
	scores [][]float64

	// rows is 20, or 21 when X is a scored symbol
	rows int

	// the aligned rows the matrix was built from
	alignment []string
}

// New builds a matrix from an alignment of equal width rows.
//
// For each column the count of each canonical amino acid gets a pseudocount of
// PseudocountWeight*f_a, is divided by PseudocountWeight+N and the natural log
// is rounded to an integer. X never counts, so when includeX is set its row is
// the pseudocount alone. Rounding keeps the number of distinct scores in a
// column small, which is what makes the exact p-value convolution tractable.
func New(name string, alignment []string, bg Background, includeX bool) (*Matrix, error) {
	if len(alignment) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyAlignment)
	}

	width := len(alignment[0])
	for i, row := range alignment {
		if len(row) != width || width == 0 {
			return nil, fmt.Errorf("%s: %w: row %d has %d columns, row 0 has %d", name, ErrRaggedAlignment, i, len(row), width)
		}
	}

	rows := len(Alphabet)
	if includeX {
		rows++
	}
	if err := bg.validate(rows); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	counts := make([][]float64, width)
	for col := range counts {
		counts[col] = make([]float64, rows)
	}
	for _, row := range alignment {
		for col := 0; col < width; col++ {
			if r := Index(row[col]); r >= 0 && r < len(Alphabet) {
				counts[col][r]++
			}
		}
	}

	n := float64(len(alignment))
	scores := make([][]float64, width)
	for col := range scores {
		scores[col] = make([]float64, rows)
		for r := 0; r < rows; r++ {
			freq := (counts[col][r] + PseudocountWeight*bg.freqs[r]) / (PseudocountWeight + n)
			scores[col][r] = math.RoundToEven(math.Log(freq))
		}
	}

	return &Matrix{
		Name:      name,
		scores:    scores,
		rows:      rows,
		alignment: append([]string(nil), alignment...),
	}, nil
}

// Width is the number of columns (motif length).
func (m *Matrix) Width() int {
	return len(m.scores)
}

// Rows is the number of scored symbols: 20, or 21 if X is scored.
func (m *Matrix) Rows() int {
	return m.rows
}

// IncludesAmbiguous is whether X is a scored row.
func (m *Matrix) IncludesAmbiguous() bool {
	return m.rows > len(Alphabet)
}

// Row returns the matrix row of a residue, or -1 if the residue isn't scored.
func (m *Matrix) Row(residue byte) int {
	if r := Index(residue); r < m.rows {
		return r
	}
	return -1
}

// Score is the score of a row at a column.
func (m *Matrix) Score(row, col int) float64 {
	return m.scores[col][row]
}

// MaxScore is the highest score any window can reach: the sum of the
// per-column maximums.
func (m *Matrix) MaxScore() float64 {
	total := 0.0
	for _, col := range m.scores {
		best := math.Inf(-1)
		for _, s := range col {
			if s > best {
				best = s
			}
		}
		total += best
	}
	return total
}

// Consensus is the highest scoring residue of each column. Ties go to the
// residue first in Alphabet.
func (m *Matrix) Consensus() string {
	var sb strings.Builder
	for _, col := range m.scores {
		best := 0
		for r, s := range col {
			if s > col[best] {
				best = r
			}
		}
		sb.WriteByte(symbol(best))
	}
	return sb.String()
}

// Alignment returns a copy of the rows the matrix was built from.
func (m *Matrix) Alignment() []string {
	return append([]string(nil), m.alignment...)
}

// String renders the matrix with a row per residue and a column per position.
func (m *Matrix) String() string {
	var sb strings.Builder
	for r := 0; r < m.rows; r++ {
		sb.WriteByte(symbol(r))
		sb.WriteByte('\t')
		for col := range m.scores {
			s := m.scores[col][r]
			if s == 0 {
				s = 0 // no "-0"
			}
			fmt.Fprintf(&sb, "%g\t", s)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// SortByWidth orders matrices widest first. Matrices of equal width end up in
// the reverse of their input order (an ascending stable sort, then reversed).
func SortByWidth(matrices []*Matrix) {
	sorted := make([]*Matrix, len(matrices))
	for i, j := range WidthOrder(matrices) {
		sorted[i] = matrices[j]
	}
	copy(matrices, sorted)
}

// WidthOrder returns the indexes of matrices in SortByWidth order.
func WidthOrder(matrices []*Matrix) []int {
	order := make([]int, len(matrices))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return matrices[order[i]].Width() < matrices[order[j]].Width()
	})
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}
