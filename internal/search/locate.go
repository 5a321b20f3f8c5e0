package search

import (
	"math"

	"github.com/RBVI/dasp3/internal/pssm"
)

// NoMatch is the start of a matrix without a valid placement.
const NoMatch = -1

// Placement is a window of the sequence claimed by a matrix.
type Placement struct {
	Start int
	Width int
}

// conflicts reports whether a window of width starting at start collides
// with a claimed placement. Windows that only touch also collide.
func (p Placement) conflicts(start, width int) bool {
	if p.Start == NoMatch {
		return false
	}
	if start <= p.Start {
		return start+width >= p.Start
	}
	return p.Start+p.Width >= start
}

// Locate finds the highest scoring window of m in the sequence that doesn't
// conflict with a claimed placement. Windows with an X are skipped unless X
// is a scored row of m.
//
// Placements are claimed greedily in the order matrices are located, so the
// result isn't an optimal packing of all the matrices: a window claimed by an
// earlier matrix is never given up for a later one.
func Locate(m *pssm.Matrix, s Sequence, claimed []Placement) (best Placement, score float64, ok bool) {
	width := m.Width()
	residues := s.Residues
	max := -math.MaxFloat64
	best = Placement{Start: NoMatch, Width: width}

windows:
	for start := 0; start+width <= len(residues); start++ {
		sum := 0.0
		for col := 0; col < width; col++ {
			row := m.Row(residues[start+col])
			if row < 0 {
				continue windows
			}
			sum += m.Score(row, col)
		}

		if sum <= max {
			continue
		}
		for _, c := range claimed {
			if c.conflicts(start, width) {
				continue windows
			}
		}

		max = sum
		best.Start = start
	}

	if best.Start == NoMatch {
		return best, math.Inf(-1), false
	}
	return best, max, true
}
