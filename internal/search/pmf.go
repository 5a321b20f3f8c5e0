package search

import (
	"errors"
	"fmt"
	"sort"

	"github.com/RBVI/dasp3/internal/pssm"
)

// ErrScoringData is returned when a matrix can't produce a score distribution.
var ErrScoringData = errors.New("degenerate scoring data")

// PMF is a probability mass function over integer window scores.
type PMF map[int]float64

// Sum is the total probability in the PMF.
func (p PMF) Sum() float64 {
	total := 0.0
	for _, score := range p.Scores() {
		total += p[score]
	}
	return total
}

// ColumnPMF is the distribution of one column's score when residues are
// drawn with the frequencies in freqs. Residues with the same score in the
// column share its entry.
func ColumnPMF(m *pssm.Matrix, col int, freqs []float64) PMF {
	pmf := make(PMF)
	for row := 0; row < m.Rows(); row++ {
		pmf[int(m.Score(row, col))] += freqs[row]
	}
	return pmf
}

// Scores returns the scores of the PMF in increasing order.
func (p PMF) Scores() []int {
	scores := make([]int, 0, len(p))
	for score := range p {
		scores = append(scores, score)
	}
	sort.Ints(scores)
	return scores
}

// Convolve returns the distribution of the sum of two independent scores.
// Products are summed in score order so the result is reproducible to the bit.
func Convolve(a, b PMF) PMF {
	scoresB := b.Scores()

	c := make(PMF, len(a)*len(b))
	for _, scoreA := range a.Scores() {
		for _, scoreB := range scoresB {
			c[scoreA+scoreB] += a[scoreA] * b[scoreB]
		}
	}
	return c
}

// Distribution is the exact distribution of a full window score under the
// null model that each residue is drawn independently with the frequencies
// in freqs. It's the column PMFs convolved left to right.
func Distribution(m *pssm.Matrix, freqs []float64) (PMF, error) {
	if len(freqs) < m.Rows() {
		return nil, fmt.Errorf("%w: %d frequencies for %d matrix rows", ErrScoringData, len(freqs), m.Rows())
	}
	if m.Width() == 0 {
		return nil, fmt.Errorf("%w: matrix %s has no columns", ErrScoringData, m.Name)
	}

	dist := ColumnPMF(m, 0, freqs)
	for col := 1; col < m.Width(); col++ {
		dist = Convolve(dist, ColumnPMF(m, col, freqs))
	}

	if len(dist) == 0 {
		return nil, fmt.Errorf("%w: matrix %s has an empty score distribution", ErrScoringData, m.Name)
	}
	return dist, nil
}
