// Package search scores protein sequences against a set of PSSMs: it places
// each matrix in the sequence, computes the exact p-value of each placement
// and combines them into one significance value per sequence.
package search

import (
	"fmt"

	"github.com/RBVI/dasp3/internal/pssm"
)

// Match is the placement of one matrix in a sequence.
type Match struct {
	// Start of the window in the sequence's residues, NoMatch if none was found
	Start int `json:"start"`

	// Width of the matrix
	Width int `json:"width"`

	// Score of the window
	Score float64 `json:"score"`

	// PValue is the p-value of the window, corrected for the number of
	// windows in the sequence
	PValue float64 `json:"pvalue"`
}

// Verdict is a sequence that significantly matches every matrix.
type Verdict struct {
	// Index is the record's position in the database, from 0
	Index int `json:"-"`

	// Name of the sequence
	Name string `json:"name"`

	// Residues of the sequence that were scored
	Residues string `json:"seq"`

	// PValue is the combined p-value of all the matches
	PValue float64 `json:"pvalue"`

	// Matches are in the same order as the matrices given to NewSearcher
	Matches []Match `json:"matches"`
}

// Searcher scores sequences against a fixed list of matrices. It's safe for
// concurrent use.
type Searcher struct {
	// matrices in the order their placements are claimed
	matrices []*pssm.Matrix
}

// NewSearcher returns a Searcher for the matrices. Placements are claimed,
// and matches reported, in the order of matrices, so callers put the widest
// first with pssm.SortByWidth.
func NewSearcher(matrices []*pssm.Matrix) (*Searcher, error) {
	if len(matrices) == 0 {
		return nil, fmt.Errorf("%w: no matrices to search with", pssm.ErrInput)
	}

	includeX := matrices[0].IncludesAmbiguous()
	for _, m := range matrices[1:] {
		if m.IncludesAmbiguous() != includeX {
			return nil, fmt.Errorf("%w: matrices %s and %s disagree on scoring X", pssm.ErrInput, matrices[0].Name, m.Name)
		}
	}

	return &Searcher{
		matrices: append([]*pssm.Matrix(nil), matrices...),
	}, nil
}

// Matrices returns the matrices in the order matches are reported.
func (s *Searcher) Matrices() []*pssm.Matrix {
	return append([]*pssm.Matrix(nil), s.matrices...)
}

// Match places every matrix in the sequence and computes each placement's
// corrected p-value. ok is false if a matrix has no valid placement, in which
// case the sequence isn't a hit.
func (s *Searcher) Match(seq Sequence) (matches []Match, ok bool, err error) {
	rows := s.matrices[0].Rows()
	freqs := Composition(seq, rows)
	length := seq.effectiveLength()

	matches = make([]Match, len(s.matrices))
	claimed := make([]Placement, 0, len(s.matrices))
	for i, m := range s.matrices {

		placement, score, found := Locate(m, seq, claimed)
		if !found {
			return nil, false, nil
		}
		claimed = append(claimed, placement)

		p, err := PValue(m, score, freqs)
		if err != nil {
			return nil, false, fmt.Errorf("failed to score %s against %s: %w", seq.Name, m.Name, err)
		}

		matches[i] = Match{
			Start:  placement.Start,
			Width:  placement.Width,
			Score:  score,
			PValue: Correct(p, length-m.Width()+1),
		}
	}

	return matches, true, nil
}

// Score matches the sequence and combines the match p-values. ok is false if
// the sequence has a matrix without a placement.
func (s *Searcher) Score(index int, seq Sequence) (v Verdict, ok bool, err error) {
	matches, ok, err := s.Match(seq)
	if err != nil || !ok {
		return Verdict{}, false, err
	}

	product := 1.0
	for _, m := range matches {
		product *= m.PValue
	}

	return Verdict{
		Index:    index,
		Name:     seq.Name,
		Residues: seq.Residues,
		PValue:   QFAST(product, len(matches)),
		Matches:  matches,
	}, true, nil
}

// Significant is whether a combined p-value passes the threshold. A p-value
// of 0 is an underflow rather than a certain hit, and doesn't pass.
func Significant(p, threshold float64) bool {
	return p > 0 && p < threshold
}
