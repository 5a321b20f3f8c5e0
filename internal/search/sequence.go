package search

import (
	"github.com/RBVI/dasp3/internal/pssm"
)

// Sequence is a cleaned protein sequence from the database.
type Sequence struct {
	// Name is the record's header (id and description)
	Name string

	// Residues are upper case. Ambiguous residue codes are X
	Residues string

	// Ambiguous is the count of X in Residues
	Ambiguous int
}

// NewSequence cleans a raw database sequence. The residues are upper cased,
// ambiguity codes (B, J, O, U, Z) become X and symbols that aren't amino
// acids (gaps, stops, whitespace, digits) are dropped.
//
// ok is false for nucleic acid sequences, those without a residue that only
// occurs in proteins, and they shouldn't be scored.
func NewSequence(name, raw string) (s Sequence, ok bool) {
	residues := make([]byte, 0, len(raw))
	ambiguous := 0
	protein := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}

		switch c {
		case 'B', 'J', 'O', 'U', 'X', 'Z':
			residues = append(residues, pssm.Ambiguous)
			ambiguous++
		case 'D', 'E', 'F', 'H', 'I', 'K', 'L', 'M', 'N', 'P', 'Q', 'R', 'S', 'V', 'W', 'Y':
			protein = true
			residues = append(residues, c)
		case 'A', 'C', 'G', 'T':
			residues = append(residues, c)
		}
	}

	if !protein {
		return Sequence{}, false
	}

	return Sequence{
		Name:      name,
		Residues:  string(residues),
		Ambiguous: ambiguous,
	}, true
}

// effectiveLength is the number of resolved residues. It's the same whether or
// not X is a scored row.
func (s Sequence) effectiveLength() int {
	return len(s.Residues) - s.Ambiguous
}

// Composition is the frequency of each matrix row's residue in the sequence,
// the null model of the p-value calculation. Frequencies are normalized by the
// resolved residue count, so when X is a scored row they sum to more than 1.
func Composition(s Sequence, rows int) []float64 {
	freqs := make([]float64, rows)
	n := s.effectiveLength()
	if n <= 0 {
		return freqs
	}

	inc := 1 / float64(n)
	for i := 0; i < len(s.Residues); i++ {
		if r := pssm.Index(s.Residues[i]); r >= 0 && r < rows {
			freqs[r] += inc
		}
	}
	return freqs
}
