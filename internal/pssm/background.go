package pssm

import (
	"fmt"
	"strings"
)

// Alphabet is the row order of every matrix: the 20 canonical amino acids.
const Alphabet = "ACDEFGHIKLMNPQRSTVWY"

// Ambiguous is the residue symbol for an unresolved amino acid. It is a
// matrix row only when a matrix is built with ambiguous inclusion.
const Ambiguous byte = 'X'

// ambiguousRow is the row index of X in matrices that include it
const ambiguousRow = len(Alphabet)

// residueIndex maps a residue byte to its row, -1 if it's not a row.
var residueIndex [256]int

func init() {
	for i := range residueIndex {
		residueIndex[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		residueIndex[Alphabet[i]] = i
		residueIndex[Alphabet[i]+'a'-'A'] = i
	}
	residueIndex[Ambiguous] = ambiguousRow
	residueIndex['x'] = ambiguousRow
}

// Index returns the matrix row of a residue (case-insensitive). Canonical
// amino acids are 0-19, X is 20 and everything else is -1.
func Index(residue byte) int {
	return residueIndex[residue]
}

// Background is an immutable table of amino acid frequencies used for the
// pseudocounts of a matrix.
type Background struct {
	freqs [len(Alphabet) + 1]float64
}

// DefaultBackground is the amino acid composition of the PDB.
var DefaultBackground = Background{
	freqs: [len(Alphabet) + 1]float64{
		0.07843351606835683,  // A
		0.015193800942076749, // C
		0.0582383486327026,   // D
		0.06565599729916563,  // E
		0.04031959873318007,  // F
		0.07247078115203447,  // G
		0.023592109705319678, // H
		0.05868044949600502,  // I
		0.0605951481439802,   // K
		0.08932848897963121,  // L
		0.022564828062955164, // M
		0.044698808739128335, // N
		0.04393357233573943,  // P
		0.03837596257415237,  // Q
		0.04933041814703471,  // R
		0.05985724161214089,  // S
		0.057519733774898316, // T
		0.07181807951384982,  // V
		0.013960741443338746, // W
		0.035430767004806844, // Y
		0.05,                 // X, only read when X is a matrix row
	},
}

// NewBackground returns the default background with the frequencies in
// overrides replacing those of the same one-letter code.
func NewBackground(overrides map[string]float64) (Background, error) {
	bg := DefaultBackground
	for code, freq := range overrides {
		code = strings.TrimSpace(code)
		if len(code) != 1 || Index(code[0]) < 0 {
			return Background{}, fmt.Errorf("%w: unknown residue %q in background", ErrBackground, code)
		}
		if freq <= 0 || freq > 1 {
			return Background{}, fmt.Errorf("%w: frequency of %s must be in (0, 1], got %g", ErrBackground, code, freq)
		}
		bg.freqs[Index(code[0])] = freq
	}
	return bg, nil
}

// Frequency returns the background frequency of a residue, 0 if the residue
// isn't in the table.
func (b Background) Frequency(residue byte) float64 {
	i := Index(residue)
	if i < 0 {
		return 0
	}
	return b.freqs[i]
}

// validate checks that every frequency that will be read is positive, so the
// log scores are finite.
func (b Background) validate(rows int) error {
	for i := 0; i < rows; i++ {
		if b.freqs[i] <= 0 {
			return fmt.Errorf("%w: frequency of %c is %g", ErrBackground, symbol(i), b.freqs[i])
		}
	}
	return nil
}

// symbol is the residue of a matrix row
func symbol(row int) byte {
	if row == ambiguousRow {
		return Ambiguous
	}
	return Alphabet[row]
}
