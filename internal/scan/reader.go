package scan

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// record is one raw database entry, numbered in the order it was read.
type record struct {
	index    int
	name     string
	residues string
}

// reader streams records from a multi-record FASTA database.
type reader struct {
	in   *fasta.Reader
	next int
}

func newReader(r io.Reader) *reader {
	return &reader{in: fasta.NewReader(r, linear.NewSeq("", nil, alphabet.Protein))}
}

// read returns the next record, or io.EOF after the last one.
func (r *reader) read() (record, error) {
	s, err := r.in.Read()
	if err == io.EOF {
		return record{}, io.EOF
	}
	if err != nil {
		return record{}, fmt.Errorf("%w: record %d: %w", ErrMalformedRecord, r.next, err)
	}

	lin, ok := s.(*linear.Seq)
	if !ok {
		return record{}, fmt.Errorf("%w: record %d is a %T", ErrMalformedRecord, r.next, s)
	}

	name := lin.Name()
	if desc := lin.Description(); desc != "" {
		name += " " + desc
	}

	residues := make([]byte, len(lin.Seq))
	for i, l := range lin.Seq {
		residues[i] = byte(l)
	}

	rec := record{index: r.next, name: name, residues: string(residues)}
	r.next++
	return rec, nil
}
