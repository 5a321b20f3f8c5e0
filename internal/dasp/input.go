// Package dasp ties the scoring engine to the command line: it reads
// aligned motif fragments, runs the database scan and writes the report.
package dasp

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/RBVI/dasp3/config"
	"github.com/RBVI/dasp3/internal/pssm"
	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/spf13/cobra"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// Flags contains parsed cobra Flags like "db", "out", etc that are used by
// the commands.
type Flags struct {
	// paths to the aligned motif fragments, one FASTA file each
	motifs []string

	// path to the FASTA database to search
	db string

	// the name of the file to write the output to, stdout if empty
	out string

	// whether to write JSON rather than the tab separated report
	json bool
}

// parseCmdFlags gathers the motif paths, db path, etc from a cobra cmd
// object. strict commands need a database.
func parseCmdFlags(cmd *cobra.Command, args []string, strict bool) (*Flags, *config.Config) {
	var err error
	fs := &Flags{motifs: args}
	c := config.New()

	if len(fs.motifs) == 0 {
		cmd.Help()
		stderr.Fatal("no motif fragment files")
	}

	if fs.db, err = cmd.Flags().GetString("db"); strict && (fs.db == "" || err != nil) {
		cmd.Help()
		stderr.Fatal("no database to search [-d]")
	}

	if fs.out, err = cmd.Flags().GetString("out"); err != nil {
		fs.out = ""
	}

	// json output if asked for or guessed from the output file
	fs.json, _ = cmd.Flags().GetBool("json")
	fs.json = fs.json || strings.EqualFold(filepath.Ext(fs.out), ".json")

	return fs, c
}

// ReadMotifs reads each aligned motif fragment file and builds its matrix.
// Matrices are named after their file and returned in the order of paths.
func ReadMotifs(paths []string, bg pssm.Background, includeX bool) ([]*pssm.Matrix, error) {
	var matrices []*pssm.Matrix
	for _, path := range paths {
		alignment, err := readAlignment(path)
		if err != nil {
			return nil, err
		}

		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		m, err := pssm.New(name, alignment, bg, includeX)
		if err != nil {
			return nil, fmt.Errorf("failed to build a matrix from %s: %w", path, err)
		}
		matrices = append(matrices, m)
	}
	return matrices, nil
}

// readAlignment returns the aligned rows of a FASTA file.
func readAlignment(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open motif fragment %s: %v", path, err)
	}
	defer f.Close()

	in := fasta.NewReader(f, linear.NewSeq("", nil, alphabet.Protein))

	var rows []string
	for {
		s, err := in.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read motif fragment %s: %v", path, err)
		}

		lin, ok := s.(*linear.Seq)
		if !ok {
			return nil, fmt.Errorf("failed to read motif fragment %s: unexpected %T", path, s)
		}

		row := make([]byte, len(lin.Seq))
		for i, l := range lin.Seq {
			row[i] = byte(l)
		}
		rows = append(rows, string(row))
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s has no sequences", pssm.ErrEmptyAlignment, path)
	}
	return rows, nil
}
