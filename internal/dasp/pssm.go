package dasp

import (
	"fmt"
	"io"
	"os"

	"github.com/RBVI/dasp3/internal/pssm"
	"github.com/spf13/cobra"
)

// PSSMCmd builds a matrix from each motif fragment and logs them, widest
// first, in the order a search places them.
func PSSMCmd(cmd *cobra.Command, args []string) {
	flags, conf := parseCmdFlags(cmd, args, false)

	bg, err := conf.BackgroundTable()
	if err != nil {
		stderr.Fatal(err)
	}

	matrices, err := ReadMotifs(flags.motifs, bg, conf.IncludeX)
	if err != nil {
		stderr.Fatal(err)
	}
	pssm.SortByWidth(matrices)

	if err := writeMatrices(os.Stdout, matrices); err != nil {
		stderr.Fatal(err)
	}
}

// writeMatrices writes each matrix with its name, width and consensus.
func writeMatrices(w io.Writer, matrices []*pssm.Matrix) error {
	for i, m := range matrices {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		_, err := fmt.Fprintf(w, "ProfileFragment %d: %s\nwidth: %d\nconsensus: %s\n%s", i, m.Name, m.Width(), m.Consensus(), m)
		if err != nil {
			return fmt.Errorf("failed to write matrix %s: %v", m.Name, err)
		}
	}
	return nil
}
