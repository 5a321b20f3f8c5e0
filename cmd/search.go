package cmd

import (
	"github.com/RBVI/dasp3/internal/dasp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// searchCmd is for searching a sequence database with a set of profile fragments
var searchCmd = &cobra.Command{
	Use:                        "search [fragment.fa] ... [fragmentN.fa]",
	Short:                      "Search a FASTA database for sequences matching every profile fragment",
	Run:                        dasp.SearchCmd,
	Args:                       cobra.MinimumNArgs(1),
	SuggestionsMinimumDistance: 2,
	Example:                    "  dasp search serine_site.fa histidine_site.fa -d uniprot.fa -o hits.tsv",
	Long: `
Build a PSSM from each aligned profile fragment and score every protein in the
database against all of them. The best window of each PSSM is found, widest
PSSM first and without overlapping an earlier window, and its exact p-value is
corrected for the sequence's length. The p-values are combined with QFAST and
sequences below the threshold are reported, most significant first.

Nucleic acid sequences in the database are skipped.`,
	Aliases: []string{"scan"},
}

// set flags
func init() {
	searchCmd.Flags().StringP("db", "d", "", "database to search <FASTA>")
	searchCmd.Flags().StringP("out", "o", "", "output file name, stdout if empty <TSV|JSON>")
	searchCmd.Flags().BoolP("json", "j", false, "write JSON rather than the tab separated report")
	searchCmd.Flags().Float64P("threshold", "p", 1e-50, "combined p-value a sequence has to be below")
	searchCmd.Flags().IntP("workers", "w", 2, "number of goroutines scoring sequences")
	searchCmd.Flags().Int("queue-size", 1000, "number of read sequences waiting for a worker")
	searchCmd.Flags().Duration("timeout", 0, "longest the search may take (default 168h)")

	searchCmd.MarkFlagRequired("db")

	// Bind the parameters to viper
	viper.BindPFlag("threshold", searchCmd.Flags().Lookup("threshold"))
	viper.BindPFlag("workers", searchCmd.Flags().Lookup("workers"))
	viper.BindPFlag("queue-size", searchCmd.Flags().Lookup("queue-size"))
	viper.BindPFlag("timeout", searchCmd.Flags().Lookup("timeout"))

	RootCmd.AddCommand(searchCmd)
}
