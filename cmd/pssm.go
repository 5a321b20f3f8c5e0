package cmd

import (
	"github.com/RBVI/dasp3/internal/dasp"
	"github.com/spf13/cobra"
)

// pssmCmd is for logging the PSSMs built from profile fragments
var pssmCmd = &cobra.Command{
	Use:                        "pssm [fragment.fa] ... [fragmentN.fa]",
	Short:                      "Log the PSSM of each profile fragment",
	Run:                        dasp.PSSMCmd,
	Args:                       cobra.MinimumNArgs(1),
	SuggestionsMinimumDistance: 2,
	Example:                    "  dasp pssm serine_site.fa histidine_site.fa",
	Long: `
Build a PSSM from each aligned profile fragment and write it to stdout with a
row per residue and a column per alignment position. PSSMs are written widest
first, the order they're placed in during a search.`,
	Aliases: []string{"matrix"},
}

func init() {
	RootCmd.AddCommand(pssmCmd)
}
