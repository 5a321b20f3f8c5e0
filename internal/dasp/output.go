package dasp

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/RBVI/dasp3/internal/pssm"
	"github.com/RBVI/dasp3/internal/scan"
)

// Fragment is a profile fragment that a matrix was built from.
type Fragment struct {
	// Name of the fragment, from its file name
	Name string `json:"name"`

	// Consensus is the highest scoring residue of each column
	Consensus string `json:"consensus"`

	// Alignment rows of the fragment
	Alignment []string `json:"alignment"`
}

// MatchOutput is the placement of one fragment in a result sequence.
type MatchOutput struct {
	// Fragment is the name of the matched fragment
	Fragment string `json:"fragment"`

	// Start is the 0-based index of the window in the sequence
	Start int `json:"start"`

	// Window is the matched subsequence
	Window string `json:"seq"`

	// Score of the window against the fragment's matrix
	Score float64 `json:"score"`

	// PValue of the window, corrected for the sequence's length
	PValue float64 `json:"pvalue"`
}

// Result is a single significant database sequence.
type Result struct {
	// Name is the sequence's FASTA header
	Name string `json:"name"`

	// PValue is the combined p-value of all the matches
	PValue float64 `json:"pvalue"`

	// PseudoSignature is the matched windows in sequence order
	PseudoSignature string `json:"pseudosig"`

	// InContext is the sequence with the matched windows in upper case
	InContext string `json:"context"`

	// Matches in fragment order
	Matches []MatchOutput `json:"matches"`
}

// Output is a struct containing the results of a database search.
type Output struct {
	// Database is the path to the searched FASTA file
	Database string `json:"database"`

	// Time, ex: "2018-01-01 20:41:00"
	Time string `json:"time"`

	// Execution is the number of seconds it took to execute the command
	Execution float64 `json:"execution"`

	// Threshold is the combined p-value cutoff
	Threshold float64 `json:"threshold"`

	// Stats are the record counts of the scan
	Stats scan.Stats `json:"stats"`

	// Fragments in the order of each result's matches
	Fragments []Fragment `json:"fragments"`

	// Results ranked by increasing p-value
	Results []Result `json:"results"`
}

// NewOutput ranks the verdicts and gathers everything reported about a search.
func NewOutput(
	database string,
	matrices []*pssm.Matrix,
	res *scan.Result,
	threshold float64,
	seconds float64,
) Output {
	// using same format as log.Println https://golang.org/pkg/log/#Println
	t := time.Now()
	stamp := fmt.Sprintf(
		"%d/%02d/%02d %02d:%02d:%02d",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(),
	)

	fragments := make([]Fragment, len(matrices))
	for i, m := range matrices {
		fragments[i] = Fragment{
			Name:      m.Name,
			Consensus: m.Consensus(),
			Alignment: m.Alignment(),
		}
	}

	results := []Result{}
	for _, v := range Rank(res.Verdicts) {
		matches := make([]MatchOutput, len(v.Matches))
		for i, m := range v.Matches {
			matches[i] = MatchOutput{
				Fragment: fragments[i].Name,
				Start:    m.Start,
				Window:   Window(v, m),
				Score:    m.Score,
				PValue:   m.PValue,
			}
		}

		results = append(results, Result{
			Name:            v.Name,
			PValue:          v.PValue,
			PseudoSignature: PseudoSignature(v),
			InContext:       SignatureInContext(v),
			Matches:         matches,
		})
	}

	return Output{
		Database:  database,
		Time:      stamp,
		Execution: seconds,
		Threshold: threshold,
		Stats:     res.Stats,
		Fragments: fragments,
		Results:   results,
	}
}

// WriteJSON writes the output as indented JSON.
func WriteJSON(w io.Writer, out Output) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize output: %v", err)
	}

	if _, err = w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write the output: %v", err)
	}
	return nil
}

// WriteTSV writes the tab separated report: a header, one row per result
// with each fragment's index, window and p-value, then the alignment of
// every fragment.
func WriteTSV(w io.Writer, out Output) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%d Total Database Search Results\n\n", len(out.Results))

	sb.WriteString("Pvalue\tSeqName\tPseudosig")
	for i := range out.Fragments {
		fmt.Fprintf(&sb, "\tIndex%d\tMatchingSubSeq%d\tPvalue%d", i, i, i)
	}
	sb.WriteString("\n")

	for _, r := range out.Results {
		fmt.Fprintf(&sb, "%s\t%s\t%s", formatP(r.PValue), r.Name, r.PseudoSignature)
		for _, m := range r.Matches {
			fmt.Fprintf(&sb, "\t%d\t%s\t%s", m.Start, m.Window, formatP(m.PValue))
		}
		sb.WriteString("\n")
	}

	for i, f := range out.Fragments {
		fmt.Fprintf(&sb, "\nProfileFragment %d:\n", i)
		for _, row := range f.Alignment {
			sb.WriteString(row + "\n")
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write the output: %v", err)
	}
	return nil
}

// formatP is the shortest representation of a p-value that reads back exactly
func formatP(p float64) string {
	return strconv.FormatFloat(p, 'g', -1, 64)
}
