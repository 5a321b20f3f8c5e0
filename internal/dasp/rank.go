package dasp

import (
	"sort"
	"strings"

	"github.com/RBVI/dasp3/internal/search"
)

// Rank sorts verdicts by increasing combined p-value. Ties keep database
// order so the ranking doesn't depend on how the workers were scheduled.
func Rank(verdicts []search.Verdict) []search.Verdict {
	ranked := append([]search.Verdict(nil), verdicts...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].PValue != ranked[j].PValue {
			return ranked[i].PValue < ranked[j].PValue
		}
		return ranked[i].Index < ranked[j].Index
	})
	return ranked
}

// placed returns the matches that have a window in the sequence, ordered by
// their start.
func placed(v search.Verdict) []search.Match {
	var matches []search.Match
	for _, m := range v.Matches {
		if m.Start != search.NoMatch && m.Start+m.Width <= len(v.Residues) {
			matches = append(matches, m)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Start < matches[j].Start
	})
	return matches
}

// PseudoSignature joins the matched windows in sequence order, alternating
// between upper and lower case so the fragments can be told apart.
func PseudoSignature(v search.Verdict) string {
	var sb strings.Builder
	for i, m := range placed(v) {
		window := v.Residues[m.Start : m.Start+m.Width]
		if i%2 == 0 {
			sb.WriteString(strings.ToUpper(window))
		} else {
			sb.WriteString(strings.ToLower(window))
		}
	}
	return sb.String()
}

// SignatureInContext is the whole sequence in lower case with the matched
// windows in upper case.
func SignatureInContext(v search.Verdict) string {
	in := []byte(strings.ToLower(v.Residues))
	for _, m := range placed(v) {
		copy(in[m.Start:], strings.ToUpper(v.Residues[m.Start:m.Start+m.Width]))
	}
	return string(in)
}

// Window is the matched subsequence of a match, empty if it has no window.
func Window(v search.Verdict, m search.Match) string {
	if m.Start == search.NoMatch || m.Start+m.Width > len(v.Residues) {
		return ""
	}
	return v.Residues[m.Start : m.Start+m.Width]
}
