package search

import (
	"math"
	"strings"
	"testing"
)

func Test_Distribution(t *testing.T) {
	m := mustMatrix(t, "GHKLMN", 3, false)
	s := mustSequence(t, "MKVLATGHKLMNPQRSTWYAAEDCF")
	freqs := Composition(s, m.Rows())

	dist, err := Distribution(m, freqs)
	if err != nil {
		t.Fatal(err)
	}

	// probability is conserved
	if sum := dist.Sum(); math.Abs(sum-1) > 1e-9 {
		t.Errorf("distribution sums to %v", sum)
	}

	// convolving right to left gives the same distribution
	resplit := ColumnPMF(m, m.Width()-1, freqs)
	for col := m.Width() - 2; col >= 0; col-- {
		resplit = Convolve(ColumnPMF(m, col, freqs), resplit)
	}

	// and so does convolving the two halves separately
	left := Convolve(Convolve(ColumnPMF(m, 0, freqs), ColumnPMF(m, 1, freqs)), ColumnPMF(m, 2, freqs))
	right := Convolve(Convolve(ColumnPMF(m, 3, freqs), ColumnPMF(m, 4, freqs)), ColumnPMF(m, 5, freqs))
	halves := Convolve(left, right)

	for name, other := range map[string]PMF{"right to left": resplit, "halves": halves} {
		if len(other) != len(dist) {
			t.Errorf("%s has %d scores, want %d", name, len(other), len(dist))
		}
		for score, p := range dist {
			if math.Abs(other[score]-p) > 1e-12 {
				t.Errorf("%s: P(%d) = %v, want %v", name, score, other[score], p)
			}
		}
	}
}

func Test_Distribution_degenerate(t *testing.T) {
	m := mustMatrix(t, "ACDE", 1, false)

	if _, err := Distribution(m, []float64{0.5, 0.5}); err == nil {
		t.Error("Distribution() with too few frequencies should fail")
	}
}

func Test_ColumnPMF(t *testing.T) {
	m := mustMatrix(t, "ACDE", 10, false)
	s := mustSequence(t, "ACDE"+strings.Repeat("G", 16))

	pmf := ColumnPMF(m, 0, Composition(s, m.Rows()))

	// only A scores 0 in the first column
	if math.Abs(pmf[0]-0.05) > 1e-12 {
		t.Errorf("P(0) = %v, want 0.05", pmf[0])
	}

	// D, E and G share a score of -7
	if math.Abs(pmf[-7]-0.9) > 1e-12 {
		t.Errorf("P(-7) = %v, want 0.9", pmf[-7])
	}
}

func Test_PValue(t *testing.T) {
	m := mustMatrix(t, "ACDE", 10, false)
	freqs := Composition(mustSequence(t, "ACDE"+strings.Repeat("G", 16)), m.Rows())

	tests := []struct {
		name  string
		score float64
		want  float64
	}{
		{
			"consensus",
			0,
			math.Pow(0.05, 4),
		},
		{
			// one W in the second column, the only way to reach -9
			"one substitution",
			-9,
			math.Pow(0.05, 4),
		},
		{
			"unreachable score",
			1,
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PValue(m, tt.score, freqs)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-tt.want) > 1e-15 {
				t.Errorf("PValue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_Correct(t *testing.T) {
	tests := []struct {
		name string
		p    float64
		n    int
		want float64
	}{
		{"one window", 0.5, 1, 0.5},
		{"two windows", 0.5, 2, 0.75},
		{"zero", 0, 1000, 0},
		{"certain", 1, 1000, 1},
		{"below float epsilon", 1e-20, 100, 1e-18},
		{"far below float epsilon", 1e-200, 1000000, 1e-194},
		{"many windows", 0.5, 100000, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Correct(tt.p, tt.n)
			if tt.want == 0 {
				if got != 0 {
					t.Errorf("Correct() = %v, want 0", got)
				}
				return
			}
			if math.Abs(got-tt.want)/tt.want > 1e-12 {
				t.Errorf("Correct() = %v, want %v", got, tt.want)
			}
		})
	}

	// float64 arithmetic loses a p-value this small entirely
	if naive := 1 - math.Pow(1-1e-20, 100); naive != 0 {
		t.Fatalf("naive correction = %v", naive)
	}
}

func Test_QFAST(t *testing.T) {
	tests := []struct {
		name string
		p    float64
		n    int
		want float64
	}{
		{"single p-value", 0.03, 1, 0.03},
		{"single tiny p-value", 1e-80, 1, 1e-80},
		{"zero product", 0, 1, 0},
		{"zero product of many", 0, 5, 0},
		{"two p-values", 0.01, 2, 0.01 * (1 + math.Log(100))},
		{"three p-values", 0.01, 3, 0.01 * (1 + math.Log(100) + math.Log(100)*math.Log(100)/2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QFAST(tt.p, tt.n)
			if tt.want == 0 {
				if got != 0 {
					t.Errorf("QFAST() = %v, want 0", got)
				}
				return
			}
			if math.Abs(got-tt.want)/tt.want > 1e-12 {
				t.Errorf("QFAST() = %v, want %v", got, tt.want)
			}
		})
	}
}
