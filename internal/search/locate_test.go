package search

import (
	"testing"
)

func Test_Placement_conflicts(t *testing.T) {
	claimed := Placement{Start: 10, Width: 4}

	tests := []struct {
		name  string
		start int
		width int
		want  bool
	}{
		{"ends before", 5, 4, false},
		{"touches the start", 6, 4, true},
		{"same start", 10, 4, true},
		{"inside", 11, 2, true},
		{"touches the end", 14, 4, true},
		{"starts after", 15, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := claimed.conflicts(tt.start, tt.width); got != tt.want {
				t.Errorf("conflicts(%d, %d) = %v, want %v", tt.start, tt.width, got, tt.want)
			}
		})
	}

	if (Placement{Start: NoMatch, Width: 4}).conflicts(0, 4) {
		t.Error("a missing placement conflicts")
	}
}

func Test_Locate(t *testing.T) {
	m := mustMatrix(t, "ACDE", 10, false)
	mx := mustMatrix(t, "ACDE", 10, true)

	tests := []struct {
		name      string
		seq       string
		claimed   []Placement
		x         bool
		wantStart int
		wantOK    bool
	}{
		{
			"consensus copy",
			"GGGACDEGGG",
			nil,
			false,
			3,
			true,
		},
		{
			"windows with X are skipped",
			"ACDXGGGW",
			nil,
			false,
			4,
			true,
		},
		{
			"windows with X are scored when X is a row",
			"ACDXGGGW",
			nil,
			true,
			0,
			true,
		},
		{
			"claimed consensus",
			"GGGACDEGGG",
			[]Placement{{Start: 2, Width: 3}},
			false,
			6,
			true,
		},
		{
			"everything claimed",
			"ACDEW",
			[]Placement{{Start: 0, Width: 5}},
			false,
			NoMatch,
			false,
		},
		{
			"only ambiguous windows",
			"WXDEFXHI",
			nil,
			false,
			NoMatch,
			false,
		},
		{
			"shorter than the matrix",
			"DEW",
			nil,
			false,
			NoMatch,
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matrix := m
			if tt.x {
				matrix = mx
			}

			got, score, ok := Locate(matrix, mustSequence(t, tt.seq), tt.claimed)
			if ok != tt.wantOK {
				t.Fatalf("Locate() ok = %v, want %v", ok, tt.wantOK)
			}
			if got.Start != tt.wantStart {
				t.Errorf("Locate() start = %d, want %d", got.Start, tt.wantStart)
			}
			if got.Width != 4 {
				t.Errorf("Locate() width = %d, want 4", got.Width)
			}
			if tt.name == "consensus copy" && score != matrix.MaxScore() {
				t.Errorf("Locate() score = %v, want the max %v", score, matrix.MaxScore())
			}
		})
	}
}
