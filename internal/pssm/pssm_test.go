package pssm

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func Test_New(t *testing.T) {
	type args struct {
		alignment []string
		includeX  bool
	}
	tests := []struct {
		name    string
		args    args
		width   int
		rows    int
		wantErr error
	}{
		{
			"conserved motif",
			args{
				alignment: []string{"ACDE", "ACDE", "acde", "AC-E"},
			},
			4,
			20,
			nil,
		},
		{
			"ambiguous row included",
			args{
				alignment: []string{"AXDE", "ACDE"},
				includeX:  true,
			},
			4,
			21,
			nil,
		},
		{
			"empty alignment",
			args{
				alignment: []string{},
			},
			0,
			0,
			ErrEmptyAlignment,
		},
		{
			"ragged alignment",
			args{
				alignment: []string{"ACDE", "ACD"},
			},
			0,
			0,
			ErrRaggedAlignment,
		},
		{
			"zero width rows",
			args{
				alignment: []string{"", ""},
			},
			0,
			0,
			ErrRaggedAlignment,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.name, tt.args.alignment, DefaultBackground, tt.args.includeX)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() err = %v, want %v", err, tt.wantErr)
				}
				if !errors.Is(err, ErrInput) {
					t.Errorf("New() err = %v, not an input error", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if m.Width() != tt.width {
				t.Errorf("Width() = %d, want %d", m.Width(), tt.width)
			}
			if m.Rows() != tt.rows {
				t.Errorf("Rows() = %d, want %d", m.Rows(), tt.rows)
			}
			if m.IncludesAmbiguous() != tt.args.includeX {
				t.Errorf("IncludesAmbiguous() = %v", m.IncludesAmbiguous())
			}

			// every cell is finite and an integer
			for col := 0; col < m.Width(); col++ {
				for r := 0; r < m.Rows(); r++ {
					s := m.Score(r, col)
					if math.IsInf(s, 0) || math.IsNaN(s) || s != math.Trunc(s) {
						t.Errorf("Score(%d, %d) = %v, not a finite integer", r, col, s)
					}
				}
			}
		})
	}
}

// the rounded natural log scores of a fully conserved column
func Test_New_scores(t *testing.T) {
	m, err := New("ACDE", []string{"ACDE", "ACDE", "ACDE", "ACDE", "ACDE", "ACDE", "ACDE", "ACDE", "ACDE", "ACDE"}, DefaultBackground, false)
	if err != nil {
		t.Fatal(err)
	}

	// (10 + 0.1*f) / 10.1 ~ 0.99, log rounds to 0
	if s := m.Score(Index('A'), 0); s != 0 {
		t.Errorf("consensus score = %v, want 0", s)
	}

	// 0.1*0.07247/10.1 = 7.2e-4, log = -7.24
	if s := m.Score(Index('G'), 0); s != -7 {
		t.Errorf("G score = %v, want -7", s)
	}

	// 0.1*0.01396/10.1 = 1.4e-4, log = -8.89
	if s := m.Score(Index('W'), 1); s != -9 {
		t.Errorf("W score = %v, want -9", s)
	}

	if m.Consensus() != "ACDE" {
		t.Errorf("Consensus() = %s, want ACDE", m.Consensus())
	}

	if m.MaxScore() != 0 {
		t.Errorf("MaxScore() = %v, want 0", m.MaxScore())
	}
}

// X in an alignment counts like a gap, so a scored X row is its pseudocount
func Test_New_ambiguousNotCounted(t *testing.T) {
	withX, err := New("AX", []string{"AX", "AX"}, DefaultBackground, true)
	if err != nil {
		t.Fatal(err)
	}
	gapped, err := New("A-", []string{"A-", "A-"}, DefaultBackground, true)
	if err != nil {
		t.Fatal(err)
	}

	// 0.1*0.05/2.1 = 2.4e-3, log = -6.04
	want := math.RoundToEven(math.Log(PseudocountWeight * 0.05 / 2.1))
	if s := withX.Score(Index('X'), 1); s != want {
		t.Errorf("X score = %v, want %v", s, want)
	}

	if !reflect.DeepEqual(withX.scores, gapped.scores) {
		t.Errorf("X changed the counts:\n%s\n%s", withX, gapped)
	}
}

// same alignment and background produce the same matrix
func Test_New_reproducible(t *testing.T) {
	alignment := []string{"GHKLMN", "GHRLMN", "GYKIMQ", "-HKLM-"}

	a, err := New("a", alignment, DefaultBackground, false)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New("b", alignment, DefaultBackground, false)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(a.scores, b.scores) {
		t.Errorf("matrices differ:\n%s\n%s", a, b)
	}
}

func Test_NewBackground(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]float64
		wantErr   bool
	}{
		{
			"lower case override",
			map[string]float64{"w": 0.2},
			false,
		},
		{
			"unknown residue",
			map[string]float64{"B": 0.2},
			true,
		},
		{
			"zero frequency",
			map[string]float64{"A": 0},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bg, err := NewBackground(tt.overrides)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewBackground() err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrBackground) {
				t.Errorf("NewBackground() err = %v, want ErrBackground", err)
			}
			if !tt.wantErr && bg.Frequency('W') != 0.2 {
				t.Errorf("Frequency(W) = %v, want 0.2", bg.Frequency('W'))
			}
		})
	}
}

// a synthetic background changes the scores of unobserved residues
func Test_New_syntheticBackground(t *testing.T) {
	bg, err := NewBackground(map[string]float64{"G": 0.9})
	if err != nil {
		t.Fatal(err)
	}

	m, err := New("synthetic", []string{"A"}, bg, false)
	if err != nil {
		t.Fatal(err)
	}

	// 0.1*0.9/1.1 = 0.0818, log = -2.50
	want := math.RoundToEven(math.Log(0.1 * 0.9 / 1.1))
	if s := m.Score(Index('G'), 0); s != want {
		t.Errorf("G score = %v, want %v", s, want)
	}
}

func Test_SortByWidth(t *testing.T) {
	mk := func(name string, width int) *Matrix {
		m, err := New(name, []string{strings.Repeat("A", width)}, DefaultBackground, false)
		if err != nil {
			t.Fatal(err)
		}
		return m
	}

	matrices := []*Matrix{mk("a", 4), mk("b", 7), mk("c", 4), mk("d", 5)}
	SortByWidth(matrices)

	var names []string
	for _, m := range matrices {
		names = append(names, m.Name)
	}

	if want := []string{"b", "d", "c", "a"}; !reflect.DeepEqual(names, want) {
		t.Errorf("SortByWidth() = %v, want %v", names, want)
	}
}

func Test_Matrix_String(t *testing.T) {
	m, err := New("A", []string{"A"}, DefaultBackground, false)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(m.String()), "\n")
	if len(lines) != 20 {
		t.Fatalf("String() has %d rows, want 20", len(lines))
	}
	if lines[0] != "A\t0\t" {
		t.Errorf("first row = %q, want %q", lines[0], "A\t0\t")
	}
}
