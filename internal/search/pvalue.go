package search

import (
	"math"

	"github.com/RBVI/dasp3/internal/pssm"
	"github.com/cockroachdb/apd/v3"
)

// decimal128 has the 34 digit precision and half even rounding of IEEE
// decimal128. Underflow isn't trapped so (1-p)^n flushes to zero.
var decimal128 = func() *apd.Context {
	c := apd.BaseContext.WithPrecision(34)
	c.Rounding = apd.RoundHalfEven
	c.Traps = apd.DefaultTraps &^ (apd.Underflow | apd.Subnormal | apd.SystemUnderflow)
	return c
}()

// PValue is the probability that a single window of the sequence scores
// exactly score against m, read from the exact score distribution.
func PValue(m *pssm.Matrix, score float64, freqs []float64) (float64, error) {
	dist, err := Distribution(m, freqs)
	if err != nil {
		return 0, err
	}
	return dist[int(score)], nil
}

// Correct converts the p-value of one window into the probability of seeing
// a match at least that good in any of n windows: 1-(1-p)^n.
//
// p is often far below float64 epsilon, where 1-p rounds to 1, so the
// calculation is done in 34 digit decimal arithmetic.
func Correct(p float64, n int) float64 {
	if p <= 0 || n <= 0 {
		return math.Max(p, 0)
	}
	if p >= 1 {
		return 1
	}

	one := apd.New(1, 0)
	bigP, err := new(apd.Decimal).SetFloat64(p)
	if err != nil {
		return correctFloat(p, n)
	}

	q := new(apd.Decimal)
	if _, err = decimal128.Sub(q, one, bigP); err != nil {
		return correctFloat(p, n)
	}
	if _, err = decimal128.Pow(q, q, new(apd.Decimal).SetInt64(int64(n))); err != nil {
		return correctFloat(p, n)
	}
	if _, err = decimal128.Sub(q, one, q); err != nil {
		return correctFloat(p, n)
	}

	corrected, err := q.Float64()
	if err != nil || corrected == 0 {
		return correctFloat(p, n)
	}
	return corrected
}

// correctFloat is 1-(1-p)^n through log1p and expm1, used if the decimal
// context signals an error or p is too small for 1-p to differ from 1 in 34
// digits.
func correctFloat(p float64, n int) float64 {
	return -math.Expm1(float64(n) * math.Log1p(-p))
}
