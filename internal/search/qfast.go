package search

import "math"

// QFAST combines n independent p-values, given as their product p, into the
// probability that the product of n uniform p-values is at most p.
//
//	q = p * sum_{i=0}^{n-1} (-ln p)^i / i!
//
// A product of exactly 0 combines to 0.
func QFAST(p float64, n int) float64 {
	if p == 0 {
		return 0
	}

	x := 0.0
	if n > 1 {
		x = -math.Log(p)
	}

	t, q := p, p
	for i := 1; i < n; i++ {
		t *= x / float64(i)
		q += t
	}
	return q
}
