package distance

import (
	"fmt"
	"math"
)

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
// Panics if the vectors differ in length.
func SquaredL2(a, b []float64) float64 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("distance: dimension mismatch: %d != %d", len(a), len(b)))
	}

	var s0, s1, s2, s3 float64

	i := 0
	for ; i+4 <= len(a); i += 4 {
		d0 := a[i] - b[i]
		d1 := a[i+1] - b[i+1]
		d2 := a[i+2] - b[i+2]
		d3 := a[i+3] - b[i+3]
		s0 += d0 * d0
		s1 += d1 * d1
		s2 += d2 * d2
		s3 += d3 * d3
	}

	for ; i < len(a); i++ {
		d := a[i] - b[i]
		s0 += d * d
	}

	return (s0 + s1) + (s2 + s3)
}

// SquaredL2To writes the squared distance from v to every row in rows into dst.
// dst must have len(rows) elements.
func SquaredL2To(dst []float64, v []float64, rows [][]float64) {
	for j, r := range rows {
		dst[j] = SquaredL2(v, r)
	}
}

// ScaledSquaredL2To writes the squared distance from v to every row in rows,
// divided by scale², into dst and returns scale. scale is the largest
// absolute coordinate of v and rows, so the result stays finite for any
// finite input where SquaredL2To would overflow. It returns 1 and the
// unscaled distances when every coordinate is zero.
func ScaledSquaredL2To(dst []float64, v []float64, rows [][]float64) float64 {
	scale := maxAbs(v)
	for _, r := range rows {
		if len(r) != len(v) {
			panic(fmt.Sprintf("distance: dimension mismatch: %d != %d", len(v), len(r)))
		}
		scale = max(scale, maxAbs(r))
	}
	if scale == 0 || math.IsInf(scale, 0) {
		SquaredL2To(dst, v, rows)
		return 1
	}

	for j, r := range rows {
		var s float64
		for i := range v {
			d := v[i]/scale - r[i]/scale
			s += d * d
		}
		dst[j] = s
	}
	return scale
}

func maxAbs(v []float64) float64 {
	var m float64
	for _, x := range v {
		m = max(m, math.Abs(x))
	}
	return m
}
