package fcm

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// InitCenters allocates a k×d center matrix and fills it row by row with
// independent uniform draws from [lo, hi).
func InitCenters(rng *rand.Rand, k, d int, lo, hi float64) *mat.Dense {
	data := make([]float64, k*d)
	span := hi - lo
	for i := range data {
		data[i] = lo + rng.Float64()*span
	}
	return mat.NewDense(k, d, data)
}
