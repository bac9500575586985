package testutil

import (
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillUniformRange fills dst with random values in range [minVal, maxVal).
func (r *RNG) FillUniformRange(dst []float64, minVal, maxVal float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	span := maxVal - minVal
	for i := range dst {
		dst[i] = minVal + r.rand.Float64()*span
	}
}

// UniformMatrix generates a rows×cols matrix with values in range [0, 1).
func (r *RNG) UniformMatrix(rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	r.FillUniformRange(data, 0, 1)
	return mat.NewDense(rows, cols, data)
}

// Blobs generates perCenter points around every row of centers with
// isotropic Gaussian noise of standard deviation spread. Points are
// interleaved (point i belongs to center i % len(centers)); the returned
// labels hold that center index for every point.
func (r *RNG) Blobs(centers [][]float64, perCenter int, spread float64) (*mat.Dense, []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := len(centers)
	dim := len(centers[0])
	num := k * perCenter

	data := make([]float64, num*dim)
	labels := make([]int, num)

	for i := range num {
		c := i % k
		vec := data[i*dim : (i+1)*dim]
		for j := range dim {
			vec[j] = centers[c][j] + r.rand.NormFloat64()*spread
		}
		labels[i] = c
	}

	return mat.NewDense(num, dim, data), labels
}

// SamePartition reports whether two labelings group the points identically,
// regardless of how cluster indices are numbered.
func SamePartition(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	ab := make(map[int]int)
	ba := make(map[int]int)
	for i := range a {
		if v, ok := ab[a[i]]; ok && v != b[i] {
			return false
		}
		if v, ok := ba[b[i]]; ok && v != a[i] {
			return false
		}
		ab[a[i]] = b[i]
		ba[b[i]] = a[i]
	}
	return true
}

// RowSumsClose reports whether every row of m sums to want within tol.
func RowSumsClose(m mat.Matrix, want, tol float64) bool {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		var sum float64
		for j := 0; j < c; j++ {
			sum += m.At(i, j)
		}
		if math.Abs(sum-want) > tol {
			return false
		}
	}
	return true
}
