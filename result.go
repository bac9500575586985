package fcmeans

import (
	"github.com/RoaringBitmap/roaring/v2"
	"gonum.org/v1/gonum/mat"
)

// Result holds the outcome of a clustering run.
type Result struct {
	// Centers is the k×d matrix of final cluster centers.
	Centers *mat.Dense

	// Memberships is the m×k membership matrix computed against Centers.
	// Every row sums to 1.
	Memberships *mat.Dense

	// Labels holds the index of the nearest center for every point. It is
	// derived from Centers by squared distance, not from Memberships.
	Labels []int

	// Initial is a copy of the centers the run started from.
	Initial *mat.Dense

	// Iterations is the number of refinement iterations performed.
	Iterations int

	// Objective is Σ u[i,j]^q · ‖x_i - c_j‖² of Memberships against Centers.
	Objective float64
}

// K returns the number of clusters.
func (r *Result) K() int {
	k, _ := r.Centers.Dims()
	return k
}

// Labeled returns a copy of data with the hard labels appended as an extra
// last column.
func (r *Result) Labeled(data *mat.Dense) (*mat.Dense, error) {
	return AppendLabels(data, r.Labels)
}

// Partition returns, for every cluster, the set of point indices labeled
// with it.
func (r *Result) Partition() []*roaring.Bitmap {
	parts := make([]*roaring.Bitmap, r.K())
	for j := range parts {
		parts[j] = roaring.New()
	}
	for i, l := range r.Labels {
		parts[l].Add(uint32(i))
	}
	return parts
}

// Sizes returns the number of points labeled with each cluster.
func (r *Result) Sizes() []int {
	return PartitionSizes(r.Partition())
}

// PartitionSizes returns the cardinality of every set in parts.
func PartitionSizes(parts []*roaring.Bitmap) []int {
	sizes := make([]int, len(parts))
	for j, p := range parts {
		sizes[j] = int(p.GetCardinality())
	}
	return sizes
}
