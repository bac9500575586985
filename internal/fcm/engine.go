package fcm

import (
	"context"
	"math"

	"github.com/hupe1980/fcmeans/distance"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Engine runs the membership, center-update and nearest-assignment passes
// for a fixed fuzzifier.
type Engine struct {
	q       float64
	workers int
}

// NewEngine creates an engine for fuzzifier q. The caller guarantees q > 1.
// workers <= 1 runs every pass on the calling goroutine.
func NewEngine(q float64, workers int) *Engine {
	return &Engine{q: q, workers: workers}
}

// Fuzzifier returns the engine's fuzzifier.
func (e *Engine) Fuzzifier() float64 {
	return e.q
}

// Memberships writes the fuzzy membership of every point in data to every
// center into dst (m×k) and returns the objective Σ u[i,j]^q · d[i,j] of the
// written memberships against centers.
//
// Raw weights are taken relative to the row's nearest center,
// (d[i,j]/dmin)^(1/(1-q)), which keeps them in (0, 1] and normalizes to the
// same memberships as d[i,j]^(1/(1-q)). A point that coincides with one or
// more centers splits its membership evenly across those centers. Rows whose
// distances all overflow are weighted in scaled space, so memberships stay
// finite; the returned objective may then be +Inf.
func (e *Engine) Memberships(ctx context.Context, data, centers, dst *mat.Dense) (float64, error) {
	m, _ := data.Dims()
	k, _ := centers.Dims()

	rows := rowViews(centers)
	exp := 1 / (1 - e.q)
	partial := make([]float64, m)

	err := e.forEachRange(ctx, m, func(lo, hi int) {
		dist := make([]float64, k)
		for i := lo; i < hi; i++ {
			out := dst.RawRowView(i)
			scale := rowDistances(dist, data.RawRowView(i), rows)
			membershipRow(exp, dist, out)
			partial[i] = rowObjective(e.q, dist, out) * scale * scale
		}
	})
	if err != nil {
		return 0, err
	}

	var objective float64
	for _, v := range partial {
		objective += v
	}
	return objective, nil
}

// rowDistances writes the squared distances from p to rows into dist and
// returns the factor they were divided by. The factor is 1 unless every
// distance overflowed.
func rowDistances(dist, p []float64, rows [][]float64) float64 {
	distance.SquaredL2To(dist, p, rows)
	if !math.IsInf(floats.Min(dist), 1) {
		return 1
	}
	return distance.ScaledSquaredL2To(dist, p, rows)
}

func membershipRow(exp float64, dist, out []float64) {
	minDist := floats.Min(dist)

	if minDist == 0 {
		coincident := 0
		for _, d := range dist {
			if d == 0 {
				coincident++
			}
		}
		share := 1 / float64(coincident)
		for j, d := range dist {
			if d == 0 {
				out[j] = share
			} else {
				out[j] = 0
			}
		}
		return
	}

	var sum float64
	for j, d := range dist {
		w := math.Pow(d/minDist, exp)
		out[j] = w
		sum += w
	}
	for j := range out {
		out[j] = out[j] / sum
	}
}

func rowObjective(q float64, dist, u []float64) float64 {
	var s float64
	for j, d := range dist {
		if u[j] == 0 {
			continue
		}
		s += math.Pow(u[j], q) * d
	}
	return s
}

// UpdateCenters replaces every center with the weighted centroid of data,
// using u[:,j]^q normalized to sum 1 as the weights for center j. A center
// whose weights sum to zero keeps its previous position.
func (e *Engine) UpdateCenters(ctx context.Context, data, u, centers *mat.Dense) error {
	m, d := data.Dims()
	k, _ := centers.Dims()

	return e.forEachRange(ctx, k, func(lo, hi int) {
		weights := make([]float64, m)
		next := make([]float64, d)

		for j := lo; j < hi; j++ {
			var sum float64
			for i := 0; i < m; i++ {
				w := math.Pow(u.At(i, j), e.q)
				weights[i] = w
				sum += w
			}

			if sum == 0 || math.IsInf(sum, 0) || math.IsNaN(sum) {
				continue
			}

			for x := range next {
				next[x] = 0
			}
			for i := 0; i < m; i++ {
				if weights[i] == 0 {
					continue
				}
				floats.AddScaled(next, weights[i]/sum, data.RawRowView(i))
			}

			copy(centers.RawRowView(j), next)
		}
	})
}

// Nearest returns, for every point in data, the index of the center with the
// smallest squared distance. Ties resolve to the lowest index.
func (e *Engine) Nearest(ctx context.Context, data, centers *mat.Dense) ([]int, error) {
	m, _ := data.Dims()
	rows := rowViews(centers)
	labels := make([]int, m)

	err := e.forEachRange(ctx, m, func(lo, hi int) {
		dist := make([]float64, len(rows))
		for i := lo; i < hi; i++ {
			rowDistances(dist, data.RawRowView(i), rows)
			labels[i] = nearest(dist)
		}
	})
	if err != nil {
		return nil, err
	}
	return labels, nil
}

func nearest(dist []float64) int {
	best := 0
	for j := 1; j < len(dist); j++ {
		if dist[j] < dist[best] {
			best = j
		}
	}
	return best
}

// Shift returns the largest squared distance any center moved between prev
// and next.
func Shift(prev, next *mat.Dense) float64 {
	k, _ := prev.Dims()

	var largest float64
	for j := 0; j < k; j++ {
		if d := distance.SquaredL2(prev.RawRowView(j), next.RawRowView(j)); d > largest {
			largest = d
		}
	}
	return largest
}

// forEachRange splits [0, n) into at most e.workers contiguous ranges and
// runs fn on each.
func (e *Engine) forEachRange(ctx context.Context, n int, fn func(lo, hi int)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	workers := min(e.workers, n)
	if workers <= 1 {
		fn(0, n)
		return nil
	}

	chunk := (n + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(lo, hi)
			return nil
		})
	}

	return g.Wait()
}

func rowViews(m *mat.Dense) [][]float64 {
	r, _ := m.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = m.RawRowView(i)
	}
	return rows
}
