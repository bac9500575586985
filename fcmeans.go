package fcmeans

import (
	"context"
	"math"
	"time"

	"github.com/hupe1980/fcmeans/distance"
	"github.com/hupe1980/fcmeans/internal/fcm"
	"golang.org/x/time/rate"
	"gonum.org/v1/gonum/mat"
)

// Clusterer runs fuzzy c-means over a dataset.
//
// A Clusterer owns its random number generator, so a single Clusterer must
// not run Fit concurrently. Independent Clusterers may run in parallel.
type Clusterer struct {
	opts   options
	engine *fcm.Engine
}

// New creates a Clusterer. It returns a *ConfigError if the configuration
// is invalid; no run can start with an invalid configuration.
func New(optFns ...Option) (*Clusterer, error) {
	o := applyOptions(optFns)
	if err := o.validate(); err != nil {
		return nil, err
	}

	return &Clusterer{
		opts:   o,
		engine: fcm.NewEngine(o.fuzzifier, o.workers),
	}, nil
}

func (o *options) validate() error {
	if o.k < 1 {
		return &ConfigError{Param: "k", Value: o.k, cause: ErrInvalidK}
	}
	if o.iterations < 0 {
		return &ConfigError{Param: "iterations", Value: o.iterations, cause: ErrInvalidIterations}
	}
	if err := validateFuzzifier(o.fuzzifier); err != nil {
		return err
	}
	if !(o.initMin < o.initMax) || math.IsInf(o.initMax-o.initMin, 0) {
		return &ConfigError{Param: "init range", Value: [2]float64{o.initMin, o.initMax}, cause: ErrInvalidInitRange}
	}
	if o.workers < 0 {
		return &ConfigError{Param: "workers", Value: o.workers, cause: ErrInvalidWorkers}
	}
	if o.initial != nil {
		if r, _ := o.initial.Dims(); r != o.k {
			return &ErrDimensionMismatch{What: "initial center rows", Expected: o.k, Actual: r}
		}
	}
	return nil
}

func validateFuzzifier(q float64) error {
	if !(q > 1) || math.IsInf(q, 0) {
		return &ConfigError{Param: "fuzzifier", Value: q, cause: ErrInvalidFuzzifier}
	}
	return nil
}

// K returns the configured number of clusters.
func (c *Clusterer) K() int { return c.opts.k }

// Iterations returns the configured number of refinement iterations.
func (c *Clusterer) Iterations() int { return c.opts.iterations }

// Fuzzifier returns the configured fuzzifier.
func (c *Clusterer) Fuzzifier() float64 { return c.opts.fuzzifier }

// Fit clusters data (one point per row).
//
// The centers are initialized, then refined for exactly the configured
// number of iterations; each iteration computes the membership matrix for
// the current centers and replaces the centers with the membership-weighted
// centroids. There is no convergence check. After the loop the memberships
// and hard labels are computed once more against the final centers.
//
// Fit returns ErrEmptySet for an empty dataset and the context's error if
// ctx is done before the run completes.
func (c *Clusterer) Fit(ctx context.Context, data *mat.Dense) (*Result, error) {
	start := time.Now()

	var points int
	if data != nil && !data.IsEmpty() {
		points, _ = data.Dims()
	}

	res, err := c.fit(ctx, data)

	elapsed := time.Since(start)
	c.opts.metrics.RecordRun(points, c.opts.k, c.opts.iterations, elapsed, err)
	c.opts.logger.LogRun(ctx, points, c.opts.iterations, elapsed, err)

	return res, err
}

func (c *Clusterer) fit(ctx context.Context, data *mat.Dense) (*Result, error) {
	if data == nil || data.IsEmpty() {
		return nil, ErrEmptySet
	}

	m, d := data.Dims()
	k := c.opts.k

	centers, err := c.initialize(ctx, d)
	if err != nil {
		return nil, err
	}
	initial := mat.DenseCopyOf(centers)

	u := mat.NewDense(m, k, nil)
	prev := mat.NewDense(k, d, nil)
	progress := rate.Sometimes{First: 1, Interval: time.Second}

	for t := 0; t < c.opts.iterations; t++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		iterStart := time.Now()

		objective, err := c.engine.Memberships(ctx, data, centers, u)
		if err != nil {
			return nil, err
		}

		prev.Copy(centers)
		if err := c.engine.UpdateCenters(ctx, data, u, centers); err != nil {
			return nil, err
		}

		shift := fcm.Shift(prev, centers)
		elapsed := time.Since(iterStart)

		c.opts.metrics.RecordIteration(t, shift, objective, elapsed)
		c.opts.logger.LogIteration(ctx, t, shift, objective, elapsed)
		progress.Do(func() {
			c.opts.logger.LogProgress(ctx, t+1, c.opts.iterations, objective)
		})
	}

	objective, err := c.engine.Memberships(ctx, data, centers, u)
	if err != nil {
		return nil, err
	}

	labels, err := c.engine.Nearest(ctx, data, centers)
	if err != nil {
		return nil, err
	}

	return &Result{
		Centers:     centers,
		Memberships: u,
		Labels:      labels,
		Initial:     initial,
		Iterations:  c.opts.iterations,
		Objective:   objective,
	}, nil
}

func (c *Clusterer) initialize(ctx context.Context, d int) (*mat.Dense, error) {
	if c.opts.initial != nil {
		if _, cols := c.opts.initial.Dims(); cols != d {
			return nil, &ErrDimensionMismatch{What: "initial center columns", Expected: d, Actual: cols}
		}
		centers := mat.DenseCopyOf(c.opts.initial)
		c.opts.logger.LogInit(ctx, "explicit", rows(centers))
		return centers, nil
	}

	centers := fcm.InitCenters(c.opts.rng, c.opts.k, d, c.opts.initMin, c.opts.initMax)
	c.opts.logger.LogInit(ctx, "random", rows(centers))
	return centers, nil
}

// Memberships computes the m×k fuzzy membership matrix of data against
// centers for fuzzifier q. Every row sums to 1.
func Memberships(q float64, data, centers *mat.Dense) (*mat.Dense, error) {
	if err := validateFuzzifier(q); err != nil {
		return nil, err
	}
	if err := checkShapes(data, centers); err != nil {
		return nil, err
	}

	m, _ := data.Dims()
	k, _ := centers.Dims()
	u := mat.NewDense(m, k, nil)

	if _, err := fcm.NewEngine(q, 1).Memberships(context.Background(), data, centers, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Nearest returns the index of the nearest center (squared Euclidean
// distance) for every row of data. Ties resolve to the lowest index.
func Nearest(data, centers *mat.Dense) ([]int, error) {
	if err := checkShapes(data, centers); err != nil {
		return nil, err
	}
	return fcm.NewEngine(DefaultFuzzifier, 1).Nearest(context.Background(), data, centers)
}

// Objective returns Σ u[i,j]^q · ‖data[i] - centers[j]‖², the fuzzy
// within-cluster sum of squared distances.
func Objective(q float64, data, centers, memberships *mat.Dense) (float64, error) {
	if err := validateFuzzifier(q); err != nil {
		return 0, err
	}
	if err := checkShapes(data, centers); err != nil {
		return 0, err
	}

	m, _ := data.Dims()
	k, _ := centers.Dims()
	r, c := memberships.Dims()
	if r != m {
		return 0, &ErrDimensionMismatch{What: "membership rows", Expected: m, Actual: r}
	}
	if c != k {
		return 0, &ErrDimensionMismatch{What: "membership columns", Expected: k, Actual: c}
	}

	var sum float64
	for i := 0; i < m; i++ {
		p := data.RawRowView(i)
		for j := 0; j < k; j++ {
			uij := memberships.At(i, j)
			if uij == 0 {
				continue
			}
			sum += math.Pow(uij, q) * distance.SquaredL2(p, centers.RawRowView(j))
		}
	}
	return sum, nil
}

// AppendLabels returns a copy of data with labels appended as an extra
// last column.
func AppendLabels(data *mat.Dense, labels []int) (*mat.Dense, error) {
	if data == nil || data.IsEmpty() {
		return nil, ErrEmptySet
	}

	m, d := data.Dims()
	if len(labels) != m {
		return nil, &ErrDimensionMismatch{What: "labels", Expected: m, Actual: len(labels)}
	}

	out := mat.NewDense(m, d+1, nil)
	for i := 0; i < m; i++ {
		row := out.RawRowView(i)
		copy(row, data.RawRowView(i))
		row[d] = float64(labels[i])
	}
	return out, nil
}

func checkShapes(data, centers *mat.Dense) error {
	if data == nil || data.IsEmpty() {
		return ErrEmptySet
	}
	if centers == nil || centers.IsEmpty() {
		return &ConfigError{Param: "centers", Value: 0, cause: ErrInvalidK}
	}

	_, d := data.Dims()
	if _, c := centers.Dims(); c != d {
		return &ErrDimensionMismatch{What: "center columns", Expected: d, Actual: c}
	}
	return nil
}

func rows(m *mat.Dense) [][]float64 {
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = m.RawRowView(i)
	}
	return out
}
