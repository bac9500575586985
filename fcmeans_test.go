package fcmeans

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/hupe1980/fcmeans/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		param string
		want  error
	}{
		{"ZeroK", []Option{WithClusters(0)}, "k", ErrInvalidK},
		{"NegativeIterations", []Option{WithIterations(-1)}, "iterations", ErrInvalidIterations},
		{"FuzzifierOne", []Option{WithFuzzifier(1)}, "fuzzifier", ErrInvalidFuzzifier},
		{"FuzzifierBelowOne", []Option{WithFuzzifier(0.5)}, "fuzzifier", ErrInvalidFuzzifier},
		{"FuzzifierNaN", []Option{WithFuzzifier(math.NaN())}, "fuzzifier", ErrInvalidFuzzifier},
		{"FuzzifierInf", []Option{WithFuzzifier(math.Inf(1))}, "fuzzifier", ErrInvalidFuzzifier},
		{"EmptyInitRange", []Option{WithInitRange(1, 1)}, "init range", ErrInvalidInitRange},
		{"NegativeWorkers", []Option{WithWorkers(-2)}, "workers", ErrInvalidWorkers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var ce *ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.param, ce.Param)
			assert.Contains(t, err.Error(), tt.param)
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	assert.Equal(t, DefaultClusters, c.K())
	assert.Equal(t, DefaultIterations, c.Iterations())
	assert.Equal(t, DefaultFuzzifier, c.Fuzzifier())
}

func TestNew_InitialCentersRows(t *testing.T) {
	_, err := New(WithClusters(3), WithInitialCenters(mat.NewDense(2, 2, nil)))

	var dm *ErrDimensionMismatch
	require.True(t, errors.As(err, &dm))
	assert.Equal(t, 3, dm.Expected)
	assert.Equal(t, 2, dm.Actual)
}

func TestFit_EmptySet(t *testing.T) {
	c, err := New(WithSeed(1))
	require.NoError(t, err)

	_, err = c.Fit(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptySet)

	_, err = c.Fit(context.Background(), &mat.Dense{})
	assert.ErrorIs(t, err, ErrEmptySet)
}

func TestFit_InitialCentersColumns(t *testing.T) {
	c, err := New(WithClusters(2), WithInitialCenters(mat.NewDense(2, 3, nil)))
	require.NoError(t, err)

	_, err = c.Fit(context.Background(), mat.NewDense(2, 2, []float64{0, 0, 1, 1}))

	var dm *ErrDimensionMismatch
	require.True(t, errors.As(err, &dm))
	assert.Equal(t, 2, dm.Expected)
	assert.Equal(t, 3, dm.Actual)
}

func TestFit_ZeroIterationsKeepsInitialization(t *testing.T) {
	data := testutil.NewRNG(1).UniformMatrix(30, 3)

	c, err := New(WithClusters(4), WithIterations(0), WithSeed(42))
	require.NoError(t, err)

	res, err := c.Fit(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Iterations)
	assert.True(t, mat.Equal(res.Initial, res.Centers))

	// Same seed, same draw.
	c2, err := New(WithClusters(4), WithIterations(0), WithSeed(42))
	require.NoError(t, err)
	res2, err := c2.Fit(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, mat.Equal(res.Centers, res2.Centers))

	for _, v := range res.Centers.RawMatrix().Data {
		assert.GreaterOrEqual(t, v, DefaultInitMin)
		assert.Less(t, v, DefaultInitMax)
	}
}

func TestFit_InitRange(t *testing.T) {
	data := testutil.NewRNG(1).UniformMatrix(5, 2)

	c, err := New(WithClusters(3), WithIterations(0), WithSeed(9), WithInitRange(0, 1))
	require.NoError(t, err)

	res, err := c.Fit(context.Background(), data)
	require.NoError(t, err)
	for _, v := range res.Centers.RawMatrix().Data {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestFit_SingleCluster(t *testing.T) {
	data := mat.NewDense(4, 2, []float64{
		1, 2,
		3, 4,
		5, 0,
		-1, 6,
	})

	c, err := New(WithClusters(1), WithIterations(1), WithSeed(3))
	require.NoError(t, err)

	res, err := c.Fit(context.Background(), data)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, res.Centers.At(0, 0), 1e-12)
	assert.InDelta(t, 3.0, res.Centers.At(0, 1), 1e-12)
	for i := 0; i < 4; i++ {
		assert.Equal(t, 1.0, res.Memberships.At(i, 0))
		assert.Equal(t, 0, res.Labels[i])
	}
}

func TestFit_TwoPointsFromNearbyCenters(t *testing.T) {
	data := mat.NewDense(2, 2, []float64{
		0, 0,
		10, 10,
	})
	start := mat.NewDense(2, 2, []float64{
		0.5, -0.5,
		9, 10.5,
	})

	c, err := New(WithClusters(2), WithIterations(20), WithFuzzifier(2), WithInitialCenters(start))
	require.NoError(t, err)

	res, err := c.Fit(context.Background(), data)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, res.Centers.At(0, 0), 1e-6)
	assert.InDelta(t, 0.0, res.Centers.At(0, 1), 1e-6)
	assert.InDelta(t, 10.0, res.Centers.At(1, 0), 1e-6)
	assert.InDelta(t, 10.0, res.Centers.At(1, 1), 1e-6)
	assert.Equal(t, []int{0, 1}, res.Labels)
	assert.True(t, mat.Equal(start, res.Initial))
}

func TestFit_TwoPointsFromRandomCenters(t *testing.T) {
	data := mat.NewDense(2, 2, []float64{
		0, 0,
		10, 10,
	})

	for seed := int64(0); seed < 10; seed++ {
		c, err := New(WithClusters(2), WithIterations(20), WithFuzzifier(2), WithSeed(seed))
		require.NoError(t, err)

		res, err := c.Fit(context.Background(), data)
		require.NoError(t, err)

		a, b := res.Labels[0], res.Labels[1]
		assert.NotEqual(t, a, b, "seed=%d", seed)
		assert.InDelta(t, 0.0, res.Centers.At(a, 0), 1e-3)
		assert.InDelta(t, 0.0, res.Centers.At(a, 1), 1e-3)
		assert.InDelta(t, 10.0, res.Centers.At(b, 0), 1e-3)
		assert.InDelta(t, 10.0, res.Centers.At(b, 1), 1e-3)
	}
}

func TestFit_Blobs(t *testing.T) {
	rng := testutil.NewRNG(4711)
	truth := [][]float64{{0, 0}, {10, 10}, {-10, 10}}
	data, labels := rng.Blobs(truth, 40, 0.5)

	metrics := &BasicMetricsCollector{}
	c, err := New(
		WithClusters(3),
		WithIterations(50),
		WithSeed(7),
		WithWorkers(4),
		WithMetricsCollector(metrics),
	)
	require.NoError(t, err)

	res, err := c.Fit(context.Background(), data)
	require.NoError(t, err)

	assert.True(t, testutil.SamePartition(labels, res.Labels))
	assert.True(t, testutil.RowSumsClose(res.Memberships, 1, 1e-9))
	assert.ElementsMatch(t, []int{40, 40, 40}, res.Sizes())

	stats := metrics.GetStats()
	assert.Equal(t, int64(50), stats.IterationCount)
	assert.Equal(t, int64(1), stats.RunCount)
	assert.Equal(t, int64(0), stats.RunErrors)
	assert.Equal(t, int64(120), stats.PointsClustered)
	assert.Less(t, stats.LastShift, 1e-4)

	objective, err := Objective(c.Fuzzifier(), data, res.Centers, res.Memberships)
	require.NoError(t, err)
	assert.InDelta(t, objective, res.Objective, 1e-6)
}

func TestFit_MembershipRowsSumToOneEveryIteration(t *testing.T) {
	data := testutil.NewRNG(5).UniformMatrix(40, 3)

	for n := 0; n <= 5; n++ {
		c, err := New(WithClusters(3), WithIterations(n), WithSeed(11), WithFuzzifier(1.7))
		require.NoError(t, err)

		res, err := c.Fit(context.Background(), data)
		require.NoError(t, err)
		assert.True(t, testutil.RowSumsClose(res.Memberships, 1, 1e-9), "iterations=%d", n)
	}
}

func TestFit_HugeCoordinates(t *testing.T) {
	t.Run("RandomInit", func(t *testing.T) {
		data := mat.NewDense(2, 1, []float64{1e200, 2e200})

		c, err := New(WithClusters(2), WithIterations(5), WithSeed(1))
		require.NoError(t, err)

		res, err := c.Fit(context.Background(), data)
		require.NoError(t, err)

		for _, v := range res.Memberships.RawMatrix().Data {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		}
		assert.True(t, testutil.RowSumsClose(res.Memberships, 1, 1e-9))
		for _, v := range res.Centers.RawMatrix().Data {
			assert.InEpsilon(t, 1.5e200, v, 1e-9)
		}
	})

	t.Run("Separated", func(t *testing.T) {
		data := mat.NewDense(4, 1, []float64{1e200, 1.1e200, 5e200, 5.1e200})

		c, err := New(WithClusters(2), WithIterations(10),
			WithInitialCenters(mat.NewDense(2, 1, []float64{1e200, 5e200})))
		require.NoError(t, err)

		res, err := c.Fit(context.Background(), data)
		require.NoError(t, err)

		assert.Equal(t, []int{0, 0, 1, 1}, res.Labels)
		assert.True(t, testutil.RowSumsClose(res.Memberships, 1, 1e-9))
		assert.Greater(t, res.Memberships.At(1, 0), 0.9)
		assert.Greater(t, res.Memberships.At(2, 1), 0.9)
	})
}

func TestFit_DeterministicAcrossWorkers(t *testing.T) {
	data := testutil.NewRNG(8).UniformMatrix(500, 4)

	run := func(workers int) *Result {
		c, err := New(WithClusters(5), WithIterations(15), WithRand(rand.New(rand.NewSource(21))), WithWorkers(workers))
		require.NoError(t, err)
		res, err := c.Fit(context.Background(), data)
		require.NoError(t, err)
		return res
	}

	serial := run(1)
	parallel := run(8)
	assert.True(t, mat.Equal(serial.Centers, parallel.Centers))
	assert.True(t, mat.Equal(serial.Memberships, parallel.Memberships))
	assert.Equal(t, serial.Labels, parallel.Labels)
}

func TestFit_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	metrics := &BasicMetricsCollector{}
	c, err := New(WithClusters(2), WithSeed(1), WithMetricsCollector(metrics))
	require.NoError(t, err)

	_, err = c.Fit(ctx, mat.NewDense(2, 1, []float64{0, 1}))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(1), metrics.GetStats().RunErrors)
}

func TestMemberships(t *testing.T) {
	data := mat.NewDense(2, 1, []float64{0, 3})
	centers := mat.NewDense(2, 1, []float64{0, 1})

	u, err := Memberships(2, data, centers)
	require.NoError(t, err)

	// Point 0 coincides with center 0.
	assert.Equal(t, []float64{1, 0}, u.RawRowView(0))
	// Point 1: d = 9 and 4, weights 1/9 and 1/4.
	assert.InDelta(t, (1.0/9)/(1.0/9+1.0/4), u.At(1, 0), 1e-12)

	_, err = Memberships(1, data, centers)
	assert.ErrorIs(t, err, ErrInvalidFuzzifier)

	_, err = Memberships(2, data, mat.NewDense(2, 2, nil))
	var dm *ErrDimensionMismatch
	assert.True(t, errors.As(err, &dm))
}

func TestNearest(t *testing.T) {
	centers := mat.NewDense(3, 1, []float64{0, 5, 10})
	data := mat.NewDense(4, 1, []float64{-1, 2.5, 7.5, 6})

	labels, err := Nearest(data, centers)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1, 1}, labels)

	_, err = Nearest(nil, centers)
	assert.ErrorIs(t, err, ErrEmptySet)
}

func TestAppendLabels(t *testing.T) {
	data := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	out, err := AppendLabels(data, []int{1, 0})
	require.NoError(t, err)
	assert.True(t, mat.Equal(mat.NewDense(2, 3, []float64{1, 2, 1, 3, 4, 0}), out))

	// The input is not modified.
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{1, 2, 3, 4}), data))

	_, err = AppendLabels(data, []int{1})
	var dm *ErrDimensionMismatch
	assert.True(t, errors.As(err, &dm))
}

func TestResult_Partition(t *testing.T) {
	res := &Result{
		Centers: mat.NewDense(3, 1, []float64{0, 1, 2}),
		Labels:  []int{2, 0, 2, 2},
	}

	parts := res.Partition()
	require.Len(t, parts, 3)
	assert.Equal(t, []uint32{1}, parts[0].ToArray())
	assert.True(t, parts[1].IsEmpty())
	assert.Equal(t, []uint32{0, 2, 3}, parts[2].ToArray())
	assert.Equal(t, []int{1, 0, 3}, res.Sizes())

	parts[0].Add(7)
	assert.Equal(t, []int{2, 0, 3}, PartitionSizes(parts))
	assert.Equal(t, []int{1, 0, 3}, res.Sizes(), "partitions are fresh copies")
}
