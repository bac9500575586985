package fcmeans

import (
	"math/rand"
	"runtime"
	"time"

	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultClusters is the number of clusters used when WithClusters is not given.
	DefaultClusters = 5

	// DefaultIterations is the number of refinement iterations used when
	// WithIterations is not given.
	DefaultIterations = 10

	// DefaultFuzzifier is the fuzzifier used when WithFuzzifier is not given.
	DefaultFuzzifier = 2.0

	// DefaultInitMin and DefaultInitMax bound the uniform draw of the
	// initial center coordinates.
	DefaultInitMin = -1.0
	DefaultInitMax = 1.0
)

type options struct {
	k          int
	iterations int
	fuzzifier  float64
	initMin    float64
	initMax    float64
	initial    *mat.Dense
	rng        *rand.Rand
	workers    int
	logger     *Logger
	metrics    MetricsCollector
}

// Option configures a Clusterer.
type Option func(*options)

// WithClusters sets the number of clusters k.
func WithClusters(k int) Option {
	return func(o *options) {
		o.k = k
	}
}

// WithIterations sets the fixed number of refinement iterations.
// Zero iterations leaves the centers at their initial positions.
func WithIterations(n int) Option {
	return func(o *options) {
		o.iterations = n
	}
}

// WithFuzzifier sets the fuzzifier q. Values close to 1 approach hard
// k-means; larger values produce more uniform memberships.
func WithFuzzifier(q float64) Option {
	return func(o *options) {
		o.fuzzifier = q
	}
}

// WithSeed seeds the random number generator used for center initialization.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand sets the random number generator used for center initialization.
// The generator is owned by the Clusterer afterwards and must not be shared
// with concurrent users.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithInitRange sets the half-open range [lo, hi) from which initial center
// coordinates are drawn.
func WithInitRange(lo, hi float64) Option {
	return func(o *options) {
		o.initMin = lo
		o.initMax = hi
	}
}

// WithInitialCenters starts every run from a copy of centers instead of a
// random draw. centers must have k rows and as many columns as the dataset.
func WithInitialCenters(centers *mat.Dense) Option {
	return func(o *options) {
		o.initial = centers
	}
}

// WithWorkers bounds the number of goroutines used by each refinement pass.
// 0 selects runtime.GOMAXPROCS(0); 1 runs every pass on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := fcmeans.NewJSONLogger(slog.LevelDebug)
//	c, _ := fcmeans.New(fcmeans.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &fcmeans.BasicMetricsCollector{}
//	c, _ := fcmeans.New(fcmeans.WithMetricsCollector(metrics))
//	// ... run c.Fit ...
//	stats := metrics.GetStats()
//	fmt.Printf("Iterations: %d, Avg latency: %dns\n", stats.IterationCount, stats.IterationAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metrics = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		k:          DefaultClusters,
		iterations: DefaultIterations,
		fuzzifier:  DefaultFuzzifier,
		initMin:    DefaultInitMin,
		initMax:    DefaultInitMax,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.workers == 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metrics == nil {
		o.metrics = NoopMetricsCollector{}
	}
	return o
}
