package main

import (
	"strconv"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// promCollector implements fcmeans.MetricsCollector on a private
// registry that is written out as a node_exporter textfile.
type promCollector struct {
	registry *prometheus.Registry

	iterations       prometheus.Counter
	iterationLatency prometheus.Histogram
	shift            prometheus.Gauge
	objective        prometheus.Gauge
	runs             *prometheus.CounterVec
	runDuration      prometheus.Gauge
	points           prometheus.Gauge
	clusters         prometheus.Gauge
	clusterSize      *prometheus.GaugeVec
	lastSuccess      prometheus.Gauge
}

func newPromCollector() *promCollector {
	c := &promCollector{
		registry: prometheus.NewRegistry(),
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fcm_iterations_total",
			Help: "Refinement iterations performed",
		}),
		iterationLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fcm_iteration_duration_seconds",
			Help:    "Duration of a refinement iteration",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		shift: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fcm_center_shift",
			Help: "Largest squared center movement in the last iteration",
		}),
		objective: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fcm_objective",
			Help: "Objective value in the last iteration",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fcm_runs_total",
			Help: "Clustering runs by status",
		}, []string{"status"}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fcm_run_duration_seconds",
			Help: "Duration of the last clustering run",
		}),
		points: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fcm_points",
			Help: "Points clustered in the last run",
		}),
		clusters: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fcm_clusters",
			Help: "Configured number of clusters",
		}),
		clusterSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fcm_cluster_size",
			Help: "Points labeled with each cluster",
		}, []string{"cluster"}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fcm_last_success_timestamp_seconds",
			Help: "Unix time of the last successful run",
		}),
	}

	c.registry.MustRegister(
		c.iterations,
		c.iterationLatency,
		c.shift,
		c.objective,
		c.runs,
		c.runDuration,
		c.points,
		c.clusters,
		c.clusterSize,
		c.lastSuccess,
	)
	return c
}

func (c *promCollector) RecordIteration(_ int, shift, objective float64, duration time.Duration) {
	c.iterations.Inc()
	c.iterationLatency.Observe(duration.Seconds())
	c.shift.Set(shift)
	c.objective.Set(objective)
}

func (c *promCollector) RecordRun(points, clusters, _ int, duration time.Duration, err error) {
	c.runDuration.Set(duration.Seconds())
	c.clusters.Set(float64(clusters))
	if err != nil {
		c.runs.WithLabelValues("error").Inc()
		return
	}
	c.runs.WithLabelValues("ok").Inc()
	c.points.Set(float64(points))
	c.lastSuccess.SetToCurrentTime()
}

// recordPartition sets one cluster size gauge per set in parts.
func (c *promCollector) recordPartition(parts []*roaring.Bitmap) {
	for j, p := range parts {
		c.clusterSize.WithLabelValues(strconv.Itoa(j)).Set(float64(p.GetCardinality()))
	}
}

// writeTextfile atomically replaces path with the current metrics.
func (c *promCollector) writeTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
