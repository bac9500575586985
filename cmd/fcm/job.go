package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/fcmeans"
	"github.com/hupe1980/fcmeans/blobstore"
	"github.com/hupe1980/fcmeans/dataset"
	"github.com/hupe1980/fcmeans/internal/config"
	"gonum.org/v1/gonum/mat"
)

type job struct {
	cfg     *config.Config
	logger  *fcmeans.Logger
	stores  *storeResolver
	metrics *promCollector
}

func (j *job) run(ctx context.Context) error {
	cfg := j.cfg

	if cfg.MetricsFile != "" {
		j.metrics = newPromCollector()
	}

	tbl, err := j.readTable(ctx, cfg.Input)
	j.logger.LogDataset(ctx, cfg.Input, rowsOf(tbl), colsOf(tbl), err)
	if err != nil {
		return err
	}

	c, err := fcmeans.New(j.options()...)
	if err != nil {
		return err
	}

	res, fitErr := c.Fit(ctx, tbl.Data)
	if fitErr == nil {
		fitErr = j.writeResults(ctx, tbl, res)
	}

	var parts []*roaring.Bitmap
	if res != nil {
		parts = res.Partition()
		if fitErr == nil {
			j.logSummary(ctx, res, parts)
		}
	}

	if j.metrics != nil {
		j.metrics.recordPartition(parts)
		if err := j.metrics.writeTextfile(cfg.MetricsFile); err != nil {
			return errors.Join(fitErr, fmt.Errorf("write metrics: %w", err))
		}
	}
	return fitErr
}

func (j *job) options() []fcmeans.Option {
	cfg := j.cfg

	opts := []fcmeans.Option{
		fcmeans.WithClusters(cfg.Clusters),
		fcmeans.WithIterations(cfg.Iterations),
		fcmeans.WithFuzzifier(cfg.Fuzzifier),
		fcmeans.WithInitRange(cfg.InitMin, cfg.InitMax),
		fcmeans.WithWorkers(cfg.Workers),
		fcmeans.WithLogger(j.logger),
	}
	if cfg.Seed != nil {
		opts = append(opts, fcmeans.WithSeed(*cfg.Seed))
	}
	if j.metrics != nil {
		opts = append(opts, fcmeans.WithMetricsCollector(j.metrics))
	}
	return opts
}

func (j *job) readTable(ctx context.Context, location string) (*dataset.Table, error) {
	store, name, err := j.stores.resolve(ctx, location)
	if err != nil {
		return nil, err
	}

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	br := blobstore.NewReader(ctx, blob)
	defer br.Close()

	r, err := dataset.Decompress(name, br)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	defer r.Close()

	opts := []dataset.Option{dataset.WithDelimiter(j.cfg.Comma())}
	if j.cfg.NoHeader {
		opts = append(opts, dataset.WithoutHeader())
	}

	tbl, err := dataset.Read(r, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	return tbl, nil
}

func (j *job) writeResults(ctx context.Context, tbl *dataset.Table, res *fcmeans.Result) error {
	cfg := j.cfg

	labeled, err := res.Labeled(tbl.Data)
	if err != nil {
		return err
	}

	centersPath := cfg.Centers
	if centersPath == "" {
		centersPath = dataset.CentersPath(cfg.Output)
	}
	membershipsPath := cfg.Memberships
	if membershipsPath == "" {
		membershipsPath = dataset.MembershipsPath(cfg.Output)
	}

	outputs := []struct {
		kind     string
		location string
		m        *mat.Dense
		header   []string
	}{
		{"labeled", cfg.Output, labeled, appendName(tbl.Header, "label")},
		{"centers", centersPath, res.Centers, tbl.Header},
		{"memberships", membershipsPath, res.Memberships, clusterNames(res.K())},
	}

	for _, out := range outputs {
		rows, _ := out.m.Dims()
		err := j.writeMatrix(ctx, out.location, out.m, out.header)
		j.logger.LogWrite(ctx, out.kind, out.location, rows, err)
		if err != nil {
			return fmt.Errorf("write %s: %w", out.kind, err)
		}
	}
	return nil
}

// logSummary logs the cluster sizes and warns about clusters that no point
// is nearest to.
func (j *job) logSummary(ctx context.Context, res *fcmeans.Result, parts []*roaring.Bitmap) {
	j.logger.InfoContext(ctx, "cluster sizes", "sizes", fcmeans.PartitionSizes(parts), "objective", res.Objective)

	var empty []int
	for c, p := range parts {
		if p.IsEmpty() {
			empty = append(empty, c)
		}
	}
	if len(empty) > 0 {
		j.logger.WarnContext(ctx, "clusters without points", "clusters", empty)
	}
}

func (j *job) writeMatrix(ctx context.Context, location string, m *mat.Dense, header []string) error {
	store, name, err := j.stores.resolve(ctx, location)
	if err != nil {
		return err
	}

	blob, err := store.Create(ctx, name)
	if err != nil {
		return err
	}

	w, err := dataset.Compress(name, blob)
	if err != nil {
		return errors.Join(err, blobstore.Discard(blob))
	}

	opts := []dataset.Option{dataset.WithDelimiter(j.cfg.OutputComma())}
	if !j.cfg.NoHeader && header != nil {
		opts = append(opts, dataset.WithHeader(header...))
	}

	if err := dataset.Write(w, m, opts...); err != nil {
		return errors.Join(err, blobstore.Discard(blob))
	}
	if err := w.Close(); err != nil {
		return errors.Join(err, blobstore.Discard(blob))
	}
	return blob.Close()
}

func appendName(header []string, name string) []string {
	if header == nil {
		return nil
	}
	out := make([]string, 0, len(header)+1)
	return append(append(out, header...), name)
}

func clusterNames(k int) []string {
	names := make([]string, k)
	for j := range names {
		names[j] = "cluster_" + strconv.Itoa(j)
	}
	return names
}

func rowsOf(t *dataset.Table) int {
	if t == nil {
		return 0
	}
	r, _ := t.Dims()
	return r
}

func colsOf(t *dataset.Table) int {
	if t == nil {
		return 0
	}
	_, c := t.Dims()
	return c
}
