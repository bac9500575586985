package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/fcmeans/internal/config"
)

type flagValues struct {
	config          string
	input           string
	output          string
	centers         string
	memberships     string
	clusters        int
	iterations      int
	fuzzifier       float64
	seed            int64
	initMin         float64
	initMax         float64
	workers         int
	delimiter       string
	outputDelimiter string
	noHeader        bool
	logLevel        string
	logFormat       string
	metricsFile     string
}

func newFlagSet(stderr io.Writer, v *flagValues) *flag.FlagSet {
	d := config.Default()

	fs := flag.NewFlagSet("fcm", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: fcm [flags] <input>\n\nFuzzy c-means clustering of a delimited numeric dataset.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&v.config, "config", "", "YAML configuration `file`")
	fs.StringVar(&v.input, "input", "", "input `location` (path, s3://bucket/key or minio://bucket/key)")
	fs.StringVar(&v.output, "output", d.Output, "labeled dataset output `location`")
	fs.StringVar(&v.centers, "centers", "", "centers output `location` (default derived from --output)")
	fs.StringVar(&v.memberships, "memberships", "", "memberships output `location` (default derived from --output)")
	fs.IntVar(&v.clusters, "k", d.Clusters, "number of clusters")
	fs.IntVar(&v.iterations, "iterations", d.Iterations, "number of refinement iterations")
	fs.Float64Var(&v.fuzzifier, "q", d.Fuzzifier, "fuzzifier (> 1)")
	fs.Int64Var(&v.seed, "seed", 0, "random seed (default: time based)")
	fs.Float64Var(&v.initMin, "init-min", d.InitMin, "lower bound of the random initial centers")
	fs.Float64Var(&v.initMax, "init-max", d.InitMax, "upper bound of the random initial centers")
	fs.IntVar(&v.workers, "workers", d.Workers, "parallel workers (0 = GOMAXPROCS)")
	fs.StringVar(&v.delimiter, "delimiter", d.Delimiter, "input field delimiter")
	fs.StringVar(&v.outputDelimiter, "output-delimiter", "", "output field delimiter (default: input delimiter)")
	fs.BoolVar(&v.noHeader, "no-header", d.NoHeader, "input has no header row; outputs are written without one")
	fs.StringVar(&v.logLevel, "log-level", d.Log.Level, "log level (debug, info, warn, error)")
	fs.StringVar(&v.logFormat, "log-format", d.Log.Format, "log format (text, json)")
	fs.StringVar(&v.metricsFile, "metrics-file", "", "write Prometheus metrics to this `file`")

	return fs
}

// loadConfig layers defaults, the --config file, FCM_* variables and the
// flags that were set explicitly.
func loadConfig(args []string, stderr io.Writer, lookupEnv func(string) (string, bool)) (*config.Config, error) {
	var v flagValues
	fs := newFlagSet(stderr, &v)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := config.Default()
	if v.config != "" {
		if err := cfg.LoadFile(v.config); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(lookupEnv); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = v.input
		case "output":
			cfg.Output = v.output
		case "centers":
			cfg.Centers = v.centers
		case "memberships":
			cfg.Memberships = v.memberships
		case "k":
			cfg.Clusters = v.clusters
		case "iterations":
			cfg.Iterations = v.iterations
		case "q":
			cfg.Fuzzifier = v.fuzzifier
		case "seed":
			seed := v.seed
			cfg.Seed = &seed
		case "init-min":
			cfg.InitMin = v.initMin
		case "init-max":
			cfg.InitMax = v.initMax
		case "workers":
			cfg.Workers = v.workers
		case "delimiter":
			cfg.Delimiter = v.delimiter
		case "output-delimiter":
			cfg.OutputDelimiter = v.outputDelimiter
		case "no-header":
			cfg.NoHeader = v.noHeader
		case "log-level":
			cfg.Log.Level = strings.ToLower(v.logLevel)
		case "log-format":
			cfg.Log.Format = strings.ToLower(v.logFormat)
		case "metrics-file":
			cfg.MetricsFile = v.metricsFile
		}
	})

	switch fs.NArg() {
	case 0:
	case 1:
		if v.input != "" {
			return nil, errors.New("input given both as --input and as argument")
		}
		cfg.Input = fs.Arg(0)
	default:
		return nil, fmt.Errorf("expected one input, got %d arguments", fs.NArg())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
