package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds the settings of a clustering run.
type Config struct {
	// Input is the dataset location (local path, s3:// or minio:// URI).
	Input string `yaml:"input" validate:"required"`

	// Output is the location of the labeled dataset.
	Output string `yaml:"output" validate:"required"`

	// Centers and Memberships default to names derived from Output.
	Centers     string `yaml:"centers"`
	Memberships string `yaml:"memberships"`

	Clusters   int     `yaml:"clusters" validate:"min=1"`
	Iterations int     `yaml:"iterations" validate:"min=0"`
	Fuzzifier  float64 `yaml:"fuzzifier" validate:"gt=1"`

	// Seed makes the random initialization reproducible. Nil seeds from
	// the clock.
	Seed *int64 `yaml:"seed,omitempty"`

	InitMin float64 `yaml:"init_min"`
	InitMax float64 `yaml:"init_max" validate:"gtfield=InitMin"`

	// Workers bounds the parallelism of a run; 0 uses GOMAXPROCS.
	Workers int `yaml:"workers" validate:"min=0"`

	Delimiter string `yaml:"delimiter" validate:"len=1"`

	// OutputDelimiter defaults to Delimiter.
	OutputDelimiter string `yaml:"output_delimiter" validate:"omitempty,len=1"`

	// NoHeader reads the first input row as data and writes outputs
	// without a header row.
	NoHeader bool `yaml:"no_header"`

	Log Log `yaml:"log"`

	// MetricsFile, if set, receives run metrics in the Prometheus text
	// exposition format.
	MetricsFile string `yaml:"metrics_file"`
}

// Log configures logging.
type Log struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Output:     "out.csv",
		Clusters:   5,
		Iterations: 10,
		Fuzzifier:  2.0,
		InitMin:    -1,
		InitMax:    1,
		Delimiter:  ";",
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFile overlays the YAML file at path onto c. Keys absent from the
// file keep their current values; unknown keys are an error.
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(yamlName)
	})
	return validate
}

// Validate checks c. Every violated rule is reported.
func (c *Config) Validate() error {
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	name := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "gtfield":
		return fmt.Sprintf("%s (%v) must be greater than init_min", name, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s (%v) must be one of [%s]", name, fe.Value(), fe.Param())
	case "len":
		return fmt.Sprintf("%s (%q) must be a single character", name, fe.Value())
	default:
		return fmt.Sprintf("%s (%v) must satisfy %s=%s", name, fe.Value(), fe.Tag(), fe.Param())
	}
}

// OutputComma returns the output delimiter as a rune.
func (c *Config) OutputComma() rune {
	if c.OutputDelimiter != "" {
		return []rune(c.OutputDelimiter)[0]
	}
	return c.Comma()
}

// Comma returns the input delimiter as a rune.
func (c *Config) Comma() rune {
	return []rune(c.Delimiter)[0]
}
