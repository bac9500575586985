package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "FCM_"

type binding struct {
	name string
	set  func(c *Config, v string) error
}

var bindings = []binding{
	{"INPUT", func(c *Config, v string) error { c.Input = v; return nil }},
	{"OUTPUT", func(c *Config, v string) error { c.Output = v; return nil }},
	{"CENTERS", func(c *Config, v string) error { c.Centers = v; return nil }},
	{"MEMBERSHIPS", func(c *Config, v string) error { c.Memberships = v; return nil }},
	{"CLUSTERS", intSetter(func(c *Config) *int { return &c.Clusters })},
	{"ITERATIONS", intSetter(func(c *Config) *int { return &c.Iterations })},
	{"FUZZIFIER", floatSetter(func(c *Config) *float64 { return &c.Fuzzifier })},
	{"SEED", func(c *Config, v string) error {
		seed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return err
		}
		c.Seed = &seed
		return nil
	}},
	{"INIT_MIN", floatSetter(func(c *Config) *float64 { return &c.InitMin })},
	{"INIT_MAX", floatSetter(func(c *Config) *float64 { return &c.InitMax })},
	{"WORKERS", intSetter(func(c *Config) *int { return &c.Workers })},
	{"DELIMITER", func(c *Config, v string) error { c.Delimiter = v; return nil }},
	{"OUTPUT_DELIMITER", func(c *Config, v string) error { c.OutputDelimiter = v; return nil }},
	{"NO_HEADER", func(c *Config, v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		c.NoHeader = b
		return nil
	}},
	{"LOG_LEVEL", func(c *Config, v string) error { c.Log.Level = strings.ToLower(v); return nil }},
	{"LOG_FORMAT", func(c *Config, v string) error { c.Log.Format = strings.ToLower(v); return nil }},
	{"METRICS_FILE", func(c *Config, v string) error { c.MetricsFile = v; return nil }},
}

func intSetter(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func floatSetter(field func(*Config) *float64) func(*Config, string) error {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return err
		}
		*field(c) = f
		return nil
	}
}

// ApplyEnv overlays FCM_* variables onto c. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, b := range bindings {
		v, ok := lookup(EnvPrefix + b.name)
		if !ok {
			continue
		}
		if err := b.set(c, v); err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, b.name, err)
		}
	}
	return nil
}

func yamlName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
	if name == "-" {
		return ""
	}
	return name
}
