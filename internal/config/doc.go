// Package config loads the settings of the fcm command.
//
// Settings are layered, later sources overriding earlier ones:
//
//  1. Defaults (Default)
//  2. A YAML file (LoadFile)
//  3. FCM_* environment variables (ApplyEnv)
//  4. Command-line flags, applied by the command itself
//
// The merged result is checked with Validate, which uses
// go-playground/validator struct tags.
//
// Example file:
//
//	input: s3://datasets/points.csv
//	output: out.csv.zst
//	clusters: 8
//	iterations: 50
//	fuzzifier: 1.5
//	seed: 42
//	log:
//	  level: debug
//	  format: json
package config
