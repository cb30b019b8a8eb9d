// Package config provides the job configuration for silverpipe. The runtime
// surface is deliberately tiny: an input file and an output directory. All
// transformation thresholds and column registries are fixed constants of the
// design and are not configurable here.
package config

import (
	"github.com/citystreamlabs/silverpipe/pkg/errors"
)

// Defaults matching the historical batch job.
const (
	DefaultInput      = "Taxi_Set.csv"
	DefaultOutputDir  = "step2_silver"
	DefaultOutputFile = "taxi_silver_clean.csv"
	DefaultLogLevel   = "info"
)

// JobConfig describes one pipeline run.
type JobConfig struct {
	// Input is the path to the raw taxi CSV.
	Input string `yaml:"input" json:"input"`
	// OutputDir is the destination directory for the silver artifact.
	OutputDir string `yaml:"output_dir" json:"output_dir"`
	// OutputFile is the artifact file name inside OutputDir.
	OutputFile string `yaml:"output_file" json:"output_file"`
	// LogLevel sets the logger level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" json:"log_level"`
	// SummaryJSON, when set, is a path to also write the run summary as JSON.
	SummaryJSON string `yaml:"summary_json" json:"summary_json"`
}

// NewJobConfig returns a config populated with defaults.
func NewJobConfig() *JobConfig {
	return &JobConfig{
		Input:      DefaultInput,
		OutputDir:  DefaultOutputDir,
		OutputFile: DefaultOutputFile,
		LogLevel:   DefaultLogLevel,
	}
}

// ApplyDefaults fills any empty field with its default value.
func (c *JobConfig) ApplyDefaults() {
	if c.Input == "" {
		c.Input = DefaultInput
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.OutputFile == "" {
		c.OutputFile = DefaultOutputFile
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate checks the configuration for obvious mistakes.
func (c *JobConfig) Validate() error {
	if c.Input == "" {
		return errors.New(errors.ErrorTypeConfig, "input path is required")
	}
	if c.OutputDir == "" {
		return errors.New(errors.ErrorTypeConfig, "output directory is required")
	}
	if c.OutputFile == "" {
		return errors.New(errors.ErrorTypeConfig, "output file name is required")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrorTypeConfig, "invalid log level").
			WithDetail("log_level", c.LogLevel)
	}
	return nil
}
