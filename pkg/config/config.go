// Package config loads monitor configuration from environment variables
// and an optional YAML file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every configurable value for the monitor.
type Config struct {
	// SampleFrequency is how many snapshots to take per second.
	SampleFrequency float64
	// ReportPeriodSec is how often averages are flushed, in seconds.
	ReportPeriodSec float64
	// LogLevel is one of debug|info|warn|error.
	LogLevel string
	// Output is the telemetry file path; empty means log-only reporting.
	Output string
	// Format is the telemetry file format (jsonl|parquet); empty picks
	// by the output path's extension.
	Format string
	// GraphDir is where the graph command writes rendered charts.
	GraphDir string
}

// Load reads configuration from (in decreasing priority): environment
// variables (e.g. SAMPLEFREQUENCY, REPORT_PERIOD_SEC), a yaml file
// (./configs/config.yaml) if it exists, and built-in defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("SampleFrequency", 2.0)
	v.SetDefault("ReportPeriodSec", 30.0)
	v.SetDefault("LogLevel", "info")
	v.SetDefault("Output", "")
	v.SetDefault("Format", "")
	v.SetDefault("GraphDir", "graphs")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Optional yaml file, useful for local dev or a ConfigMap.
	v.SetConfigName("config")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cannot decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the sampler cannot run with.
func (c *Config) Validate() error {
	if c.SampleFrequency <= 0 {
		return fmt.Errorf("SampleFrequency must be positive, got %v", c.SampleFrequency)
	}
	if c.ReportPeriodSec <= 0 {
		return fmt.Errorf("ReportPeriodSec must be positive, got %v", c.ReportPeriodSec)
	}
	return nil
}

// ReportPeriod returns the report period as a duration.
func (c *Config) ReportPeriod() time.Duration {
	return time.Duration(c.ReportPeriodSec * float64(time.Second))
}
