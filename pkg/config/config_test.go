package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2.0, cfg.SampleFrequency)
	assert.Equal(t, 30.0, cfg.ReportPeriodSec)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.ReportPeriod())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SAMPLEFREQUENCY", "4")
	t.Setenv("REPORTPERIODSEC", "10")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4.0, cfg.SampleFrequency)
	assert.Equal(t, 10*time.Second, cfg.ReportPeriod())
}

func TestValidateRejectsNonPositiveValues(t *testing.T) {
	cfg := &Config{SampleFrequency: 0, ReportPeriodSec: 30}
	assert.Error(t, cfg.Validate())

	cfg = &Config{SampleFrequency: 2, ReportPeriodSec: -1}
	assert.Error(t, cfg.Validate())

	cfg = &Config{SampleFrequency: 2, ReportPeriodSec: 30}
	assert.NoError(t, cfg.Validate())
}
