package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAggregateConfigDefaults(t *testing.T) {
	cfg := AggregateConfig{}
	cfg.applyDefaults()

	assert.Equal(t, 8, cfg.MaxConcurrency)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "fail_fast", cfg.FailurePolicy)
}

func TestAggregateConfigKeepsExplicitValues(t *testing.T) {
	cfg := AggregateConfig{
		MaxConcurrency: -1,
		Timeout:        5 * time.Second,
		FailurePolicy:  "partial",
	}
	cfg.applyDefaults()

	assert.Equal(t, -1, cfg.MaxConcurrency, "-1 means unbounded and must survive defaulting")
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "partial", cfg.FailurePolicy)
}
