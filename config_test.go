package kernel

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	ctx := context.Background()
	URL, err := filepath.Abs("testdata/config.yaml")
	require.NoError(t, err)

	config, err := LoadConfig(ctx, URL)
	require.NoError(t, err)
	assert.Equal(t, 16, config.Machine.MaxProc)
	assert.Equal(t, DefaultConfig().Machine.MinStack, config.Machine.MinStack)
	assert.Equal(t, 10*time.Millisecond, config.Machine.TickInterval)
	assert.Equal(t, 40*time.Millisecond, config.Scheduler.Quantum)
	assert.Equal(t, TestcaseConfig{Name: "start1", Priority: 2, StackSize: DefaultConfig().Scheduler.Testcase.StackSize}, config.Scheduler.Testcase)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, AccountingMemory, config.Accounting.Vendor)
	assert.Equal(t, EventsConfig{Enabled: true, Buffer: 64}, config.Events)

	invalidURL, err := filepath.Abs("testdata/invalid.yaml")
	require.NoError(t, err)
	_, err = LoadConfig(ctx, invalidURL)
	assert.Error(t, err)

	_, err = LoadConfig(ctx, "mem://localhost/missing.yaml")
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	var testCases = []struct {
		description string
		mutate      func(c *Config)
		expectErr   string
	}{
		{description: "default", mutate: func(c *Config) {}},
		{description: "table too small", mutate: func(c *Config) { c.Machine.MaxProc = 1 }, expectErr: "maxProc"},
		{description: "no tick", mutate: func(c *Config) { c.Machine.TickInterval = 0 }, expectErr: "tickInterval"},
		{description: "bad level", mutate: func(c *Config) { c.Log.Level = "loud" }, expectErr: "log.level"},
		{description: "fs without url", mutate: func(c *Config) { c.Accounting.Vendor = AccountingFS }, expectErr: "accounting.url"},
		{description: "unknown vendor", mutate: func(c *Config) { c.Accounting.Vendor = "kafka" }, expectErr: "unsupported accounting vendor"},
		{description: "events without buffer", mutate: func(c *Config) {
			c.Events.Enabled = true
			c.Events.Buffer = 0
		}, expectErr: "events.buffer"},
	}
	for _, testCase := range testCases {
		config := DefaultConfig()
		testCase.mutate(config)
		err := config.Validate()
		if testCase.expectErr == "" {
			assert.NoError(t, err, testCase.description)
			continue
		}
		if assert.Error(t, err, testCase.description) {
			assert.Contains(t, err.Error(), testCase.expectErr, testCase.description)
		}
	}

	config := DefaultConfig()
	config.Machine.MaxProc = 1
	config.Log.Level = "loud"
	err := config.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maxProc")
	assert.Contains(t, err.Error(), "log.level")
}
