// FILE: autolog/src/internal/target/router_test.go
package target

import (
	"context"
	"testing"

	"autolog/src/internal/config"
	"autolog/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterResolution(t *testing.T) {
	cfgs := []config.TargetConfig{
		{
			Name:    "audit",
			Type:    "file",
			Enabled: true,
			Options: map[string]any{"directory": t.TempDir()},
		},
		{
			Name:    "console",
			Type:    "console",
			Enabled: true,
			Options: map[string]any{"output": "stdout"},
		},
		{
			Name:    "legacy",
			Type:    "console",
			Enabled: false,
		},
	}

	r, err := NewRouter(cfgs, "console", nil, newTestLogger())
	require.NoError(t, err)
	require.NoError(t, r.Start(context.Background()))
	defer r.Stop()

	// Entry target wins over the default
	entry := core.StartEntry("billing.Invoicer", "Issue").WithTarget("audit")
	assert.Equal(t, "file", r.Resolve(entry).GetStats().Type)

	// No entry target falls back to the default
	entry = core.StartEntry("billing.Invoicer", "Issue")
	assert.Equal(t, "console", r.Resolve(entry).GetStats().Type)

	// Unknown names resolve to the stderr fallback
	entry = core.StartEntry("billing.Invoicer", "Issue").WithTarget("nope")
	assert.Same(t, r.fallback, r.Resolve(entry))

	// Disabled targets are not registered
	entry = core.StartEntry("billing.Invoicer", "Issue").WithTarget("legacy")
	assert.Same(t, r.fallback, r.Resolve(entry))
}

func TestRouterFallbackWhenNoDefaultConfigured(t *testing.T) {
	r, err := NewRouter(nil, core.DefaultTargetName, nil, newTestLogger())
	require.NoError(t, err)

	entry := core.StartEntry("billing.Invoicer", "Issue")
	assert.Same(t, r.fallback, r.Resolve(entry))
}

func TestRouterRejectsUnknownDefault(t *testing.T) {
	_, err := NewRouter(nil, "missing", nil, newTestLogger())
	assert.Error(t, err)
}

func TestRouterRejectsBrokenTarget(t *testing.T) {
	cfgs := []config.TargetConfig{
		{Name: "bad", Type: "http", Enabled: true, Options: map[string]any{}},
	}
	_, err := NewRouter(cfgs, core.DefaultTargetName, nil, newTestLogger())
	assert.Error(t, err)
}
