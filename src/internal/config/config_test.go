// FILE: autolog/src/internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := defaults()
	require.NoError(t, cfg.validate())
	assert.True(t, cfg.AutoIntercept)
	assert.Equal(t, "console", cfg.DefaultTarget)
}

func TestValidateRejectsBadQueue(t *testing.T) {
	cfg := defaults()
	cfg.QueueSize = 0
	assert.Error(t, cfg.validate())
}

func TestValidateRejectsDuplicateTargets(t *testing.T) {
	cfg := defaults()
	cfg.Targets = append(cfg.Targets, TargetConfig{Name: "console", Type: "console", Enabled: true})
	assert.Error(t, cfg.validate())
}

func TestValidateRejectsUnknownTargetType(t *testing.T) {
	cfg := defaults()
	cfg.Targets = []TargetConfig{{Name: "x", Type: "syslog"}}
	assert.Error(t, cfg.validate())
}

func TestValidateServicePattern(t *testing.T) {
	testCases := []struct {
		name        string
		pattern     ServicePattern
		expectError bool
	}{
		{"Valid", ServicePattern{Pattern: "MyApp.*", Mode: "both"}, false},
		{"EmptyModeOK", ServicePattern{Pattern: "MyApp.*"}, false},
		{"MissingPattern", ServicePattern{Mode: "input"}, true},
		{"BadMode", ServicePattern{Pattern: "MyApp.*", Mode: "everything"}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaults()
			cfg.Services = []ServicePattern{tc.pattern}
			err := cfg.validate()
			if tc.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTargetOptionValidation(t *testing.T) {
	cfg := defaults()
	cfg.Targets = []TargetConfig{{
		Name: "remote", Type: "http", Enabled: true,
		Options: map[string]any{"url": "ftp://collector"},
	}}
	assert.Error(t, cfg.validate())

	cfg.Targets[0].Options["url"] = "https://collector.example.com/ingest"
	assert.NoError(t, cfg.validate())
}

func TestTemplateLookup(t *testing.T) {
	cfg := defaults()
	cfg.Templates = []TemplateConfig{
		{Name: "payment", Success: "ok", Error: "fail"},
	}
	require.NotNil(t, cfg.Template("payment"))
	assert.Nil(t, cfg.Template("missing"))
}
