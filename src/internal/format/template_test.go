// FILE: autolog/src/internal/format/template_test.go
package format

import (
	"errors"
	"testing"

	"autolog/src/internal/config"
	"autolog/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func templateConfig() *config.Config {
	return &config.Config{
		Templates: []config.TemplateConfig{
			{
				Name:    "payment",
				Success: "payment {{.Method}} ok in {{.Duration}}",
				Error:   "payment {{.Method}} FAILED: {{.Error}}",
			},
		},
	}
}

func TestTemplateFormatterSuccessAndError(t *testing.T) {
	f, err := NewTemplateFormatter(templateConfig(), newTestLogger())
	require.NoError(t, err)

	ok := core.StartEntry("MyApp.S", "Charge").
		WithTemplate("payment").
		WithCompletion(true, nil)
	out, err := f.Format(ok)
	require.NoError(t, err)
	assert.Contains(t, string(out), "payment Charge ok in")

	failed := core.StartEntry("MyApp.S", "Charge").
		WithTemplate("payment").
		WithCompletion(false, errors.New("declined"))
	out, err = f.Format(failed)
	require.NoError(t, err)
	assert.Contains(t, string(out), "payment Charge FAILED: declined")
}

func TestTemplateFormatterUnknownNameFallsBack(t *testing.T) {
	f, err := NewTemplateFormatter(templateConfig(), newTestLogger())
	require.NoError(t, err)

	entry := core.StartEntry("MyApp.S", "Charge").
		WithTemplate("missing").
		WithCompletion(true, nil)

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(out), "MyApp.S.Charge completed in")
}

func TestTemplateFormatterUnresolvablePlaceholderRendersEmpty(t *testing.T) {
	cfg := &config.Config{
		Templates: []config.TemplateConfig{
			{Name: "odd", Success: "before<{{.NoSuchField}}>after"},
		},
	}
	f, err := NewTemplateFormatter(cfg, newTestLogger())
	require.NoError(t, err)

	entry := core.StartEntry("MyApp.S", "M").WithTemplate("odd").WithCompletion(true, nil)
	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "before<>after\n", string(out))
}

func TestTemplateFormatterRejectsMalformedTemplate(t *testing.T) {
	cfg := &config.Config{
		Templates: []config.TemplateConfig{
			{Name: "bad", Success: "{{.Unclosed"},
		},
	}
	_, err := NewTemplateFormatter(cfg, newTestLogger())
	assert.Error(t, err)
}
