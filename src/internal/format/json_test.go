// FILE: autolog/src/internal/format/json_test.go
package format

import (
	"errors"
	"testing"

	"autolog/src/internal/core"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFormatterSuccess(t *testing.T) {
	f := NewJSONFormatter(newTestLogger())

	entry := core.StartEntry("MyApp.Services.PaymentService", "Charge").
		WithInput(json.RawMessage(`{"amount":10}`)).
		WithCompletion(true, nil).
		WithOutput(json.RawMessage(`{"status":"ok"}`))

	out, err := f.Format(entry)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(out, &parsed))

	assert.Equal(t, "MyApp.Services.PaymentService", parsed["type"])
	assert.Equal(t, "Charge", parsed["method"])
	assert.Equal(t, true, parsed["success"])
	assert.Equal(t, map[string]any{"amount": float64(10)}, parsed["input"])
	assert.NotContains(t, parsed, "error")
}

func TestJSONFormatterFailure(t *testing.T) {
	f := NewJSONFormatter(newTestLogger())

	entry := core.StartEntry("MyApp.S", "M").
		WithCompletion(false, errors.New("payment declined"))

	out, err := f.Format(entry)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(out, &parsed))

	assert.Equal(t, false, parsed["success"])
	assert.Equal(t, "payment declined", parsed["error"])
	assert.Equal(t, "error", parsed["level"])
	assert.NotEmpty(t, parsed["error_type"])
}

func TestTextFormatter(t *testing.T) {
	f := NewTextFormatter(newTestLogger())

	entry := core.StartEntry("MyApp.S", "Lookup").WithCompletion(true, nil)
	out, err := f.Format(entry)
	require.NoError(t, err)

	line := string(out)
	assert.Contains(t, line, "type=MyApp.S")
	assert.Contains(t, line, "method=Lookup")
	assert.Contains(t, line, "success=true")
	assert.Equal(t, byte('\n'), out[len(out)-1])
}

func TestHybridFormatter(t *testing.T) {
	f := NewHybridFormatter(newTestLogger())

	entry := core.StartEntry("MyApp.S", "Lookup").
		WithCompletion(false, errors.New("boom"))

	out, err := f.Format(entry)
	require.NoError(t, err)

	line := string(out)
	assert.Contains(t, line, "[ERROR]")
	assert.Contains(t, line, "MyApp.S.Lookup")
	assert.Contains(t, line, `"error":"boom"`)
}
