// FILE: autolog/src/internal/mask/mask_test.go
package mask

import (
	"testing"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
)

type paymentRequest struct {
	Account    string
	CardNumber string `mask:""`
	CVV        string `mask:"###"`
	Amount     float64
}

type apiKey string

func (apiKey) MaskReplacement() string { return "<redacted>" }

func newTestEngine() *Engine {
	return NewEngine(log.NewLogger())
}

func TestParameterNamePattern(t *testing.T) {
	e := newTestEngine()
	rules := RuleSet{ParameterPatterns: []string{"password", "*secret*"}}

	assert.Equal(t, "***", e.Parameter("password", "hunter2", rules))
	assert.Equal(t, "***", e.Parameter("clientSecretKey", "abc", rules))
	assert.Equal(t, "visible", e.Parameter("username", "visible", rules))
}

func TestParameterReplacerWinsUnconditionally(t *testing.T) {
	e := newTestEngine()
	assert.Equal(t, "<redacted>", e.Parameter("anything", apiKey("k-123"), RuleSet{}))
}

func TestStructTagMasking(t *testing.T) {
	e := newTestEngine()
	req := paymentRequest{Account: "acct-1", CardNumber: "4111111111111111", CVV: "123", Amount: 9.99}

	masked := e.Value(req, RuleSet{})
	m, ok := masked.(map[string]any)
	assert.True(t, ok)

	assert.Equal(t, "acct-1", m["Account"])
	assert.Equal(t, "***", m["CardNumber"])
	assert.Equal(t, "###", m["CVV"])
	assert.Equal(t, 9.99, m["Amount"])
}

func TestPropertyPatternMasking(t *testing.T) {
	e := newTestEngine()
	rules := RuleSet{PropertyPatterns: []string{"Account"}, Replacement: "[hidden]"}

	masked := e.Value(paymentRequest{Account: "acct-1"}, rules)
	m := masked.(map[string]any)
	assert.Equal(t, "[hidden]", m["Account"])
}

func TestOutputPatternMasking(t *testing.T) {
	e := newTestEngine()
	rules := RuleSet{OutputPatterns: []string{"Token*"}}

	out := e.Output(map[string]any{"TokenValue": "t", "Status": "ok"}, rules)
	m := out.(map[string]any)
	assert.Equal(t, "***", m["TokenValue"])
	assert.Equal(t, "ok", m["Status"])
}

func TestNameMatchingIgnoresCase(t *testing.T) {
	e := newTestEngine()

	rules := RuleSet{ParameterPatterns: []string{"*SECRET*"}}
	assert.Equal(t, "***", e.Parameter("clientSecretKey", "abc", rules))

	type creds struct{ ApiToken string }
	out := e.Value(creds{ApiToken: "t-1"}, RuleSet{PropertyPatterns: []string{"apitoken"}})
	m := out.(map[string]any)
	assert.Equal(t, "***", m["ApiToken"])

	mapped := e.Value(map[string]any{"PASSWORD": "p"}, RuleSet{PropertyPatterns: []string{"password"}})
	assert.Equal(t, "***", mapped.(map[string]any)["PASSWORD"])
}

func TestMaskingIdempotent(t *testing.T) {
	e := newTestEngine()
	rules := RuleSet{PropertyPatterns: []string{"CardNumber"}}
	req := paymentRequest{Account: "a", CardNumber: "4111", CVV: "1", Amount: 1}

	once := e.Value(req, rules)
	twice := e.Value(once, rules)
	assert.Equal(t, once, twice)
}

func TestNoMatchingRulePassesThrough(t *testing.T) {
	e := newTestEngine()

	type plain struct{ Name string }
	out := e.Value(plain{Name: "n"}, RuleSet{PropertyPatterns: []string{"Other"}})
	assert.Equal(t, map[string]any{"Name": "n"}, out)

	assert.Equal(t, 42, e.Parameter("count", 42, RuleSet{}))
	assert.Nil(t, e.Value(nil, RuleSet{}))
}

func TestNestedStructMasking(t *testing.T) {
	e := newTestEngine()
	type inner struct{ Password string }
	type outer struct {
		User  string
		Creds inner
	}
	rules := RuleSet{PropertyPatterns: []string{"Password"}}

	out := e.Value(outer{User: "u", Creds: inner{Password: "p"}}, rules)
	m := out.(map[string]any)
	creds := m["Creds"].(map[string]any)
	assert.Equal(t, "***", creds["Password"])
	assert.Equal(t, "u", m["User"])
}

type sessionToken struct{ raw string }

func (*sessionToken) MaskReplacement() string { return "<token>" }

func TestPointerReceiverReplacerInNestedField(t *testing.T) {
	e := newTestEngine()
	type session struct {
		User  string
		Token *sessionToken
	}

	out := e.Value(session{User: "u", Token: &sessionToken{raw: "tok-1"}}, RuleSet{})
	m := out.(map[string]any)
	assert.Equal(t, "u", m["User"])
	assert.Equal(t, "<token>", m["Token"])
}

func TestCyclicValueTerminates(t *testing.T) {
	e := newTestEngine()
	type node struct {
		Name string
		Next *node
	}
	n := &node{Name: "a"}
	n.Next = n

	// Depth-limited clone must return without recursing forever.
	out := e.Value(n, RuleSet{PropertyPatterns: []string{"Name"}})
	assert.NotNil(t, out)
}

func TestRuleSetEmpty(t *testing.T) {
	assert.True(t, RuleSet{}.Empty())
	assert.False(t, RuleSet{ParameterPatterns: []string{"p"}}.Empty())
}
