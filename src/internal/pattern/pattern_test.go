// FILE: autolog/src/internal/pattern/pattern_test.go
package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	testCases := []struct {
		name     string
		pattern  string
		input    string
		expected bool
	}{
		{"Exact", "ProcessOrder", "ProcessOrder", true},
		{"ExactMiss", "ProcessOrder", "ProcessOrders", false},
		{"Prefix", "Get*", "GetUserName", true},
		{"PrefixMiss", "Get*", "SetUserName", false},
		{"Suffix", "*Async", "FetchAsync", true},
		{"SuffixMiss", "*Async", "AsyncFetch", false},
		{"Contains", "*User*", "GetUserName", true},
		{"ContainsMiss", "*User*", "GetOrder", false},
		{"Wildcard", "*", "anything", true},
		{"Empty", "", "anything", false},
		{"TypeWildcard", "MyApp.Services.*", "MyApp.Services.PaymentService", true},
		{"TypeWildcardMiss", "MyApp.Services.*", "MyApp.Domain.PaymentService", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Matches(tc.pattern, tc.input))
		})
	}
}

func TestMatchesAny(t *testing.T) {
	pats := []string{"Get*", "*Internal"}
	assert.True(t, MatchesAny(pats, "GetName"))
	assert.True(t, MatchesAny(pats, "flushInternal"))
	assert.False(t, MatchesAny(pats, "ProcessOrder"))
	assert.False(t, MatchesAny(nil, "ProcessOrder"))
}

func TestBestMatchExactBeatsWildcard(t *testing.T) {
	// Wildcard registered first must still lose to the exact pattern.
	pats := []string{"MyApp.Services.*", "MyApp.Services.PaymentService"}
	assert.Equal(t, 1, BestMatch(pats, "MyApp.Services.PaymentService"))

	// Sibling type only matches the wildcard.
	assert.Equal(t, 0, BestMatch(pats, "MyApp.Services.OrderService"))
}

func TestBestMatchLongestPrefixWins(t *testing.T) {
	pats := []string{"MyApp.*", "MyApp.Services.*"}
	assert.Equal(t, 1, BestMatch(pats, "MyApp.Services.PaymentService"))
	assert.Equal(t, 0, BestMatch(pats, "MyApp.Domain.Order"))
}

func TestBestMatchTieBreakDeclarationOrder(t *testing.T) {
	// Equal literal prefix length: earliest declaration wins.
	pats := []string{"MyApp.Svc1.*x", "MyApp.Svc1.*y"}
	assert.Equal(t, 0, BestMatch(pats, "MyApp.Svc1.Payment"))
}

func TestBestMatchNoMatch(t *testing.T) {
	assert.Equal(t, -1, BestMatch([]string{"Other.*"}, "MyApp.Service"))
	assert.Equal(t, -1, BestMatch(nil, "MyApp.Service"))
}
