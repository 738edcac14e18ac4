// FILE: autolog/src/internal/pattern/pattern.go
package pattern

import "strings"

// Matches evaluates a single pattern against a name. Supported forms:
// exact, "prefix*", "*suffix", "*contains*", and the bare "*" wildcard.
// A '*' in the middle of a pattern is treated as prefix-match up to it.
func Matches(pat, name string) bool {
	if pat == "" {
		return false
	}
	if pat == "*" {
		return true
	}

	leading := strings.HasPrefix(pat, "*")
	trailing := strings.HasSuffix(pat, "*")
	body := strings.Trim(pat, "*")

	switch {
	case leading && trailing:
		return strings.Contains(name, body)
	case leading:
		return strings.HasSuffix(name, body)
	case trailing:
		return strings.HasPrefix(name, body)
	default:
		if i := strings.IndexByte(pat, '*'); i >= 0 {
			return strings.HasPrefix(name, pat[:i])
		}
		return name == pat
	}
}

// MatchesAny reports whether any pattern in the list matches the name.
func MatchesAny(pats []string, name string) bool {
	for _, p := range pats {
		if Matches(p, name) {
			return true
		}
	}
	return false
}

// MatchesFold is Matches with case folding. Mask rules match parameter and
// property names this way: "*secret*" must cover clientSecretKey.
func MatchesFold(pat, name string) bool {
	return Matches(strings.ToLower(pat), strings.ToLower(name))
}

// MatchesAnyFold reports whether any pattern matches the name, ignoring case.
func MatchesAnyFold(pats []string, name string) bool {
	for _, p := range pats {
		if MatchesFold(p, name) {
			return true
		}
	}
	return false
}

// literalPrefixLen returns the length of the literal text before the first
// wildcard, used as the specificity measure among wildcard patterns.
func literalPrefixLen(pat string) int {
	if i := strings.IndexByte(pat, '*'); i >= 0 {
		return i
	}
	return len(pat)
}

// IsExact reports whether a pattern contains no wildcard.
func IsExact(pat string) bool {
	return !strings.ContainsRune(pat, '*')
}

// BestMatch selects the most specific matching pattern for a name and
// returns its index, or -1 when nothing matches. An exact match beats any
// wildcard; among wildcards the longest literal prefix wins; equal-length
// prefixes resolve to the earliest declared pattern.
func BestMatch(pats []string, name string) int {
	best := -1
	bestExact := false
	bestPrefix := -1

	for i, p := range pats {
		if !Matches(p, name) {
			continue
		}
		exact := IsExact(p)
		if exact {
			if !bestExact {
				best, bestExact, bestPrefix = i, true, literalPrefixLen(p)
			}
			continue
		}
		if bestExact {
			continue
		}
		if plen := literalPrefixLen(p); plen > bestPrefix {
			best, bestPrefix = i, plen
		}
	}
	return best
}
