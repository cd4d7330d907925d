package filter

import (
	"strings"
	"unicode/utf8"

	"github.com/gobwas/glob"
)

// compiledPattern is one exclusion glob ready for matching.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
	// minLen is the fewest runes a candidate needs to match.
	minLen int
}

// translatePattern rewrites a user glob into gobwas syntax with these
// semantics: '*' matches any run of characters including '/', '?' matches
// exactly one character, "[...]" is kept as a character class, and every
// other character is literal. The result is lower-cased; candidates are
// lower-cased before matching, which makes matching case-insensitive.
//
// It also returns the minimum candidate length in runes: one for every
// literal, '?' and class, none for '*'.
func translatePattern(pattern string) (string, int) {
	var b strings.Builder
	inClass := false
	minLen := 0
	for _, r := range pattern {
		switch {
		case inClass:
			if r == ']' {
				inClass = false
			}
			b.WriteRune(r)
		case r == '*':
			b.WriteRune(r)
		case r == '?':
			minLen++
			b.WriteRune(r)
		case r == '[':
			inClass = true
			minLen++
			b.WriteRune(r)
		default:
			minLen++
			b.WriteString(glob.QuoteMeta(string(r)))
		}
	}
	return strings.ToLower(b.String()), minLen
}

// compilePattern compiles a single user glob. No separators are configured,
// so '*' crosses directory boundaries and the whole candidate must match.
func compilePattern(pattern string) (compiledPattern, error) {
	expr, minLen := translatePattern(pattern)
	g, err := glob.Compile(expr)
	if err != nil {
		return compiledPattern{}, err
	}
	return compiledPattern{pattern: pattern, glob: g, minLen: minLen}, nil
}

// match tests the whole candidate. gobwas lets a prefix and suffix overlap
// and a lone '?' match nothing, so candidates too short to satisfy every
// non-star element are rejected first.
func (p compiledPattern) match(candidate string) bool {
	candidate = strings.ToLower(candidate)
	if utf8.RuneCountInString(candidate) < p.minLen {
		return false
	}
	return p.glob.Match(candidate)
}
