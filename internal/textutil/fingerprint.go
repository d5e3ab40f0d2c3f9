package textutil

import (
	"math"
	"regexp"
	"strings"
)

// tokenSplitPattern matches non-alphanumeric character sequences for tokenization.
var tokenSplitPattern = regexp.MustCompile(`[^\pL\pN]+`)

// Fingerprint is a term-frequency vector over a name's tokens. Token order is
// not represented, so permuted names produce identical fingerprints.
type Fingerprint struct {
	tokens map[string]float64
	norm   float64
}

// NewFingerprint builds a fingerprint from a name. Channel names are short,
// so every token counts; there is no minimum token length. Returns nil if the
// name produces no tokens.
func NewFingerprint(name string) *Fingerprint {
	tokens := Tokenize(name)
	if len(tokens) == 0 {
		return nil
	}
	counts := make(map[string]float64, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	var norm float64
	for _, count := range counts {
		norm += count * count
	}
	return &Fingerprint{
		tokens: counts,
		norm:   math.Sqrt(norm),
	}
}

// Tokenize splits a name into lowercase tokens on non-alphanumeric runs.
func Tokenize(name string) []string {
	lowered := strings.ToLower(name)
	raw := tokenSplitPattern.Split(lowered, -1)
	terms := make([]string, 0, len(raw))
	for _, token := range raw {
		if token = strings.TrimSpace(token); token != "" {
			terms = append(terms, token)
		}
	}
	return terms
}

// TokenCount returns the number of unique tokens in the fingerprint.
func (f *Fingerprint) TokenCount() int {
	if f == nil {
		return 0
	}
	return len(f.tokens)
}

// LeadingToken returns the first token of a name, or "" if it has none.
func LeadingToken(name string) string {
	tokens := Tokenize(name)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}
