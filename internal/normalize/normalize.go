package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalized is the structured form of a raw channel display name. BaseName
// keeps the undecorated tokens in their original order and casing; Key is the
// folded copy used for all grouping and equality. Optional attributes are
// empty when the name carried no recognized decoration.
type Normalized struct {
	Input      string
	BaseName   string
	Key        string
	Resolution Resolution
	Country    string
	Lang       string
	Variant    string
}

// HasAttributes reports whether any decoration attribute was extracted.
func (n Normalized) HasAttributes() bool {
	return n.Resolution != "" || n.Country != "" || n.Lang != "" || n.Variant != ""
}

// separatorChars split names into tokens alongside whitespace. '+' survives
// tokenization so "+1"/"+2" variant markers stay intact.
const separatorChars = "-_|/\\,.()[]{}:;\"'!?"

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(separatorChars, r)
}

// Fold lowercases a string and strips combining diacritical marks, producing
// the form used for grouping keys and vocabulary comparison.
func Fold(s string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		strings.ToLower(s),
	)
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

// Normalize parses a raw display name into a Normalized record. It is a total
// function: unrecognized input degrades to a cleaned base name with no
// attributes, and normalizing a base name again is a fixed point.
func Normalize(name string) Normalized {
	result := Normalized{Input: name}

	tokens := tokenize(name)
	if len(tokens) == 0 {
		return result
	}

	consumed := make([]bool, len(tokens))

	// Category scans run in a fixed order; a consumed token is invisible to
	// later categories. Within a category the first matching token sets the
	// attribute and every later match is dropped from the base name.
	for i, token := range tokens {
		value, ok := resolutionSet[Fold(token)]
		if !ok {
			continue
		}
		consumed[i] = true
		if result.Resolution == "" {
			result.Resolution = value
		}
	}

	for i, token := range tokens {
		if consumed[i] || token != strings.ToUpper(token) {
			continue
		}
		canonical, ok := countrySet[token]
		if !ok {
			continue
		}
		consumed[i] = true
		if result.Country == "" {
			result.Country = canonical
		}
	}

	for i, token := range tokens {
		if consumed[i] {
			continue
		}
		folded := Fold(token)
		if _, ok := langSet[folded]; !ok {
			continue
		}
		consumed[i] = true
		if result.Lang == "" {
			result.Lang = folded
		}
	}

	for i, token := range tokens {
		if consumed[i] {
			continue
		}
		value, ok := variantSet[token]
		if !ok {
			value, ok = variantSet[Fold(token)]
		}
		if !ok {
			continue
		}
		consumed[i] = true
		if result.Variant == "" {
			result.Variant = value
		}
	}

	for i, token := range tokens {
		if consumed[i] {
			continue
		}
		if _, ok := noiseSet[Fold(token)]; ok {
			consumed[i] = true
		}
	}

	remaining := make([]string, 0, len(tokens))
	for i, token := range tokens {
		if !consumed[i] {
			remaining = append(remaining, token)
		}
	}
	// A name made entirely of decoration keeps its cleaned tokens so the
	// grouping key never empties for non-empty input.
	if len(remaining) == 0 {
		remaining = tokens
	}

	result.BaseName = strings.Join(remaining, " ")
	result.Key = Fold(result.BaseName)
	return result
}

func tokenize(name string) []string {
	fields := strings.FieldsFunc(name, isSeparator)
	tokens := fields[:0]
	for _, field := range fields {
		if field = strings.TrimSpace(field); field != "" {
			tokens = append(tokens, field)
		}
	}
	return tokens
}
