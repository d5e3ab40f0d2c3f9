// Package textutil provides token fingerprints and similarity scoring for
// channel name comparison, plus filename sanitization for generated outputs.
//
// Fingerprints are term-frequency vectors over a name's tokens; similarity is
// cosine similarity between them, which makes scoring insensitive to token
// order ("One BBC" and "BBC One" compare equal apart from the exact-match
// reservation in NameSimilarity).
package textutil
