package textutil

// CosineSimilarity computes the cosine similarity between two fingerprints.
// Returns 0 if either fingerprint is nil or has zero norm.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for token, count := range a.tokens {
		if other, ok := b.tokens[token]; ok {
			dot += count * other
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}

// fuzzySimilarityCap bounds FuzzySimilarity. Cosine scores a permuted token
// multiset ("one bbc" vs "bbc one") as 1.0; a full 1.0 is reserved for exact
// key equality, which callers detect by string comparison before scoring.
const fuzzySimilarityCap = 0.995

// FuzzySimilarity scores two fingerprints of unequal names in [0, 1):
// token-order-insensitive cosine similarity capped below 1.
func FuzzySimilarity(a, b *Fingerprint) float64 {
	score := CosineSimilarity(a, b)
	if score > fuzzySimilarityCap {
		score = fuzzySimilarityCap
	}
	return score
}

// NameSimilarity scores two folded name keys in [0, 1]. Equal keys score
// exactly 1; everything else goes through FuzzySimilarity.
func NameSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	return FuzzySimilarity(NewFingerprint(a), NewFingerprint(b))
}
