package textutil

import "testing"

func TestCosineSimilarityNil(t *testing.T) {
	tests := []struct {
		name string
		a    *Fingerprint
		b    *Fingerprint
		want float64
	}{
		{"both nil", nil, nil, 0},
		{"a nil", nil, NewFingerprint("bbc one"), 0},
		{"b nil", NewFingerprint("bbc one"), nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CosineSimilarity(tt.a, tt.b); got != tt.want {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineSimilarityIdentical(t *testing.T) {
	a := NewFingerprint("discovery science")
	b := NewFingerprint("discovery science")
	if got := CosineSimilarity(a, b); got != 1.0 {
		t.Errorf("CosineSimilarity(identical) = %v, want 1.0", got)
	}
}

func TestCosineSimilarityDisjoint(t *testing.T) {
	a := NewFingerprint("bbc one")
	b := NewFingerprint("eurosport two")
	if got := CosineSimilarity(a, b); got != 0 {
		t.Errorf("CosineSimilarity(disjoint) = %v, want 0", got)
	}
}

func TestCosineSimilaritySymmetric(t *testing.T) {
	a := NewFingerprint("sky sports news")
	b := NewFingerprint("sky news")
	if ab, ba := CosineSimilarity(a, b), CosineSimilarity(b, a); ab != ba {
		t.Errorf("CosineSimilarity not symmetric: (%v, %v)", ab, ba)
	}
}

func TestNameSimilarityExactEquality(t *testing.T) {
	if got := NameSimilarity("bbc one", "bbc one"); got != 1.0 {
		t.Errorf("NameSimilarity(equal) = %v, want 1.0", got)
	}
}

func TestNameSimilarityPermutedCappedBelowOne(t *testing.T) {
	got := NameSimilarity("one bbc", "bbc one")
	if got >= 1.0 {
		t.Errorf("NameSimilarity(permuted) = %v, want < 1.0", got)
	}
	if got != fuzzySimilarityCap {
		t.Errorf("NameSimilarity(permuted) = %v, want cap %v", got, fuzzySimilarityCap)
	}
}

func TestNameSimilarityPartialOverlap(t *testing.T) {
	got := NameSimilarity("sky sports", "sky news")
	if got <= 0 || got >= 1 {
		t.Errorf("NameSimilarity(partial) = %v, want in (0, 1)", got)
	}
}

func TestTokenizeShortTokensKept(t *testing.T) {
	tokens := Tokenize("TV 1000 +1")
	want := []string{"tv", "1000", "1"}
	if len(tokens) != len(want) {
		t.Fatalf("Tokenize = %v, want %v", tokens, want)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("Tokenize = %v, want %v", tokens, want)
		}
	}
}

func TestLeadingToken(t *testing.T) {
	if got := LeadingToken("BBC One HD"); got != "bbc" {
		t.Errorf("LeadingToken = %q, want bbc", got)
	}
	if got := LeadingToken("  "); got != "" {
		t.Errorf("LeadingToken(blank) = %q, want empty", got)
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"playlist: matched/channels", "playlist- matched-channels"},
		{"report?*", "report-"},
		{"  plain  ", "plain"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeFileName(tt.input); got != tt.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
