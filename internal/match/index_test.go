package match

import (
	"fmt"
	"testing"

	"lineup/internal/catalog"
)

func TestIndexExactLookup(t *testing.T) {
	portal := mkChannels(
		catalog.Record{ID: 3, Name: "CNN"},
		catalog.Record{ID: 1, Name: "CNN"},
		catalog.Record{ID: 2, Name: "BBC One"},
	)
	idx := buildIndex(portal)

	positions := idx.candidates("cnn")
	if len(positions) == 0 {
		t.Fatal("expected candidates for exact key")
	}
	var prev int64 = -1
	for _, pos := range positions {
		id := idx.channels[pos].channel.ID
		if id <= prev {
			t.Fatalf("candidates not in ascending portal-id order: %v", positions)
		}
		prev = id
	}
}

func TestIndexWidenedBucketBounded(t *testing.T) {
	var records []catalog.Record
	for i := 0; i < maxWidenedCandidates*3; i++ {
		records = append(records, catalog.Record{
			ID:   int64(i + 1),
			Name: fmt.Sprintf("Sky Variant %d", i),
		})
	}
	idx := buildIndex(catalog.Normalize(records))

	positions := idx.candidates("sky nothing like these")
	if len(positions) == 0 {
		t.Fatal("expected widened candidates via leading token")
	}
	if len(positions) > maxWidenedCandidates {
		t.Fatalf("widened candidate set has %d entries, cap is %d", len(positions), maxWidenedCandidates)
	}
}

func TestIndexWidenedBucketKeepsLowestIDs(t *testing.T) {
	var records []catalog.Record
	// Insert in descending id order; truncation must still keep the lowest ids.
	for i := maxWidenedCandidates * 2; i > 0; i-- {
		records = append(records, catalog.Record{
			ID:   int64(i),
			Name: fmt.Sprintf("Sky Variant %d", i),
		})
	}
	idx := buildIndex(catalog.Normalize(records))

	positions := idx.candidates("sky unrelated")
	if len(positions) != maxWidenedCandidates {
		t.Fatalf("got %d candidates, want cap %d", len(positions), maxWidenedCandidates)
	}
	for i, pos := range positions {
		if got, want := idx.channels[pos].channel.ID, int64(i+1); got != want {
			t.Fatalf("candidate %d has id %d, want %d", i, got, want)
		}
	}
}

func TestIndexEmptyKeyNoCandidates(t *testing.T) {
	idx := buildIndex(mkChannels(catalog.Record{ID: 1, Name: "CNN"}))
	if got := idx.candidates(""); got != nil {
		t.Fatalf("candidates(\"\") = %v, want nil", got)
	}
}
