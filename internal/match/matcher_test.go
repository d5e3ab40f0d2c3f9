package match

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"testing"

	"lineup/internal/catalog"
)

func mkChannels(records ...catalog.Record) []catalog.Channel {
	return catalog.Normalize(records)
}

func runMatch(t *testing.T, local, portal []catalog.Channel, cfg Config) *Report {
	t.Helper()
	report, err := Match(context.Background(), local, portal, cfg)
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	return report
}

func TestMatchExactBaseName(t *testing.T) {
	local := mkChannels(catalog.Record{ID: 1, Name: "BBC One"})
	portal := mkChannels(catalog.Record{ID: 100, Name: "BBC One HD"})

	report := runMatch(t, local, portal, DefaultConfig())
	if len(report.Matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(report.Matches))
	}
	m := report.Matches[0]
	if m.Type != TypeExact {
		t.Errorf("Type = %q, want exact", m.Type)
	}
	if m.NameSimilarity != 1.0 {
		t.Errorf("NameSimilarity = %v, want 1.0", m.NameSimilarity)
	}
	// 1.0×0.75 with no country/resolution terms on the undecorated side.
	if m.Confidence != 0.75 {
		t.Errorf("Confidence = %v, want 0.75", m.Confidence)
	}
	if m.PortalID != 100 {
		t.Errorf("PortalID = %d, want 100", m.PortalID)
	}
}

func TestMatchCountryPenalty(t *testing.T) {
	local := mkChannels(catalog.Record{ID: 1, Name: "CNN HD RU"})
	portal := mkChannels(catalog.Record{ID: 7, Name: "CNN BR"})

	report := runMatch(t, local, portal, DefaultConfig())
	if len(report.Matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(report.Matches))
	}
	m := report.Matches[0]
	// Base names both fold to "cnn": similarity 1.0, then the country
	// mismatch subtracts the penalty. 1.0×0.75 − 0.10 = 0.65.
	if math.Abs(m.Confidence-0.65) > 1e-9 {
		t.Errorf("Confidence = %v, want 0.65", m.Confidence)
	}
	if m.NeedsReview {
		t.Error("0.65 is above the auto threshold and must not need review")
	}
}

func TestMatchCountryAndResolutionBonus(t *testing.T) {
	local := mkChannels(catalog.Record{ID: 1, Name: "CNN HD RU"})
	portal := mkChannels(catalog.Record{ID: 7, Name: "CNN HD RU"})

	report := runMatch(t, local, portal, DefaultConfig())
	if len(report.Matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(report.Matches))
	}
	// 1.0×0.75 + 0.15 + 0.10 = 1.0, the configured ceiling.
	if math.Abs(report.Matches[0].Confidence-1.0) > 1e-9 {
		t.Errorf("Confidence = %v, want 1.0", report.Matches[0].Confidence)
	}
}

func TestMatchNoiseTokenFoldsToExact(t *testing.T) {
	local := mkChannels(catalog.Record{ID: 1, Name: "Discovery Science"})
	portal := mkChannels(
		catalog.Record{ID: 5, Name: "Discovery Science Channel"},
		catalog.Record{ID: 6, Name: "Eurosport"},
	)

	report := runMatch(t, local, portal, DefaultConfig())
	if len(report.Matches) != 1 {
		t.Fatalf("got %d matches, want 1: %+v", len(report.Matches), report)
	}
	m := report.Matches[0]
	if m.PortalID != 5 {
		t.Fatalf("PortalID = %d, want 5", m.PortalID)
	}
	if m.Type != TypeExact {
		// "Channel" is a noise token, so both keys fold to "discovery science".
		t.Fatalf("Type = %q, want exact via noise stripping", m.Type)
	}
}

func TestMatchWidenedCandidateViaLeadingToken(t *testing.T) {
	local := mkChannels(catalog.Record{ID: 1, Name: "Discovery Science"})
	portal := mkChannels(catalog.Record{ID: 5, Name: "Discovery Science World"})

	report := runMatch(t, local, portal, DefaultConfig())
	if len(report.Matches) != 1 {
		t.Fatalf("near-miss spelling must be caught by the leading-token index: %+v", report)
	}
	if report.Matches[0].Type != TypeFuzzy {
		t.Fatalf("Type = %q, want fuzzy", report.Matches[0].Type)
	}
}

func TestMatchFuzzyScoredBelowExact(t *testing.T) {
	local := mkChannels(catalog.Record{ID: 1, Name: "Sky Sports News"})
	portal := mkChannels(catalog.Record{ID: 2, Name: "Sky Sports Extra"})

	cfg := DefaultConfig()
	cfg.MinConfidenceReport = 0.1
	cfg.MinConfidenceAuto = 0.1
	report := runMatch(t, local, portal, cfg)
	if len(report.Matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(report.Matches))
	}
	m := report.Matches[0]
	if m.Type != TypeFuzzy {
		t.Fatalf("Type = %q, want fuzzy", m.Type)
	}
	if m.NameSimilarity <= 0 || m.NameSimilarity >= 1 {
		t.Fatalf("NameSimilarity = %v, want in (0, 1)", m.NameSimilarity)
	}
}

func TestMatchThresholdBoundary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NameWeight = 0.75
	cfg.MinConfidenceReport = 0.75
	cfg.MinConfidenceAuto = 0.80

	local := mkChannels(catalog.Record{ID: 1, Name: "BBC One"})
	portal := mkChannels(catalog.Record{ID: 9, Name: "BBC One"})

	// Confidence lands exactly on the report threshold: included, flagged.
	report := runMatch(t, local, portal, cfg)
	if len(report.Matches) != 1 {
		t.Fatalf("confidence equal to threshold must match, got %+v", report)
	}
	if !report.Matches[0].NeedsReview {
		t.Error("winner below auto threshold must need review")
	}

	// Strictly below the report threshold: unmatched.
	cfg.MinConfidenceReport = 0.76
	cfg.MinConfidenceAuto = 0.80
	report = runMatch(t, local, portal, cfg)
	if len(report.Matches) != 0 || len(report.Unmatched) != 1 {
		t.Fatalf("confidence below threshold must be unmatched, got %+v", report)
	}
	if report.Unmatched[0] != 1 {
		t.Fatalf("Unmatched = %v, want [1]", report.Unmatched)
	}
}

func TestMatchTieBreakLowestPortalID(t *testing.T) {
	local := mkChannels(catalog.Record{ID: 1, Name: "CNN"})
	portal := mkChannels(
		catalog.Record{ID: 42, Name: "CNN"},
		catalog.Record{ID: 7, Name: "CNN"},
	)

	report := runMatch(t, local, portal, DefaultConfig())
	if len(report.Matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(report.Matches))
	}
	if report.Matches[0].PortalID != 7 {
		t.Fatalf("PortalID = %d, want lowest id 7", report.Matches[0].PortalID)
	}
}

func TestMatchPortalSideNotUnique(t *testing.T) {
	local := mkChannels(
		catalog.Record{ID: 1, Name: "BBC One"},
		catalog.Record{ID: 2, Name: "BBC One HD"},
	)
	portal := mkChannels(catalog.Record{ID: 5, Name: "BBC One"})

	report := runMatch(t, local, portal, DefaultConfig())
	if len(report.Matches) != 2 {
		t.Fatalf("got %d matches, want both locals claiming portal 5", len(report.Matches))
	}
	for _, m := range report.Matches {
		if m.PortalID != 5 {
			t.Fatalf("PortalID = %d, want 5", m.PortalID)
		}
	}
}

func TestMatchEachLocalAppearsOnce(t *testing.T) {
	local := mkChannels(
		catalog.Record{ID: 1, Name: "BBC One"},
		catalog.Record{ID: 2, Name: "CNN"},
		catalog.Record{ID: 3, Name: "Первый канал"},
		catalog.Record{ID: 4, Name: "Eurosport HD"},
	)
	portal := mkChannels(
		catalog.Record{ID: 10, Name: "BBC One HD"},
		catalog.Record{ID: 11, Name: "Eurosport"},
	)

	report := runMatch(t, local, portal, DefaultConfig())
	seen := make(map[int64]int)
	for _, m := range report.Matches {
		seen[m.LocalID]++
	}
	for _, id := range report.Unmatched {
		seen[id]++
	}
	if len(seen) != len(local) {
		t.Fatalf("got %d distinct local ids, want %d", len(seen), len(local))
	}
	for id, count := range seen {
		if count != 1 {
			t.Fatalf("local id %d appears %d times across matches+unmatched", id, count)
		}
	}
}

func TestMatchStats(t *testing.T) {
	local := mkChannels(
		catalog.Record{ID: 1, Name: "BBC One"},
		catalog.Record{ID: 2, Name: "CNN HD RU"},
		catalog.Record{ID: 3, Name: "Nonexistent Network"},
	)
	portal := mkChannels(
		catalog.Record{ID: 10, Name: "BBC One"},
		catalog.Record{ID: 11, Name: "CNN HD RU"},
	)

	report := runMatch(t, local, portal, DefaultConfig())
	stats := report.Stats
	if stats.ExactCount != 2 || stats.FuzzyCount != 0 {
		t.Fatalf("counts = %d exact / %d fuzzy, want 2/0", stats.ExactCount, stats.FuzzyCount)
	}
	if math.Abs(stats.MatchRate-2.0/3.0) > 1e-9 {
		t.Fatalf("MatchRate = %v, want 2/3", stats.MatchRate)
	}
	// BBC One: 0.75 (low-medium bucket boundary is 0.7, so medium);
	// CNN HD RU: 1.0 (high).
	if stats.Histogram.High != 1 || stats.Histogram.Medium != 1 || stats.Histogram.Low != 0 {
		t.Fatalf("Histogram = %+v, want high=1 medium=1 low=0", stats.Histogram)
	}
	want := (0.75 + 1.0) / 2
	if math.Abs(stats.AvgConfidence-want) > 1e-9 {
		t.Fatalf("AvgConfidence = %v, want %v", stats.AvgConfidence, want)
	}
	if stats.LocalCount != 3 || stats.PortalCount != 2 {
		t.Fatalf("counts = %d/%d, want 3/2", stats.LocalCount, stats.PortalCount)
	}
}

func TestMatchDeterministicAcrossWorkerCounts(t *testing.T) {
	var local, portal []catalog.Record
	for i := 0; i < 200; i++ {
		local = append(local, catalog.Record{ID: int64(i + 1), Name: fmt.Sprintf("Channel %d HD", i%40)})
	}
	for i := 0; i < 60; i++ {
		portal = append(portal, catalog.Record{ID: int64(1000 + i), Name: fmt.Sprintf("Channel %d", i)})
	}
	localChannels := catalog.Normalize(local)
	portalChannels := catalog.Normalize(portal)

	var reports [][]byte
	for _, workers := range []int{1, 4, 16} {
		cfg := DefaultConfig()
		cfg.Workers = workers
		report := runMatch(t, localChannels, portalChannels, cfg)
		encoded, err := json.Marshal(report)
		if err != nil {
			t.Fatalf("marshal report: %v", err)
		}
		reports = append(reports, encoded)
	}
	for i := 1; i < len(reports); i++ {
		if !reflect.DeepEqual(reports[0], reports[i]) {
			t.Fatalf("report with worker count %d differs from baseline", []int{1, 4, 16}[i])
		}
	}
}

func TestMatchInvalidConfigRefusesToRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NameWeight = 0
	_, err := Match(context.Background(), nil, nil, cfg)
	if err == nil {
		t.Fatal("expected configuration error")
	}
}

func TestMatchEmptyCatalogs(t *testing.T) {
	report := runMatch(t, nil, nil, DefaultConfig())
	if len(report.Matches) != 0 || len(report.Unmatched) != 0 {
		t.Fatalf("unexpected report for empty input: %+v", report)
	}
	if report.Stats.MatchRate != 0 {
		t.Fatalf("MatchRate = %v, want 0", report.Stats.MatchRate)
	}
}
