package store_test

import (
	"context"
	"testing"

	"lineup/internal/catalog"
	"lineup/internal/hierarchy"
	"lineup/internal/match"
	"lineup/internal/store"
	"lineup/internal/testsupport"
)

func testChannels(names map[int64]string) []catalog.Channel {
	records := make([]catalog.Record, 0, len(names))
	for id, name := range names {
		records = append(records, catalog.Record{ID: id, Name: name, StreamCount: 1})
	}
	// map iteration order is irrelevant; the store orders by id
	return catalog.Normalize(records)
}

func TestReplaceCatalogRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	channels := testChannels(map[int64]string{
		1: "BBC One",
		2: "BBC One HD",
		3: "Первый канал",
	})
	if err := st.ReplaceCatalog(ctx, catalog.Local, channels); err != nil {
		t.Fatalf("ReplaceCatalog: %v", err)
	}

	loaded, err := st.Channels(ctx, catalog.Local)
	if err != nil {
		t.Fatalf("Channels: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("loaded %d channels, want 3", len(loaded))
	}
	for i := 1; i < len(loaded); i++ {
		if loaded[i-1].ID >= loaded[i].ID {
			t.Fatalf("channels not ordered by id: %v before %v", loaded[i-1].ID, loaded[i].ID)
		}
	}
	var hd catalog.Channel
	for _, channel := range loaded {
		if channel.ID == 2 {
			hd = channel
		}
	}
	if hd.Norm.Resolution != "hd" {
		t.Fatalf("resolution not round-tripped: %q", hd.Norm.Resolution)
	}
	if hd.Norm.Key != "bbc one" {
		t.Fatalf("norm key not round-tripped: %q", hd.Norm.Key)
	}
}

func TestReplaceCatalogDropsPreviousImport(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	first := testChannels(map[int64]string{1: "CNN", 2: "CNN HD"})
	if err := st.ReplaceCatalog(ctx, catalog.Portal, first); err != nil {
		t.Fatalf("first import: %v", err)
	}
	second := testChannels(map[int64]string{9: "Discovery"})
	if err := st.ReplaceCatalog(ctx, catalog.Portal, second); err != nil {
		t.Fatalf("second import: %v", err)
	}

	loaded, err := st.Channels(ctx, catalog.Portal)
	if err != nil {
		t.Fatalf("Channels: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != 9 {
		t.Fatalf("second import did not replace first: %+v", loaded)
	}

	counts, err := st.CatalogCounts(ctx)
	if err != nil {
		t.Fatalf("CatalogCounts: %v", err)
	}
	if counts[catalog.Portal] != 1 || counts[catalog.Local] != 0 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestUpdateHierarchyRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	channels := testChannels(map[int64]string{1: "BBC One", 2: "BBC One HD"})
	if err := st.ReplaceCatalog(ctx, catalog.Local, channels); err != nil {
		t.Fatalf("ReplaceCatalog: %v", err)
	}

	nodes, err := hierarchy.Build(channels)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := st.UpdateHierarchy(ctx, catalog.Local, nodes); err != nil {
		t.Fatalf("UpdateHierarchy: %v", err)
	}

	stored, err := st.StoredChannels(ctx, catalog.Local)
	if err != nil {
		t.Fatalf("StoredChannels: %v", err)
	}
	byID := make(map[int64]store.StoredChannel, len(stored))
	for _, sc := range stored {
		byID[sc.Channel.ID] = sc
	}

	root := byID[1]
	if root.Node == nil || !root.Node.IsRoot || root.Node.RootID != 1 {
		t.Fatalf("root placement wrong: %+v", root.Node)
	}
	variant := byID[2]
	if variant.Node == nil || !variant.Node.IsVariant {
		t.Fatalf("variant placement wrong: %+v", variant.Node)
	}
	if variant.Node.ParentID == nil || *variant.Node.ParentID != 1 {
		t.Fatalf("variant parent wrong: %+v", variant.Node)
	}
}

func TestSaveRunAndReadBack(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	report := &match.Report{
		Matches: []match.Candidate{
			{
				LocalID: 1, PortalID: 11,
				LocalName: "BBC One", PortalName: "BBC One",
				NameSimilarity: 1.0, Confidence: 0.75, Type: match.TypeExact,
			},
			{
				LocalID: 2, PortalID: 12,
				LocalName: "Discovery Science", PortalName: "Discovery Science World",
				NameSimilarity: 0.8, Confidence: 0.6, Type: match.TypeFuzzy,
				NeedsReview: true,
			},
		},
		Unmatched: []int64{3},
		Stats: match.Stats{
			LocalCount: 3, PortalCount: 2,
			ExactCount: 1, FuzzyCount: 1,
			AvgConfidence: 0.675, MatchRate: 2.0 / 3.0,
			Histogram: match.Histogram{Low: 2},
		},
	}
	localNames := map[int64]string{3: "Obscure Local"}

	runID, err := st.SaveRun(ctx, report, localNames)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	latest, err := st.LatestRun(ctx)
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if latest == nil || latest.ID != runID {
		t.Fatalf("LatestRun = %+v, want id %s", latest, runID)
	}
	if latest.LocalCount != 3 || latest.ExactCount != 1 || latest.FuzzyCount != 1 {
		t.Fatalf("unexpected run stats: %+v", latest)
	}
	if latest.LowCount != 2 {
		t.Fatalf("histogram not persisted: %+v", latest)
	}

	matches, err := st.MatchesForRun(ctx, runID)
	if err != nil {
		t.Fatalf("MatchesForRun: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].LocalID != 1 || matches[1].LocalID != 2 {
		t.Fatalf("match order not preserved: %+v", matches)
	}
	if matches[1].Type != match.TypeFuzzy || !matches[1].NeedsReview {
		t.Fatalf("fuzzy flags lost: %+v", matches[1])
	}

	unmatched, err := st.UnmatchedForRun(ctx, runID)
	if err != nil {
		t.Fatalf("UnmatchedForRun: %v", err)
	}
	if len(unmatched) != 1 || unmatched[0].LocalID != 3 || unmatched[0].LocalName != "Obscure Local" {
		t.Fatalf("unexpected unmatched rows: %+v", unmatched)
	}
}

func TestLatestRunEmpty(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	latest, err := st.LatestRun(context.Background())
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if latest != nil {
		t.Fatalf("expected nil run, got %+v", latest)
	}
}

func TestPruneRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	report := &match.Report{Stats: match.Stats{LocalCount: 1, PortalCount: 1}}
	for i := 0; i < 4; i++ {
		if _, err := st.SaveRun(ctx, report, nil); err != nil {
			t.Fatalf("SaveRun %d: %v", i, err)
		}
	}

	removed, err := st.PruneRuns(ctx, 2)
	if err != nil {
		t.Fatalf("PruneRuns: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed %d runs, want 2", removed)
	}

	runs, err := st.Runs(ctx, 0)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs after prune, want 2", len(runs))
	}
}

func TestOpenRefusesSecondInstance(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.MustOpenStore(t, cfg)

	if _, err := store.Open(cfg); err == nil {
		t.Fatal("expected second Open to fail while lock is held")
	}
}
