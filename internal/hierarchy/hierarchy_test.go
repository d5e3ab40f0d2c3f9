package hierarchy

import (
	"testing"

	"lineup/internal/catalog"
)

func channels(t *testing.T, entries ...catalog.Record) []catalog.Channel {
	t.Helper()
	return catalog.Normalize(entries)
}

func TestBuildGroupsByBaseName(t *testing.T) {
	nodes, err := Build(channels(t,
		catalog.Record{ID: 1, Name: "BBC One", StreamCount: 5},
		catalog.Record{ID: 2, Name: "BBC One HD", StreamCount: 9},
		catalog.Record{ID: 3, Name: "BBC One +1", StreamCount: 2},
		catalog.Record{ID: 4, Name: "CNN", StreamCount: 1},
	))
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	root := nodes[1]
	if !root.IsRoot || root.RootID != 1 || root.ParentID != nil {
		t.Fatalf("unexpected root node: %+v", root)
	}
	for _, id := range []int64{2, 3} {
		node := nodes[id]
		if !node.IsVariant || node.RootID != 1 {
			t.Fatalf("channel %d: expected variant of 1, got %+v", id, node)
		}
		if node.ParentID == nil || *node.ParentID != 1 {
			t.Fatalf("channel %d: parent must be root 1, got %+v", id, node.ParentID)
		}
	}
	if !nodes[4].IsRoot {
		t.Fatalf("singleton group must be its own root: %+v", nodes[4])
	}
}

func TestBuildPrefersBareCandidate(t *testing.T) {
	// Both lack resolution/variant, but the RU-tagged entry has attributes;
	// the bare entry wins even with a lower stream count.
	nodes, err := Build(channels(t,
		catalog.Record{ID: 1, Name: "CNN RU", StreamCount: 50},
		catalog.Record{ID: 2, Name: "CNN", StreamCount: 1},
	))
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if !nodes[2].IsRoot {
		t.Fatalf("expected bare channel 2 as root, got %+v", nodes)
	}
}

func TestBuildTieBreaksOnStreamCountThenID(t *testing.T) {
	nodes, err := Build(channels(t,
		catalog.Record{ID: 3, Name: "Eurosport", StreamCount: 2},
		catalog.Record{ID: 1, Name: "Eurosport", StreamCount: 8},
		catalog.Record{ID: 2, Name: "Eurosport", StreamCount: 8},
	))
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if !nodes[1].IsRoot {
		t.Fatalf("expected channel 1 (highest streams, lowest id) as root, got %+v", nodes)
	}
}

func TestBuildAllDecoratedGroupStillElectsRoot(t *testing.T) {
	nodes, err := Build(channels(t,
		catalog.Record{ID: 1, Name: "Sky HD", StreamCount: 1},
		catalog.Record{ID: 2, Name: "Sky 4K", StreamCount: 3},
	))
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if !nodes[2].IsRoot || !nodes[1].IsVariant {
		t.Fatalf("expected highest-stream decorated channel as root: %+v", nodes)
	}
}

func TestBuildPartitionInvariant(t *testing.T) {
	input := channels(t,
		catalog.Record{ID: 1, Name: "BBC One"},
		catalog.Record{ID: 2, Name: "BBC One HD"},
		catalog.Record{ID: 3, Name: "BBC Two"},
		catalog.Record{ID: 4, Name: "CNN HD"},
		catalog.Record{ID: 5, Name: "CNN"},
		catalog.Record{ID: 6, Name: "CNN +1"},
	)
	nodes, err := Build(input)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(nodes) != len(input) {
		t.Fatalf("got %d nodes, want %d", len(nodes), len(input))
	}
	roots, variants := 0, 0
	for _, node := range nodes {
		if node.IsRoot == node.IsVariant {
			t.Fatalf("node %d: exactly one of IsRoot/IsVariant must be set: %+v", node.ID, node)
		}
		if node.IsRoot {
			roots++
			if node.RootID != node.ID {
				t.Fatalf("root %d: RootID must be own id", node.ID)
			}
			continue
		}
		variants++
		if node.ParentID == nil {
			t.Fatalf("variant %d has no parent", node.ID)
		}
		parent, ok := nodes[*node.ParentID]
		if !ok || !parent.IsRoot {
			t.Fatalf("variant %d: parent %d is not a root", node.ID, *node.ParentID)
		}
	}
	if roots+variants != len(input) {
		t.Fatalf("roots+variants = %d, want %d", roots+variants, len(input))
	}
}

func TestBuildEmptyKeyFails(t *testing.T) {
	_, err := Build([]catalog.Channel{{Record: catalog.Record{ID: 7}}})
	if err == nil {
		t.Fatal("expected data integrity error for empty grouping key")
	}
}
