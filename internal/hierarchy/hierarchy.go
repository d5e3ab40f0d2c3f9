package hierarchy

import (
	"fmt"
	"sort"

	"lineup/internal/catalog"
)

// Node records a channel's place in its base-name family. Exactly one of
// IsRoot/IsVariant is set; a variant's ParentID points at the family root in
// the same catalog, and a root's RootID is its own ID.
type Node struct {
	ID        int64
	RootID    int64
	ParentID  *int64
	IsRoot    bool
	IsVariant bool
}

// Build groups one catalog's channels by folded base name and elects a single
// root per group. Root selection order: candidates without resolution or
// variant decoration, then candidates without any extracted attribute, then
// highest stream count, then lowest ID. The result is a single-level
// hierarchy; variants never parent other variants.
//
// A channel whose normalized record carries no grouping key is a data
// integrity defect and aborts the whole build.
func Build(channels []catalog.Channel) (map[int64]Node, error) {
	groups := make(map[string][]catalog.Channel)
	keys := make([]string, 0, len(channels))
	for _, channel := range channels {
		key := channel.Norm.Key
		if key == "" {
			return nil, fmt.Errorf("channel %d %q has no grouping key", channel.ID, channel.Name)
		}
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], channel)
	}
	sort.Strings(keys)

	nodes := make(map[int64]Node, len(channels))
	for _, key := range keys {
		group := groups[key]
		root := electRoot(group)
		nodes[root.ID] = Node{ID: root.ID, RootID: root.ID, IsRoot: true}
		for _, channel := range group {
			if channel.ID == root.ID {
				continue
			}
			parent := root.ID
			nodes[channel.ID] = Node{
				ID:        channel.ID,
				RootID:    root.ID,
				ParentID:  &parent,
				IsVariant: true,
			}
		}
	}
	return nodes, nil
}

func electRoot(group []catalog.Channel) catalog.Channel {
	candidates := make([]catalog.Channel, 0, len(group))
	for _, channel := range group {
		if channel.Norm.Resolution == "" && channel.Norm.Variant == "" {
			candidates = append(candidates, channel)
		}
	}
	if len(candidates) == 0 {
		candidates = group
	}

	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if betterRoot(candidate, best) {
			best = candidate
		}
	}
	return best
}

// betterRoot reports whether a should be preferred over b as the group root.
func betterRoot(a, b catalog.Channel) bool {
	if bare, other := !a.Norm.HasAttributes(), !b.Norm.HasAttributes(); bare != other {
		return bare
	}
	if a.StreamCount != b.StreamCount {
		return a.StreamCount > b.StreamCount
	}
	return a.ID < b.ID
}
