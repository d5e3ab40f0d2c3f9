package match

import (
	"sort"

	"lineup/internal/catalog"
	"lineup/internal/textutil"
)

// maxWidenedCandidates caps how many near-miss candidates one leading-token
// bucket may contribute per local record. The widened set is a recall
// heuristic, not a completeness guarantee; an unbounded bucket for a common
// token like "sky" would reintroduce the quadratic cost blocking exists to
// avoid.
const maxWidenedCandidates = 32

// portalIndex is the blocking index over the portal catalog. Exact lookups go
// through the folded base-name key; near-miss spellings are caught by a
// bounded secondary index on the key's leading token. Built once per run,
// then read-only and safe for concurrent lookups.
type portalIndex struct {
	channels []portalEntry
	exact    map[string][]int
	leading  map[string][]int
}

type portalEntry struct {
	channel     catalog.Channel
	fingerprint *textutil.Fingerprint
}

func buildIndex(portal []catalog.Channel) *portalIndex {
	idx := &portalIndex{
		channels: make([]portalEntry, len(portal)),
		exact:    make(map[string][]int),
		leading:  make(map[string][]int),
	}
	// Index positions sorted by portal id so candidate sets and bucket
	// truncation are deterministic regardless of input order.
	order := make([]int, len(portal))
	for i := range portal {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return portal[order[a]].ID < portal[order[b]].ID
	})

	for i, channel := range portal {
		idx.channels[i] = portalEntry{
			channel:     channel,
			fingerprint: textutil.NewFingerprint(channel.Norm.Key),
		}
	}
	for _, pos := range order {
		key := portal[pos].Norm.Key
		if key == "" {
			continue
		}
		idx.exact[key] = append(idx.exact[key], pos)
		if token := textutil.LeadingToken(key); token != "" {
			if bucket := idx.leading[token]; len(bucket) < maxWidenedCandidates {
				idx.leading[token] = append(bucket, pos)
			}
		}
	}
	return idx
}

// candidates returns the portal positions to score for a local key: all exact
// key matches plus the bounded leading-token bucket, deduplicated, in
// ascending portal-id order.
func (idx *portalIndex) candidates(key string) []int {
	if key == "" {
		return nil
	}
	exact := idx.exact[key]
	widened := idx.leading[textutil.LeadingToken(key)]
	if len(widened) == 0 {
		return exact
	}

	merged := make([]int, 0, len(exact)+len(widened))
	seen := make(map[int]struct{}, len(exact)+len(widened))
	for _, list := range [][]int{exact, widened} {
		for _, pos := range list {
			if _, dup := seen[pos]; dup {
				continue
			}
			seen[pos] = struct{}{}
			merged = append(merged, pos)
		}
	}
	sort.Slice(merged, func(a, b int) bool {
		return idx.channels[merged[a]].channel.ID < idx.channels[merged[b]].channel.ID
	})
	return merged
}
