package match

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"lineup/internal/catalog"
	"lineup/internal/textutil"
)

// Match scores every local channel against its blocked portal candidate set
// and assembles the run report. The portal index is built once up front;
// scoring then fans out across worker goroutines over disjoint local shards.
// Results land in a slice indexed by local position, so identical inputs and
// configuration always produce an identical report regardless of scheduling.
//
// Selection is one-directional: each local channel claims its best portal
// candidate, and a popular portal channel may be claimed by many locals.
func Match(ctx context.Context, local, portal []catalog.Channel, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("matcher configuration: %w", err)
	}

	idx := buildIndex(portal)

	winners := make([]*Candidate, len(local))
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(local) {
		workers = len(local)
	}

	if workers > 1 {
		var wg sync.WaitGroup
		chunk := (len(local) + workers - 1) / workers
		for start := 0; start < len(local); start += chunk {
			end := min(start+chunk, len(local))
			wg.Add(1)
			go func(start, end int) {
				defer wg.Done()
				scoreShard(ctx, idx, local[start:end], cfg, winners[start:end])
			}(start, end)
		}
		wg.Wait()
	} else {
		scoreShard(ctx, idx, local, cfg, winners)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	localIDs := make([]int64, len(local))
	for i, channel := range local {
		localIDs[i] = channel.ID
	}
	return buildReport(winners, localIDs, len(portal)), nil
}

func scoreShard(ctx context.Context, idx *portalIndex, shard []catalog.Channel, cfg Config, out []*Candidate) {
	for i, channel := range shard {
		if ctx.Err() != nil {
			return
		}
		out[i] = scoreLocal(idx, channel, cfg)
	}
}

// scoreLocal picks the best portal candidate for one local channel, or nil
// when nothing reaches the report threshold. Candidates arrive in ascending
// portal-id order and ties keep the first seen, so the lowest portal id wins.
func scoreLocal(idx *portalIndex, local catalog.Channel, cfg Config) *Candidate {
	key := local.Norm.Key
	positions := idx.candidates(key)
	if len(positions) == 0 {
		return nil
	}

	fingerprint := textutil.NewFingerprint(key)
	var best *Candidate
	for _, pos := range positions {
		entry := idx.channels[pos]

		similarity := 1.0
		matchType := TypeExact
		if entry.channel.Norm.Key != key {
			matchType = TypeFuzzy
			similarity = textutil.FuzzySimilarity(fingerprint, entry.fingerprint)
			if similarity == 0 {
				continue
			}
		}

		confidence := similarity*cfg.NameWeight +
			countryTerm(local, entry.channel, cfg) +
			resolutionTerm(local, entry.channel, cfg)

		if best == nil || confidence > best.Confidence {
			best = &Candidate{
				LocalID:        local.ID,
				PortalID:       entry.channel.ID,
				LocalName:      local.Name,
				PortalName:     entry.channel.Name,
				NameSimilarity: similarity,
				Confidence:     confidence,
				Type:           matchType,
			}
		}
	}

	if best == nil || best.Confidence < cfg.MinConfidenceReport {
		return nil
	}
	best.NeedsReview = best.Confidence < cfg.MinConfidenceAuto
	return best
}

// countryTerm is the country agreement contribution: a bonus when both sides
// carry the same code, a penalty when both carry different codes, zero when
// either side has none.
func countryTerm(local, portal catalog.Channel, cfg Config) float64 {
	if local.Norm.Country == "" || portal.Norm.Country == "" {
		return 0
	}
	if local.Norm.Country == portal.Norm.Country {
		return cfg.CountryBonus
	}
	return -cfg.CountryPenalty
}

// resolutionTerm rewards resolution agreement and never penalizes a mismatch.
func resolutionTerm(local, portal catalog.Channel, cfg Config) float64 {
	if local.Norm.Resolution == "" || portal.Norm.Resolution == "" {
		return 0
	}
	if local.Norm.Resolution == portal.Norm.Resolution {
		return cfg.ResolutionBonus
	}
	return 0
}
