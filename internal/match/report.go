package match

// Type describes how a match was found.
type Type string

// Match types: exact means the folded base names were equal, fuzzy means the
// winner was selected by similarity scoring.
const (
	TypeExact Type = "exact"
	TypeFuzzy Type = "fuzzy"
)

// Candidate is one scored local/portal pairing. Only winners reaching the
// report threshold survive into the report.
type Candidate struct {
	LocalID        int64
	PortalID       int64
	LocalName      string
	PortalName     string
	NameSimilarity float64
	Confidence     float64
	Type           Type
	// NeedsReview marks winners in the band between the report and auto
	// thresholds; they appear in the report but are not auto-confirmed.
	NeedsReview bool
}

// Histogram buckets matches by confidence. Low starts at the report
// threshold, so the manual-review band lands in the low bucket.
type Histogram struct {
	High   int // confidence >= 0.9
	Medium int // confidence in [0.7, 0.9)
	Low    int // confidence in [report threshold, 0.7)
}

// Histogram bucket edges.
const (
	histogramHighEdge   = 0.9
	histogramMediumEdge = 0.7
)

// Stats aggregates one matching run.
type Stats struct {
	LocalCount    int
	PortalCount   int
	ExactCount    int
	FuzzyCount    int
	AvgConfidence float64
	Histogram     Histogram
	MatchRate     float64
}

// Report is the immutable outcome of one matching run. Matches and Unmatched
// follow local-catalog input order; every local id appears in exactly one of
// the two lists. A new run's report supersedes the previous one entirely.
type Report struct {
	Matches   []Candidate
	Unmatched []int64
	Stats     Stats
}

func buildReport(winners []*Candidate, localIDs []int64, portalCount int) *Report {
	report := &Report{
		Matches:   make([]Candidate, 0, len(winners)),
		Unmatched: make([]int64, 0),
	}
	var total float64
	for i, winner := range winners {
		if winner == nil {
			report.Unmatched = append(report.Unmatched, localIDs[i])
			continue
		}
		report.Matches = append(report.Matches, *winner)
		total += winner.Confidence
		if winner.Type == TypeExact {
			report.Stats.ExactCount++
		} else {
			report.Stats.FuzzyCount++
		}
		switch {
		case winner.Confidence >= histogramHighEdge:
			report.Stats.Histogram.High++
		case winner.Confidence >= histogramMediumEdge:
			report.Stats.Histogram.Medium++
		default:
			report.Stats.Histogram.Low++
		}
	}
	report.Stats.LocalCount = len(localIDs)
	report.Stats.PortalCount = portalCount
	if len(report.Matches) > 0 {
		report.Stats.AvgConfidence = total / float64(len(report.Matches))
	}
	if len(localIDs) > 0 {
		report.Stats.MatchRate = float64(len(report.Matches)) / float64(len(localIDs))
	}
	return report
}
