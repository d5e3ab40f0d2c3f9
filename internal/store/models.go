package store

import (
	"time"

	"lineup/internal/catalog"
	"lineup/internal/hierarchy"
)

// StoredChannel is a catalog channel as persisted, including any hierarchy
// placement written by a later hierarchy build.
type StoredChannel struct {
	Catalog    catalog.Name
	Channel    catalog.Channel
	Node       *hierarchy.Node
	ImportedAt time.Time
}

// RunSummary is the persisted header of one match run.
type RunSummary struct {
	ID            string
	CreatedAt     time.Time
	LocalCount    int
	PortalCount   int
	ExactCount    int
	FuzzyCount    int
	AvgConfidence float64
	MatchRate     float64
	HighCount     int
	MediumCount   int
	LowCount      int
}

// UnmatchedChannel is a local channel that found no portal counterpart in a
// run.
type UnmatchedChannel struct {
	LocalID   int64
	LocalName string
}
