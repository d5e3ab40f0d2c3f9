package catalog

import (
	"lineup/internal/normalize"
)

// Name identifies which side of the reconciliation a record belongs to.
type Name string

// The two reconciled catalogs: the aggregated local listing and the portal
// listing it is matched against.
const (
	Local  Name = "local"
	Portal Name = "portal"
)

// Valid reports whether the catalog name is one of the known catalogs.
func (n Name) Valid() bool {
	return n == Local || n == Portal
}

// Record is a raw catalog entry as supplied by a loader. Immutable once
// loaded; normalization derives a Channel from it each run.
type Record struct {
	ID          int64
	Name        string
	StreamCount int
}

// Channel pairs a raw record with its normalized form. This is the unit the
// hierarchy builder and the matcher operate on.
type Channel struct {
	Record
	Norm normalize.Normalized
}

// Normalize derives channels from raw records. Input order is preserved;
// normalization is stateless and per record.
func Normalize(records []Record) []Channel {
	channels := make([]Channel, len(records))
	for i, record := range records {
		channels[i] = Channel{
			Record: record,
			Norm:   normalize.Normalize(record.Name),
		}
	}
	return channels
}
