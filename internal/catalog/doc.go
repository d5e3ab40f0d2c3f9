// Package catalog defines the raw record model shared by the two reconciled
// channel listings and the file loaders that supply them.
//
// Loaders are deliberately dumb: they read id/name/stream_count tuples from
// CSV or JSON dumps and leave all interpretation to the normalizer. Remote
// fetching belongs to external tooling that produces those dumps.
package catalog
