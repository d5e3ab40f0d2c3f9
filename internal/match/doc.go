// Package match reconciles the local and portal catalogs into a scored
// match report.
//
// An exhaustive cross-product over tens of thousands of local channels and
// thousands of portal channels is off the table, so the matcher blocks: a
// lookup index over the portal catalog bounds the candidate set per local
// channel to exact base-name hits plus a capped leading-token bucket. Each
// candidate pair is scored as a weighted sum of name similarity and
// country/resolution agreement, and the best candidate above the report
// threshold wins.
//
// The whole pass is a pure batch computation: no I/O, explicit configuration,
// and byte-for-byte reproducible output for identical inputs.
package match
