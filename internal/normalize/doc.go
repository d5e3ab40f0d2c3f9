// Package normalize parses raw channel display names into structured records.
//
// A display name like "CNN HD RU" carries decoration: resolution markers,
// country and language codes, and variant tags such as "+1" or "Kids". The
// parser consumes those tokens against closed vocabulary tables and keeps the
// remainder, in original order and casing, as the base name. A folded copy of
// the base name serves as the grouping key for hierarchy building and
// cross-catalog matching.
//
// Normalize never fails. Names it does not understand pass through with a
// cleaned base name and no attributes, and normalizing a base name a second
// time changes nothing.
package normalize
