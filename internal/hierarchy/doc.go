// Package hierarchy assigns root/variant families inside one catalog.
//
// Channels sharing a folded base name form a family: "BBC One", "BBC One HD",
// and "BBC One +1" group together, the undecorated entry becomes the root,
// and the rest become its variants. Grouping is exact key equality only;
// fuzzy comparison is the cross-catalog matcher's job. The pass runs once per
// catalog, never crosses catalogs, and has no effect on match scoring.
package hierarchy
