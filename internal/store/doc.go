// Package store persists lineup state in SQLite: imported catalogs with
// their normalized forms, hierarchy placement, and the history of match
// runs. One process owns the database at a time, enforced with a file lock
// beside the database file.
package store
