// Command lineup reconciles channel catalogs: it imports local and portal
// catalog dumps, normalizes channel names, builds per-catalog hierarchies,
// matches the catalogs against each other, and renders reports and M3U
// playlists from the results.
package main
