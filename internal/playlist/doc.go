// Package playlist renders match results as extended M3U playlists for IPTV
// players. Stream URLs come from a configured template with the portal
// channel id substituted in.
package playlist
