package testsupport

import (
	"path/filepath"
	"testing"

	"lineup/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ReportDir = filepath.Join(base, "reports")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithPlaylistTemplate sets the playlist URL template on the test config.
func WithPlaylistTemplate(template string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Playlist.URLTemplate = template
	}
}

// WithCatalogPaths points the test config at catalog dump files.
func WithCatalogPaths(localPath, portalPath string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Catalogs.LocalPath = localPath
		cfg.Catalogs.PortalPath = portalPath
	}
}
