package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeCatalogs(); err != nil {
		return err
	}
	c.normalizePlaylist()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.ReportDir, err = expandPath(c.Paths.ReportDir); err != nil {
		return fmt.Errorf("paths.report_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCatalogs() error {
	var err error
	c.Catalogs.LocalPath = strings.TrimSpace(c.Catalogs.LocalPath)
	c.Catalogs.PortalPath = strings.TrimSpace(c.Catalogs.PortalPath)
	if c.Catalogs.LocalPath != "" {
		if c.Catalogs.LocalPath, err = expandPath(c.Catalogs.LocalPath); err != nil {
			return fmt.Errorf("catalogs.local_path: %w", err)
		}
	}
	if c.Catalogs.PortalPath != "" {
		if c.Catalogs.PortalPath, err = expandPath(c.Catalogs.PortalPath); err != nil {
			return fmt.Errorf("catalogs.portal_path: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizePlaylist() {
	c.Playlist.URLTemplate = strings.TrimSpace(c.Playlist.URLTemplate)
	c.Playlist.GroupTitle = strings.TrimSpace(c.Playlist.GroupTitle)
	if c.Playlist.GroupTitle == "" {
		c.Playlist.GroupTitle = defaultGroup
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
