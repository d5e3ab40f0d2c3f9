package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. Matcher weights go through
// the matcher's own validation so the CLI and library agree on what is legal.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateCatalogs(); err != nil {
		return err
	}
	if err := c.MatcherConfig().Validate(); err != nil {
		return fmt.Errorf("matcher: %w", err)
	}
	return c.validatePlaylist()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.ReportDir) == "" {
		return errors.New("paths.report_dir must be set")
	}
	return nil
}

func (c *Config) validateCatalogs() error {
	if c.Catalogs.LocalLimit < 0 {
		return errors.New("catalogs.local_limit must be >= 0")
	}
	if c.Catalogs.PortalLimit < 0 {
		return errors.New("catalogs.portal_limit must be >= 0")
	}
	return nil
}

func (c *Config) validatePlaylist() error {
	if c.Playlist.URLTemplate != "" && !strings.Contains(c.Playlist.URLTemplate, "{id}") {
		return errors.New("playlist.url_template must contain the {id} placeholder")
	}
	return nil
}
