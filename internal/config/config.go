package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"lineup/internal/match"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// DataDir holds the lineup database and its lock file.
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
	// ReportDir receives generated playlists and report exports.
	ReportDir string `toml:"report_dir"`
}

// Catalogs points at the local and portal catalog dumps and their optional
// size limits for reduced-catalog runs.
type Catalogs struct {
	LocalPath   string `toml:"local_path"`
	PortalPath  string `toml:"portal_path"`
	LocalLimit  int    `toml:"local_limit"`
	PortalLimit int    `toml:"portal_limit"`
}

// Matcher contains scoring weights and thresholds for cross-catalog matching.
type Matcher struct {
	NameWeight          float64 `toml:"name_weight"`
	CountryBonus        float64 `toml:"country_bonus"`
	CountryPenalty      float64 `toml:"country_penalty"`
	ResolutionBonus     float64 `toml:"resolution_bonus"`
	MinConfidenceReport float64 `toml:"min_confidence_report"`
	MinConfidenceAuto   float64 `toml:"min_confidence_auto"`
	Workers             int     `toml:"workers"`
}

// Playlist contains configuration for M3U playlist generation.
type Playlist struct {
	// URLTemplate builds a stream URL per matched channel; "{id}" is
	// replaced with the portal channel id.
	URLTemplate string `toml:"url_template"`
	GroupTitle  string `toml:"group_title"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for lineup.
//
// Sections by subsystem:
//   - Paths: database, log, and report directories
//   - Catalogs: catalog dump locations and size limits
//   - Matcher: scoring weights and confidence thresholds
//   - Playlist: M3U generation settings
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Catalogs Catalogs `toml:"catalogs"`
	Matcher  Matcher  `toml:"matcher"`
	Playlist Playlist `toml:"playlist"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/lineup/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. A missing file is not
// an error; defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("lineup.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run needs.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir, c.Paths.ReportDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the location of the lineup SQLite database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "lineup.db")
}

// MatcherConfig converts the [matcher] section into the matcher's explicit
// configuration value.
func (c *Config) MatcherConfig() match.Config {
	return match.Config{
		NameWeight:          c.Matcher.NameWeight,
		CountryBonus:        c.Matcher.CountryBonus,
		CountryPenalty:      c.Matcher.CountryPenalty,
		ResolutionBonus:     c.Matcher.ResolutionBonus,
		MinConfidenceReport: c.Matcher.MinConfidenceReport,
		MinConfidenceAuto:   c.Matcher.MinConfidenceAuto,
		Workers:             c.Matcher.Workers,
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
