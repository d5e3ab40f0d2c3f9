package config

import "lineup/internal/match"

const (
	defaultDataDir   = "~/.local/share/lineup"
	defaultLogDir    = "~/.local/share/lineup/logs"
	defaultReportDir = "~/.local/share/lineup/reports"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
	defaultGroup     = "Matched"
)

// Default returns a Config populated with repository defaults. Matcher
// weights mirror the matcher package's production defaults.
func Default() Config {
	scoring := match.DefaultConfig()
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			ReportDir: defaultReportDir,
		},
		Matcher: Matcher{
			NameWeight:          scoring.NameWeight,
			CountryBonus:        scoring.CountryBonus,
			CountryPenalty:      scoring.CountryPenalty,
			ResolutionBonus:     scoring.ResolutionBonus,
			MinConfidenceReport: scoring.MinConfidenceReport,
			MinConfidenceAuto:   scoring.MinConfidenceAuto,
		},
		Playlist: Playlist{
			GroupTitle: defaultGroup,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
