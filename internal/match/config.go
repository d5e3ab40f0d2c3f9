package match

import (
	"errors"
	"fmt"
)

// Config carries the scoring weights and thresholds for one matching run.
// It is always passed explicitly; there is no process-wide default state, so
// two runs with different weights stay independently reproducible.
type Config struct {
	// NameWeight scales the name similarity term. Must be in (0, 1].
	NameWeight float64
	// CountryBonus is added when both records carry the same country code.
	CountryBonus float64
	// CountryPenalty is subtracted when both records carry country codes
	// that differ. Records without a code contribute nothing.
	CountryPenalty float64
	// ResolutionBonus is added when both records carry the same resolution.
	// Resolution mismatch is never penalized.
	ResolutionBonus float64
	// MinConfidenceReport is the floor for a candidate to appear in the
	// report at all.
	MinConfidenceReport float64
	// MinConfidenceAuto is the floor for an auto-confirmed match; winners
	// between the two thresholds are flagged for manual review.
	MinConfidenceAuto float64
	// Workers bounds scoring parallelism. Zero means one worker per CPU.
	Workers int
}

// DefaultConfig returns the production scoring configuration.
func DefaultConfig() Config {
	return Config{
		NameWeight:          0.75,
		CountryBonus:        0.15,
		CountryPenalty:      0.10,
		ResolutionBonus:     0.10,
		MinConfidenceReport: 0.50,
		MinConfidenceAuto:   0.60,
	}
}

// Validate checks weight ranges and threshold ordering. The matcher refuses
// to process records with an invalid configuration.
func (c Config) Validate() error {
	if c.NameWeight <= 0 || c.NameWeight > 1 {
		return fmt.Errorf("name_weight must be in (0, 1], got %v", c.NameWeight)
	}
	if c.CountryBonus < 0 {
		return fmt.Errorf("country_bonus must be >= 0, got %v", c.CountryBonus)
	}
	if c.CountryPenalty < 0 {
		return fmt.Errorf("country_penalty must be >= 0, got %v", c.CountryPenalty)
	}
	if c.ResolutionBonus < 0 {
		return fmt.Errorf("resolution_bonus must be >= 0, got %v", c.ResolutionBonus)
	}
	if c.MinConfidenceReport < 0 || c.MinConfidenceReport > 1 {
		return fmt.Errorf("min_confidence_report must be in [0, 1], got %v", c.MinConfidenceReport)
	}
	if c.MinConfidenceAuto < 0 || c.MinConfidenceAuto > 1 {
		return fmt.Errorf("min_confidence_auto must be in [0, 1], got %v", c.MinConfidenceAuto)
	}
	if c.MinConfidenceAuto < c.MinConfidenceReport {
		return errors.New("min_confidence_auto must be >= min_confidence_report")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %v", c.Workers)
	}
	return nil
}

// Ceiling returns the theoretical maximum confidence under this
// configuration. Confidence is never re-clamped to [0, 1]; callers needing a
// bounded range account for this ceiling and the Floor.
func (c Config) Ceiling() float64 {
	return c.NameWeight + c.CountryBonus + c.ResolutionBonus
}

// Floor returns the theoretical minimum confidence under this configuration.
func (c Config) Floor() float64 {
	return -c.CountryPenalty
}
