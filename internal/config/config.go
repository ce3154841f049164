// Package config loads and persists user settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/recollect-cli/recollect/internal/mastery"
	"github.com/recollect-cli/recollect/internal/srs"
)

// Settings holds the tunable scheduling parameters. Values come from the
// settings file, overridden by RECOLLECT_* environment variables.
type Settings struct {
	// FrequencyCoefficient is the default coefficient for new items.
	FrequencyCoefficient float64 `json:"frequency_coefficient"`

	// MemoryStandardDays is the minimum study span before promotion.
	MemoryStandardDays int `json:"memory_standard_days"`

	// MemoryStandardRating is the minimum recent rating for promotion.
	MemoryStandardRating int `json:"memory_standard_rating"`

	// LongTermReviewIntervalDays is the spot-check interval for
	// mastered items.
	LongTermReviewIntervalDays int `json:"long_term_review_interval_days"`
}

// Default returns the stock settings.
func Default() Settings {
	m := mastery.DefaultConfig()
	return Settings{
		FrequencyCoefficient:       1.0,
		MemoryStandardDays:         m.StandardDays,
		MemoryStandardRating:       m.StandardRating,
		LongTermReviewIntervalDays: m.LongTermIntervalDays,
	}
}

// Validate rejects out-of-range values before they reach the scheduler.
func (s Settings) Validate() error {
	if s.FrequencyCoefficient < srs.MinFrequencyCoefficient || s.FrequencyCoefficient > srs.MaxFrequencyCoefficient {
		return srs.ErrInvalidFrequencyCoefficient
	}
	if s.MemoryStandardDays < 1 {
		return fmt.Errorf("memory_standard_days must be positive, got %d", s.MemoryStandardDays)
	}
	if s.MemoryStandardRating < srs.MinRating || s.MemoryStandardRating > srs.MaxRating {
		return fmt.Errorf("memory_standard_rating must be between %d and %d, got %d",
			srs.MinRating, srs.MaxRating, s.MemoryStandardRating)
	}
	if s.LongTermReviewIntervalDays < 1 {
		return fmt.Errorf("long_term_review_interval_days must be positive, got %d", s.LongTermReviewIntervalDays)
	}
	return nil
}

// MasteryConfig converts the settings into the scheduler's thresholds.
func (s Settings) MasteryConfig() mastery.Config {
	return mastery.Config{
		StandardDays:         s.MemoryStandardDays,
		StandardRating:       s.MemoryStandardRating,
		LongTermIntervalDays: s.LongTermReviewIntervalDays,
	}
}

// Load reads settings from path, falling back to defaults when the file
// does not exist, then applies environment overrides.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// First run; defaults apply.
	case err != nil:
		return Settings{}, fmt.Errorf("read settings: %w", err)
	default:
		if err := json.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
		}
	}

	applyEnv(&s)

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Save writes the settings file, creating the parent directory if needed.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func applyEnv(s *Settings) {
	if v := os.Getenv("RECOLLECT_FREQUENCY_COEFFICIENT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			s.FrequencyCoefficient = f
		}
	}
	if v := os.Getenv("RECOLLECT_MEMORY_STANDARD_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.MemoryStandardDays = n
		}
	}
	if v := os.Getenv("RECOLLECT_MEMORY_STANDARD_RATING"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.MemoryStandardRating = n
		}
	}
	if v := os.Getenv("RECOLLECT_LONG_TERM_INTERVAL_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.LongTermReviewIntervalDays = n
		}
	}
}

// DefaultPath resolves the settings file location:
// 1. RECOLLECT_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/recollect/settings.json
// 3. ~/.config/recollect/settings.json
func DefaultPath() (string, error) {
	if p := os.Getenv("RECOLLECT_CONFIG"); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "recollect", "settings.json"), nil
}
