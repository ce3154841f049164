package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/recollect-cli/recollect/internal/srs"
)

func TestDefault(t *testing.T) {
	s := Default()
	if s.FrequencyCoefficient != 1.0 {
		t.Errorf("FrequencyCoefficient = %v, want 1.0", s.FrequencyCoefficient)
	}
	if s.MemoryStandardDays != 30 {
		t.Errorf("MemoryStandardDays = %d, want 30", s.MemoryStandardDays)
	}
	if s.MemoryStandardRating != 4 {
		t.Errorf("MemoryStandardRating = %d, want 4", s.MemoryStandardRating)
	}
	if s.LongTermReviewIntervalDays != 60 {
		t.Errorf("LongTermReviewIntervalDays = %d, want 60", s.LongTermReviewIntervalDays)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatal(err)
	}
	if s != Default() {
		t.Errorf("got %+v, want defaults", s)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	want := Settings{
		FrequencyCoefficient:       0.8,
		MemoryStandardDays:         21,
		MemoryStandardRating:       5,
		LongTermReviewIntervalDays: 90,
	}
	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RECOLLECT_MEMORY_STANDARD_DAYS", "45")
	t.Setenv("RECOLLECT_LONG_TERM_INTERVAL_DAYS", "120")
	s, err := Load(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatal(err)
	}
	if s.MemoryStandardDays != 45 {
		t.Errorf("MemoryStandardDays = %d, want 45", s.MemoryStandardDays)
	}
	if s.LongTermReviewIntervalDays != 120 {
		t.Errorf("LongTermReviewIntervalDays = %d, want 120", s.LongTermReviewIntervalDays)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"coefficient too low", func(s *Settings) { s.FrequencyCoefficient = 0.4 }},
		{"coefficient too high", func(s *Settings) { s.FrequencyCoefficient = 1.6 }},
		{"zero standard days", func(s *Settings) { s.MemoryStandardDays = 0 }},
		{"rating out of range", func(s *Settings) { s.MemoryStandardRating = 6 }},
		{"zero long-term interval", func(s *Settings) { s.LongTermReviewIntervalDays = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			if err := s.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidate_CoefficientSentinel(t *testing.T) {
	s := Default()
	s.FrequencyCoefficient = 2.0
	if err := s.Validate(); !errors.Is(err, srs.ErrInvalidFrequencyCoefficient) {
		t.Errorf("expected ErrInvalidFrequencyCoefficient, got %v", err)
	}
}

func TestMasteryConfig(t *testing.T) {
	s := Settings{MemoryStandardDays: 10, MemoryStandardRating: 3, LongTermReviewIntervalDays: 45}
	cfg := s.MasteryConfig()
	if cfg.StandardDays != 10 || cfg.StandardRating != 3 || cfg.LongTermIntervalDays != 45 {
		t.Errorf("unexpected mastery config: %+v", cfg)
	}
}
