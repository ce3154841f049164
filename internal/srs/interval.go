// Package srs implements the interval arithmetic behind review scheduling:
// a fixed base-interval ladder scaled by a per-rating multiplier and a
// per-item frequency coefficient. Everything here is pure, with no clock,
// state, or I/O, so the functions are safe to call concurrently.
package srs

import (
	"math"
	"time"
)

// BaseIntervals is the expanding review ladder in days, indexed by
// reviewCount-1. Reviews past the last rung reuse its value: the 30-day cap
// models the long-term memory plateau for items still in active learning.
var BaseIntervals = []int{1, 2, 4, 7, 15, 30}

// Rating bounds. A rating is the learner's 1-5 recall confidence score.
const (
	MinRating = 1
	MaxRating = 5
)

// FrequencyCoefficient bounds. The coefficient scales every computed
// interval; 1.0 is neutral.
const (
	MinFrequencyCoefficient = 0.5
	MaxFrequencyCoefficient = 1.5
)

// ratingMultipliers scales the base interval by recall confidence.
var ratingMultipliers = map[int]float64{
	1: 0.5,
	2: 0.7,
	3: 1.0,
	4: 1.2,
	5: 1.5,
}

// ValidateRating reports whether rating is a legal 1-5 score.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	return nil
}

// RatingMultiplier returns the interval multiplier for a rating.
func RatingMultiplier(rating int) (float64, error) {
	m, ok := ratingMultipliers[rating]
	if !ok {
		return 0, ErrInvalidRating
	}
	return m, nil
}

// BaseIntervalDays returns the ladder value for the given review count.
// The caller must pass reviewCount >= 1; counts beyond the ladder clamp to
// the final rung.
func BaseIntervalDays(reviewCount int) int {
	idx := reviewCount - 1
	if idx >= len(BaseIntervals) {
		idx = len(BaseIntervals) - 1
	}
	return BaseIntervals[idx]
}

// IntervalDays computes ceil(base * multiplier * coefficient). Rounding is
// always upward so an item is never scheduled earlier than the formula asks.
func IntervalDays(reviewCount, rating int, coefficient float64) (int, error) {
	if reviewCount < 1 {
		return 0, ErrInvalidReviewCount
	}
	if coefficient < MinFrequencyCoefficient || coefficient > MaxFrequencyCoefficient {
		return 0, ErrInvalidFrequencyCoefficient
	}
	mult, err := RatingMultiplier(rating)
	if err != nil {
		return 0, err
	}
	days := float64(BaseIntervalDays(reviewCount)) * mult * coefficient
	return int(math.Ceil(days)), nil
}

// NextReviewDate returns lastDate plus the computed interval in calendar
// days. time.AddDate applies real month/year rollover and leap-year rules
// rather than fixed 24h multiples. The input is never mutated.
func NextReviewDate(lastDate time.Time, reviewCount, rating int, coefficient float64) (time.Time, error) {
	days, err := IntervalDays(reviewCount, rating, coefficient)
	if err != nil {
		return time.Time{}, err
	}
	return lastDate.AddDate(0, 0, days), nil
}
