// Package mastery implements the promotion and rebound rules that move an
// item between active learning and long-term checking mode.
package mastery

import (
	"time"

	"github.com/recollect-cli/recollect/internal/knowledge"
)

const (
	// minReviews is the total review count required before promotion.
	minReviews = 5

	// recentWindow is how many of the newest ratings must clear the
	// standard-rating bar for promotion.
	recentWindow = 3

	// reboundThreshold demotes a mastered item when a new rating falls
	// below it. The rebounding rating itself is scheduled on the
	// standard ladder, not the long-term interval.
	reboundThreshold = 3
)

// Config holds the tunable mastery thresholds.
type Config struct {
	// StandardDays is the minimum elapsed time, in days, an item must
	// have been studied before it can be promoted.
	StandardDays int

	// StandardRating is the minimum rating each of the newest reviews
	// must reach for promotion.
	StandardRating int

	// LongTermIntervalDays is the fixed spot-check interval for
	// mastered items.
	LongTermIntervalDays int
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		StandardDays:         30,
		StandardRating:       4,
		LongTermIntervalDays: 60,
	}
}

// ShouldRebound reports whether a new rating demotes a mastered item back
// to learning. Evaluated before interval computation on every rating.
func ShouldRebound(status knowledge.MasteryStatus, rating int) bool {
	return status == knowledge.StatusMastered && rating < reboundThreshold
}

// LongTermNextReview returns the spot-check date for a mastered item:
// the review time plus the long-term interval in calendar days.
func LongTermNextReview(reviewedAt time.Time, cfg Config) time.Time {
	return reviewedAt.AddDate(0, 0, cfg.LongTermIntervalDays)
}

// IsMastered reports whether a review history qualifies for mastery.
// history must be ordered newest-first and should be the item's full
// history: the 30-day span is measured from the oldest record in the slice,
// so a truncated history can only under-report age.
func IsMastered(history []knowledge.ReviewRecord, now time.Time, cfg Config) bool {
	if len(history) < minReviews {
		return false
	}
	for _, rec := range history[:recentWindow] {
		if rec.Rating < cfg.StandardRating {
			return false
		}
	}
	earliest := history[len(history)-1].ReviewedAt
	return !now.Before(earliest.AddDate(0, 0, cfg.StandardDays))
}

// Promotable is the scheduler-side promotion check, run after a rating has
// been recorded. It uses the item's persisted review count and creation time
// plus only the newest records, so it does not need the full history.
// recent must be ordered newest-first and include the record just written.
func Promotable(item *knowledge.Item, recent []knowledge.ReviewRecord, now time.Time, cfg Config) bool {
	if item.Status != knowledge.StatusLearning {
		return false
	}
	if item.ReviewCount < minReviews {
		return false
	}
	if len(recent) < recentWindow {
		return false
	}
	for _, rec := range recent[:recentWindow] {
		if rec.Rating < cfg.StandardRating {
			return false
		}
	}
	return !now.Before(item.CreatedAt.AddDate(0, 0, cfg.StandardDays))
}
