// Package scheduler orchestrates rating submissions: it applies the
// rebound/promotion rules, asks the interval calculator (or the long-term
// override) for the next review date, and writes the outcome through a
// persistence port.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/recollect-cli/recollect/internal/knowledge"
	"github.com/recollect-cli/recollect/internal/mastery"
	"github.com/recollect-cli/recollect/internal/srs"
)

// ErrNotFound is returned when a knowledge id does not exist.
var ErrNotFound = errors.New("scheduler: knowledge item not found")

// recentWindow is how many records the promotion recheck fetches.
const recentWindow = 3

// Repository is the persistence port the scheduler writes through. The
// SQLite store implements it; tests use an in-memory fake. Persistence
// errors are passed through unwrapped semantics-wise: the scheduler never
// retries.
type Repository interface {
	// LoadItem returns the item or an error wrapping ErrNotFound.
	LoadItem(ctx context.Context, id string) (*knowledge.Item, error)

	// SaveReviewRecord appends a record and returns its assigned id.
	SaveReviewRecord(ctx context.Context, rec *knowledge.ReviewRecord) (string, error)

	// UpdateItem applies a partial update to an item.
	UpdateItem(ctx context.Context, id string, upd knowledge.ItemUpdate) error

	// ItemsDueBy returns items with a next review at or before due.
	ItemsDueBy(ctx context.Context, due time.Time) ([]*knowledge.Item, error)

	// RecentRecords returns up to n records for an item, newest first.
	RecentRecords(ctx context.Context, id string, n int) ([]knowledge.ReviewRecord, error)

	// AllItems returns every item.
	AllItems(ctx context.Context) ([]*knowledge.Item, error)

	// InTx runs fn against a transaction-scoped repository. A rating
	// submission is wrapped in one transaction so a crash cannot leave a
	// record without the matching item update.
	InTx(ctx context.Context, fn func(Repository) error) error
}

// Scheduler processes ratings and classifies due items.
type Scheduler struct {
	repo Repository
	cfg  mastery.Config
}

// New creates a Scheduler with its persistence port and mastery thresholds.
func New(repo Repository, cfg mastery.Config) *Scheduler {
	return &Scheduler{repo: repo, cfg: cfg}
}

// RatingResult is the outcome of one processed rating.
type RatingResult struct {
	// Item reflects all persisted changes, including promotion.
	Item *knowledge.Item

	// Record is the review record created for this rating.
	Record *knowledge.ReviewRecord

	// NextReviewAt is the item's final next review date.
	NextReviewAt time.Time

	// IntervalDays is NextReviewAt minus the review time in days,
	// rounded to one decimal.
	IntervalDays float64

	// Rebounded is set when this rating demoted a mastered item.
	Rebounded bool

	// Promoted is set when this rating completed mastery promotion.
	Promoted bool
}

// ProcessRating applies one rating to an item at the given review time.
// Validation failures and unknown ids leave the store untouched.
func (s *Scheduler) ProcessRating(ctx context.Context, knowledgeID string, rating int, reviewedAt time.Time) (*RatingResult, error) {
	var result *RatingResult
	err := s.repo.InTx(ctx, func(r Repository) error {
		var err error
		result, err = s.processRating(ctx, r, knowledgeID, rating, reviewedAt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Scheduler) processRating(ctx context.Context, r Repository, knowledgeID string, rating int, reviewedAt time.Time) (*RatingResult, error) {
	item, err := r.LoadItem(ctx, knowledgeID)
	if err != nil {
		return nil, err
	}
	if err := srs.ValidateRating(rating); err != nil {
		return nil, err
	}

	item = item.Clone()

	// Rebound check runs before any interval computation: a low rating on
	// a mastered item drops it back to learning and the rating itself is
	// scheduled on the standard ladder.
	rebounded := false
	if mastery.ShouldRebound(item.Status, rating) {
		item.Status = knowledge.StatusLearning
		item.MasteredAt = nil
		rebounded = true
	}

	reviewCount := item.ReviewCount + 1

	var next time.Time
	if item.Status == knowledge.StatusMastered {
		// Steady state: rating >= 3 on a mastered item gets the fixed
		// long-term spot-check interval.
		next = mastery.LongTermNextReview(reviewedAt, s.cfg)
	} else {
		next, err = srs.NextReviewDate(reviewedAt, reviewCount, rating, item.FrequencyCoefficient)
		if err != nil {
			return nil, err
		}
	}

	rec := &knowledge.ReviewRecord{
		KnowledgeID:  item.ID,
		Rating:       rating,
		ReviewedAt:   reviewedAt,
		NextReviewAt: next,
	}
	recID, err := r.SaveReviewRecord(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("save review record: %w", err)
	}
	rec.ID = recID

	upd := knowledge.ItemUpdate{
		ReviewCount:  &reviewCount,
		LastReviewAt: &reviewedAt,
		NextReviewAt: &next,
	}
	if rebounded {
		st := knowledge.StatusLearning
		upd.Status = &st
	}
	if err := r.UpdateItem(ctx, item.ID, upd); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	item.ReviewCount = reviewCount
	item.LastReviewAt = &reviewedAt
	item.NextReviewAt = &next

	// Promotion is rechecked only after the record exists: eligibility
	// depends on the rating just written, so it cannot be decided earlier.
	promoted := false
	if item.Status == knowledge.StatusLearning {
		recent, err := r.RecentRecords(ctx, item.ID, recentWindow)
		if err != nil {
			return nil, fmt.Errorf("recent records: %w", err)
		}
		if mastery.Promotable(item, recent, reviewedAt, s.cfg) {
			next = mastery.LongTermNextReview(reviewedAt, s.cfg)
			st := knowledge.StatusMastered
			if err := r.UpdateItem(ctx, item.ID, knowledge.ItemUpdate{
				Status:       &st,
				MasteredAt:   &reviewedAt,
				NextReviewAt: &next,
			}); err != nil {
				return nil, fmt.Errorf("promote item: %w", err)
			}
			masteredAt := reviewedAt
			item.Status = knowledge.StatusMastered
			item.MasteredAt = &masteredAt
			item.NextReviewAt = &next
			promoted = true
		}
	}

	return &RatingResult{
		Item:         item,
		Record:       rec,
		NextReviewAt: next,
		IntervalDays: roundTenth(next.Sub(reviewedAt).Hours() / 24),
		Rebounded:    rebounded,
		Promoted:     promoted,
	}, nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
