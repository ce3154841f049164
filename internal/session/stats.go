// Package session aggregates statistics for a completed review session.
package session

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/recollect-cli/recollect/internal/knowledge"
)

// Repository is the read port the aggregator needs.
type Repository interface {
	// RecentRecords returns up to n records for an item, newest first.
	RecentRecords(ctx context.Context, id string, n int) ([]knowledge.ReviewRecord, error)

	// AllItems returns every item, used for the next-review preview.
	AllItems(ctx context.Context) ([]*knowledge.Item, error)
}

// NextReviewPreview counts upcoming reviews across all items, not only
// those touched in this session. Buckets are half-open on local end-of-day
// boundaries: Tomorrow covers (now, end-of-tomorrow], NextWeek covers
// (end-of-tomorrow, end-of-day(now+7d)].
type NextReviewPreview struct {
	Tomorrow int
	NextWeek int
}

// Stats summarizes one completed review session.
type Stats struct {
	// TotalCount is the number of completed item ids, whether or not a
	// record could be fetched for each.
	TotalCount int

	// AverageRating is the mean of found ratings to one decimal, 0 when
	// no records were found.
	AverageRating float64

	// DurationSeconds is the session length, rounded to whole seconds.
	DurationSeconds int

	// RatingDistribution counts found records per rating value 1..5.
	RatingDistribution map[int]int

	Preview NextReviewPreview
}

// Aggregator computes session statistics through a read-only port.
type Aggregator struct {
	repo Repository

	// Now is overridable for tests.
	Now func() time.Time
}

// NewAggregator creates an Aggregator using the wall clock.
func NewAggregator(repo Repository) *Aggregator {
	return &Aggregator{repo: repo, Now: time.Now}
}

// SessionStats summarizes the session that reviewed completedIDs starting
// at startTime. Ids whose latest record cannot be found still count toward
// TotalCount but contribute nothing to the rating aggregates.
func (a *Aggregator) SessionStats(ctx context.Context, completedIDs []string, startTime time.Time) (*Stats, error) {
	now := a.Now()

	stats := &Stats{
		TotalCount:         len(completedIDs),
		DurationSeconds:    int(math.Round(now.Sub(startTime).Seconds())),
		RatingDistribution: make(map[int]int),
	}

	var sum, found int
	for _, id := range completedIDs {
		recs, err := a.repo.RecentRecords(ctx, id, 1)
		if err != nil {
			return nil, fmt.Errorf("recent records for %s: %w", id, err)
		}
		if len(recs) == 0 {
			continue
		}
		rating := recs[0].Rating
		sum += rating
		found++
		stats.RatingDistribution[rating]++
	}
	if found > 0 {
		stats.AverageRating = math.Round(float64(sum)/float64(found)*10) / 10
	}

	preview, err := a.Preview(ctx, now)
	if err != nil {
		return nil, err
	}
	stats.Preview = preview

	return stats, nil
}

// Preview counts upcoming reviews in the tomorrow / next-week buckets as
// of now.
func (a *Aggregator) Preview(ctx context.Context, now time.Time) (NextReviewPreview, error) {
	items, err := a.repo.AllItems(ctx)
	if err != nil {
		return NextReviewPreview{}, fmt.Errorf("all items: %w", err)
	}

	endTomorrow := endOfDay(now.AddDate(0, 0, 1))
	endWeek := endOfDay(now.AddDate(0, 0, 7))

	var p NextReviewPreview
	for _, item := range items {
		if item.NextReviewAt == nil {
			continue
		}
		next := *item.NextReviewAt
		switch {
		case next.After(now) && !next.After(endTomorrow):
			p.Tomorrow++
		case next.After(endTomorrow) && !next.After(endWeek):
			p.NextWeek++
		}
	}
	return p, nil
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
