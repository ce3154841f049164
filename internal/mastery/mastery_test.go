package mastery

import (
	"testing"
	"time"

	"github.com/recollect-cli/recollect/internal/knowledge"
)

// buildHistory creates a newest-first history. ratings[0] is the newest
// rating; the oldest record is placed daysSpan days before now.
func buildHistory(ratings []int, daysSpan int, now time.Time) []knowledge.ReviewRecord {
	n := len(ratings)
	recs := make([]knowledge.ReviewRecord, n)
	for i, r := range ratings {
		// Spread records evenly, newest at now.
		offset := daysSpan * i / max(n-1, 1)
		recs[i] = knowledge.ReviewRecord{
			KnowledgeID: "item-1",
			Rating:      r,
			ReviewedAt:  now.AddDate(0, 0, -offset),
		}
	}
	return recs
}

func TestIsMastered_ShortHistory(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cfg := DefaultConfig()
	for n := 0; n < 5; n++ {
		ratings := make([]int, n)
		for i := range ratings {
			ratings[i] = 5
		}
		if IsMastered(buildHistory(ratings, 60, now), now, cfg) {
			t.Errorf("history of %d records should not qualify", n)
		}
	}
}

func TestIsMastered_RecentRatingTooLow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cfg := DefaultConfig()
	tests := [][]int{
		{3, 5, 5, 5, 5}, // newest too low
		{5, 3, 5, 5, 5},
		{5, 5, 3, 5, 5},
	}
	for _, ratings := range tests {
		if IsMastered(buildHistory(ratings, 60, now), now, cfg) {
			t.Errorf("ratings %v should not qualify", ratings)
		}
	}
}

func TestIsMastered_OldRatingsIrrelevant(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	// Only the 3 newest ratings matter; earlier failures don't block.
	h := buildHistory([]int{5, 4, 5, 1, 1}, 60, now)
	if !IsMastered(h, now, DefaultConfig()) {
		t.Error("old low ratings should not block mastery")
	}
}

func TestIsMastered_SpanTooShort(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	h := buildHistory([]int{5, 5, 5, 5, 5}, 29, now)
	if IsMastered(h, now, DefaultConfig()) {
		t.Error("29-day span should not qualify")
	}
}

func TestIsMastered_Qualifies(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	h := buildHistory([]int{5, 4, 5, 2, 3}, 31, now)
	if !IsMastered(h, now, DefaultConfig()) {
		t.Error("5 records, 3 newest >= 4, 31-day span should qualify")
	}
}

func TestIsMastered_SpanBoundaryInclusive(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	h := buildHistory([]int{5, 5, 5, 5, 5}, 30, now)
	if !IsMastered(h, now, DefaultConfig()) {
		t.Error("exactly 30-day span should qualify")
	}
}

func TestShouldRebound(t *testing.T) {
	tests := []struct {
		status knowledge.MasteryStatus
		rating int
		want   bool
	}{
		{knowledge.StatusMastered, 1, true},
		{knowledge.StatusMastered, 2, true},
		{knowledge.StatusMastered, 3, false},
		{knowledge.StatusMastered, 5, false},
		{knowledge.StatusLearning, 1, false},
		{knowledge.StatusLearning, 2, false},
	}
	for _, tt := range tests {
		if got := ShouldRebound(tt.status, tt.rating); got != tt.want {
			t.Errorf("ShouldRebound(%s, %d) = %v, want %v", tt.status, tt.rating, got, tt.want)
		}
	}
}

func TestLongTermNextReview(t *testing.T) {
	reviewedAt := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)
	got := LongTermNextReview(reviewedAt, DefaultConfig())
	want := time.Date(2025, 3, 16, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("LongTermNextReview = %v, want %v", got, want)
	}
}

func TestPromotable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cfg := DefaultConfig()
	item := func(status knowledge.MasteryStatus, count, ageDays int) *knowledge.Item {
		return &knowledge.Item{
			ID:          "item-1",
			Status:      status,
			ReviewCount: count,
			CreatedAt:   now.AddDate(0, 0, -ageDays),
		}
	}
	recent := func(ratings ...int) []knowledge.ReviewRecord {
		recs := make([]knowledge.ReviewRecord, len(ratings))
		for i, r := range ratings {
			recs[i] = knowledge.ReviewRecord{Rating: r, ReviewedAt: now.AddDate(0, 0, -i)}
		}
		return recs
	}

	tests := []struct {
		name   string
		item   *knowledge.Item
		recent []knowledge.ReviewRecord
		want   bool
	}{
		{"qualifies", item(knowledge.StatusLearning, 5, 31), recent(5, 4, 5), true},
		{"already mastered", item(knowledge.StatusMastered, 5, 31), recent(5, 4, 5), false},
		{"too few reviews", item(knowledge.StatusLearning, 4, 31), recent(5, 4, 5), false},
		{"too few records", item(knowledge.StatusLearning, 5, 31), recent(5, 4), false},
		{"low recent rating", item(knowledge.StatusLearning, 5, 31), recent(5, 3, 5), false},
		{"too young", item(knowledge.StatusLearning, 5, 29), recent(5, 4, 5), false},
		{"age boundary inclusive", item(knowledge.StatusLearning, 5, 30), recent(4, 4, 4), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Promotable(tt.item, tt.recent, now, cfg); got != tt.want {
				t.Errorf("Promotable = %v, want %v", got, tt.want)
			}
		})
	}
}
