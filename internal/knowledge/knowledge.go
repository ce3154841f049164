package knowledge

import "time"

// MasteryStatus is an item's position in the review lifecycle.
type MasteryStatus string

const (
	StatusLearning MasteryStatus = "learning"
	StatusMastered MasteryStatus = "mastered"
)

// Item is a single piece of knowledge under spaced-repetition review.
// Scheduling fields are nil until the first rating is processed.
// MasteredAt is non-nil exactly when Status is StatusMastered.
type Item struct {
	ID                   string
	Title                string
	Content              string
	ReviewCount          int
	FrequencyCoefficient float64
	Status               MasteryStatus
	CreatedAt            time.Time
	LastReviewAt         *time.Time
	NextReviewAt         *time.Time
	MasteredAt           *time.Time
}

// Clone returns a deep copy. Pointer fields are copied by value so the
// caller can mutate the copy without touching the original.
func (it *Item) Clone() *Item {
	out := *it
	if it.LastReviewAt != nil {
		v := *it.LastReviewAt
		out.LastReviewAt = &v
	}
	if it.NextReviewAt != nil {
		v := *it.NextReviewAt
		out.NextReviewAt = &v
	}
	if it.MasteredAt != nil {
		v := *it.MasteredAt
		out.MasteredAt = &v
	}
	return &out
}

// ReviewRecord is one rating event in an item's append-only history.
// Records are immutable once written.
type ReviewRecord struct {
	ID           string
	KnowledgeID  string
	Rating       int
	ReviewedAt   time.Time
	NextReviewAt time.Time
}

// ItemUpdate carries the fields a rating submission may change. Nil fields
// are left untouched. Setting Status to StatusLearning clears MasteredAt;
// setting it to StatusMastered stores MasteredAt. The store enforces this so
// the masteredAt-iff-mastered invariant cannot be broken by a partial write.
type ItemUpdate struct {
	ReviewCount  *int
	LastReviewAt *time.Time
	NextReviewAt *time.Time
	Status       *MasteryStatus
	MasteredAt   *time.Time
}
