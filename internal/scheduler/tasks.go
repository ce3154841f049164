package scheduler

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/recollect-cli/recollect/internal/knowledge"
)

// TaskPriority orders today's review tasks. Lower sorts first.
type TaskPriority int

const (
	PriorityOverdue TaskPriority = iota
	PriorityDueToday
	PriorityAdvance
)

func (p TaskPriority) String() string {
	switch p {
	case PriorityOverdue:
		return "overdue"
	case PriorityDueToday:
		return "due_today"
	case PriorityAdvance:
		return "advance"
	}
	return "unknown"
}

// ReviewTask is a due item classified for display. It is derived on demand
// and never persisted.
type ReviewTask struct {
	Item     *knowledge.Item
	Priority TaskPriority

	// DaysOverdue is set only for overdue tasks.
	DaysOverdue int

	// DueAt is the item's next review date.
	DueAt time.Time
}

// TodayReviewTasks returns the items due by the end of targetDate,
// classified and sorted: overdue first (most stale leading), then due
// today, then advance, ascending by due time within each group.
//
// The advance branch cannot fire with the current due-by-end-of-day query;
// it is kept so a look-ahead query needs no classification change.
func (s *Scheduler) TodayReviewTasks(ctx context.Context, targetDate time.Time) ([]ReviewTask, error) {
	dayStart := startOfDay(targetDate)
	dayEnd := endOfDay(targetDate)

	items, err := s.repo.ItemsDueBy(ctx, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("query due items: %w", err)
	}

	tasks := make([]ReviewTask, 0, len(items))
	for _, item := range items {
		if item.NextReviewAt == nil {
			continue
		}
		due := *item.NextReviewAt
		task := ReviewTask{Item: item, DueAt: due}
		switch {
		case due.Before(dayStart):
			task.Priority = PriorityOverdue
			task.DaysOverdue = int(math.Ceil(dayStart.Sub(due).Hours() / 24))
		case !due.After(dayEnd):
			task.Priority = PriorityDueToday
		default:
			task.Priority = PriorityAdvance
		}
		tasks = append(tasks, task)
	}

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Priority != tasks[j].Priority {
			return tasks[i].Priority < tasks[j].Priority
		}
		return tasks[i].DueAt.Before(tasks[j].DueAt)
	})

	return tasks, nil
}

// startOfDay returns midnight of t's calendar day in t's location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// endOfDay returns the last nanosecond of t's calendar day.
func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
