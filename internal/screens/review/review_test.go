package review

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/recollect-cli/recollect/internal/knowledge"
	"github.com/recollect-cli/recollect/internal/mastery"
	"github.com/recollect-cli/recollect/internal/router"
	"github.com/recollect-cli/recollect/internal/scheduler"
	"github.com/recollect-cli/recollect/internal/screen"
	"github.com/recollect-cli/recollect/internal/session"
)

// fakeRepo is an in-memory scheduler.Repository.
type fakeRepo struct {
	items   map[string]*knowledge.Item
	records map[string][]knowledge.ReviewRecord
	nextID  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items:   make(map[string]*knowledge.Item),
		records: make(map[string][]knowledge.ReviewRecord),
	}
}

func (f *fakeRepo) LoadItem(_ context.Context, id string) (*knowledge.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("load item %s: %w", id, scheduler.ErrNotFound)
	}
	return item.Clone(), nil
}

func (f *fakeRepo) SaveReviewRecord(_ context.Context, rec *knowledge.ReviewRecord) (string, error) {
	f.nextID++
	id := fmt.Sprintf("rec-%d", f.nextID)
	saved := *rec
	saved.ID = id
	f.records[rec.KnowledgeID] = append([]knowledge.ReviewRecord{saved}, f.records[rec.KnowledgeID]...)
	return id, nil
}

func (f *fakeRepo) UpdateItem(_ context.Context, id string, upd knowledge.ItemUpdate) error {
	item, ok := f.items[id]
	if !ok {
		return scheduler.ErrNotFound
	}
	if upd.ReviewCount != nil {
		item.ReviewCount = *upd.ReviewCount
	}
	if upd.LastReviewAt != nil {
		v := *upd.LastReviewAt
		item.LastReviewAt = &v
	}
	if upd.NextReviewAt != nil {
		v := *upd.NextReviewAt
		item.NextReviewAt = &v
	}
	if upd.Status != nil {
		item.Status = *upd.Status
		if *upd.Status == knowledge.StatusLearning {
			item.MasteredAt = nil
		} else if upd.MasteredAt != nil {
			v := *upd.MasteredAt
			item.MasteredAt = &v
		}
	}
	return nil
}

func (f *fakeRepo) ItemsDueBy(_ context.Context, due time.Time) ([]*knowledge.Item, error) {
	var out []*knowledge.Item
	for _, item := range f.items {
		if item.NextReviewAt != nil && !item.NextReviewAt.After(due) {
			out = append(out, item.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) RecentRecords(_ context.Context, id string, n int) ([]knowledge.ReviewRecord, error) {
	recs := f.records[id]
	if len(recs) > n {
		recs = recs[:n]
	}
	return append([]knowledge.ReviewRecord(nil), recs...), nil
}

func (f *fakeRepo) AllItems(_ context.Context) ([]*knowledge.Item, error) {
	var out []*knowledge.Item
	for _, item := range f.items {
		out = append(out, item.Clone())
	}
	return out, nil
}

func (f *fakeRepo) InTx(_ context.Context, fn func(scheduler.Repository) error) error {
	return fn(f)
}

func dueItem(id string, due time.Time) *knowledge.Item {
	return &knowledge.Item{
		ID:                   id,
		Title:                "Item " + id,
		Content:              "Content " + id,
		ReviewCount:          1,
		FrequencyCoefficient: 1.0,
		Status:               knowledge.StatusLearning,
		CreatedAt:            due.AddDate(0, 0, -10),
		NextReviewAt:         &due,
	}
}

func newTestScreen(repo *fakeRepo) *ReviewScreen {
	sched := scheduler.New(repo, mastery.DefaultConfig())
	agg := session.NewAggregator(repo)
	return New(sched, agg, nil)
}

// drain runs a command chain until no command or screen message remains.
func drain(t *testing.T, s screen.Screen, cmd tea.Cmd) screen.Screen {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return s
		}
		if _, nav := msg.(tea.QuitMsg); nav {
			return s
		}
		s, cmd = s.Update(msg)
	}
	return s
}

func TestReviewScreen_LoadsTasks(t *testing.T) {
	repo := newFakeRepo()
	past := time.Now().AddDate(0, 0, -2)
	repo.items["a"] = dueItem("a", past)
	repo.items["b"] = dueItem("b", past)

	s := newTestScreen(repo)
	drained := drain(t, s, s.Init())

	rs := drained.(*ReviewScreen)
	if rs.phase != phasePrompt {
		t.Fatalf("phase = %d, want prompt", rs.phase)
	}
	if len(rs.tasks) != 2 {
		t.Fatalf("len(tasks) = %d, want 2", len(rs.tasks))
	}
}

func TestReviewScreen_EmptyWhenNothingDue(t *testing.T) {
	s := newTestScreen(newFakeRepo())
	drained := drain(t, s, s.Init())

	rs := drained.(*ReviewScreen)
	if rs.phase != phaseEmpty {
		t.Fatalf("phase = %d, want empty", rs.phase)
	}
	if v := rs.View(80, 20); v == "" {
		t.Error("expected non-empty view")
	}
}

func TestReviewScreen_RevealAndRate(t *testing.T) {
	repo := newFakeRepo()
	past := time.Now().AddDate(0, 0, -1)
	repo.items["a"] = dueItem("a", past)

	s := newTestScreen(repo)
	cur := drain(t, s, s.Init())

	// Reveal.
	cur, _ = cur.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	rs := cur.(*ReviewScreen)
	if rs.phase != phaseRevealed {
		t.Fatalf("phase = %d, want revealed", rs.phase)
	}

	// Rate 4.
	cur, cmd := cur.Update(tea.KeyPressMsg{Code: '4', Text: "4"})
	cur = drain(t, cur, cmd)
	rs = cur.(*ReviewScreen)
	if rs.phase != phaseFeedback {
		t.Fatalf("phase = %d, want feedback", rs.phase)
	}
	if rs.lastResult == nil {
		t.Fatal("expected a rating result")
	}
	if got := repo.items["a"].ReviewCount; got != 2 {
		t.Errorf("ReviewCount = %d, want 2", got)
	}
	if len(rs.completed) != 1 || rs.completed[0] != "a" {
		t.Errorf("completed = %v", rs.completed)
	}
}

func TestReviewScreen_SessionEndsInSummary(t *testing.T) {
	repo := newFakeRepo()
	past := time.Now().AddDate(0, 0, -1)
	repo.items["a"] = dueItem("a", past)

	s := newTestScreen(repo)
	cur := drain(t, s, s.Init())

	cur, _ = cur.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	cur, cmd := cur.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	cur = drain(t, cur, cmd)

	// Any key advances past feedback; the single task is done, so the
	// screen finishes and a summary replacement is requested.
	_, cmd = cur.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if cmd == nil {
		t.Fatal("expected finish command")
	}
	msg := cmd()
	stats, ok := msg.(statsReadyMsg)
	if !ok {
		t.Fatalf("expected statsReadyMsg, got %T", msg)
	}
	if stats.Err != nil {
		t.Fatalf("unexpected error: %v", stats.Err)
	}
	if stats.Stats.TotalCount != 1 {
		t.Errorf("TotalCount = %d, want 1", stats.Stats.TotalCount)
	}
}

func TestReviewScreen_EscWithNoReviewsPops(t *testing.T) {
	repo := newFakeRepo()
	past := time.Now().AddDate(0, 0, -1)
	repo.items["a"] = dueItem("a", past)

	s := newTestScreen(repo)
	cur := drain(t, s, s.Init())

	_, cmd := cur.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatalf("expected PopScreenMsg, got %T", cmd())
	}
}
