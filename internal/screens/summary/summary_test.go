package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/recollect-cli/recollect/internal/session"
)

func testStats() *session.Stats {
	return &session.Stats{
		TotalCount:      6,
		AverageRating:   4.2,
		DurationSeconds: 312,
		RatingDistribution: map[int]int{
			3: 1,
			4: 3,
			5: 2,
		},
		Preview: session.NextReviewPreview{
			Tomorrow: 2,
			NextWeek: 5,
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testStats())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testStats())
	view := s.View(80, 24)
	if view == "" {
		t.Fatal("expected non-empty summary view")
	}
	if !strings.Contains(view, "5:12") {
		t.Error("expected formatted duration in view")
	}
	if !strings.Contains(view, "4.2") {
		t.Error("expected average rating in view")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testStats())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (pop)")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testStats())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testStats())
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
