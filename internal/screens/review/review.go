// Package review implements the interactive review session screen.
// Items due today are shown one at a time: the title first, then the
// content on reveal, then a 1-5 recall rating that feeds the scheduler.
package review

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/recollect-cli/recollect/internal/assist"
	"github.com/recollect-cli/recollect/internal/router"
	"github.com/recollect-cli/recollect/internal/scheduler"
	"github.com/recollect-cli/recollect/internal/screen"
	"github.com/recollect-cli/recollect/internal/screens/summary"
	"github.com/recollect-cli/recollect/internal/session"
	"github.com/recollect-cli/recollect/internal/ui/layout"
)

type phase int

const (
	phaseLoading phase = iota
	phaseEmpty
	phasePrompt
	phaseRevealed
	phaseFeedback
	phaseError
)

type tasksLoadedMsg struct {
	Tasks []scheduler.ReviewTask
	Err   error
}

type ratedMsg struct {
	Result *scheduler.RatingResult
	Err    error
}

type hookMsg struct {
	Text string
	Err  error
}

type statsReadyMsg struct {
	Stats *session.Stats
	Err   error
}

// ReviewScreen walks through today's due items.
type ReviewScreen struct {
	sched    *scheduler.Scheduler
	agg      *session.Aggregator
	provider assist.Provider

	phase       phase
	tasks       []scheduler.ReviewTask
	idx         int
	lastResult  *scheduler.RatingResult
	completed   []string
	startTime   time.Time
	hook        string
	hookPending bool
	errMsg      string
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// HandlesEsc tells the app shell to deliver esc to this screen instead
// of popping it, so a partial session still ends in a summary.
func (r *ReviewScreen) HandlesEsc() {}

// New creates a ReviewScreen. provider may be nil.
func New(sched *scheduler.Scheduler, agg *session.Aggregator, provider assist.Provider) *ReviewScreen {
	return &ReviewScreen{
		sched:     sched,
		agg:       agg,
		provider:  provider,
		startTime: time.Now(),
	}
}

func (r *ReviewScreen) Init() tea.Cmd {
	return r.loadTasks()
}

func (r *ReviewScreen) Title() string {
	return "Review"
}

func (r *ReviewScreen) KeyHints() []layout.KeyHint {
	switch r.phase {
	case phasePrompt:
		return []layout.KeyHint{
			{Key: "Space", Description: "Reveal"},
			{Key: "Esc", Description: "End session"},
		}
	case phaseRevealed:
		hints := []layout.KeyHint{
			{Key: "1-5", Description: "Rate recall"},
		}
		if r.provider != nil {
			hints = append(hints, layout.KeyHint{Key: "H", Description: "Memory hook"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "End session"})
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (r *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		if msg.Err != nil {
			r.phase = phaseError
			r.errMsg = msg.Err.Error()
			return r, nil
		}
		r.tasks = msg.Tasks
		if len(r.tasks) == 0 {
			r.phase = phaseEmpty
		} else {
			r.phase = phasePrompt
		}
		return r, nil

	case ratedMsg:
		if msg.Err != nil {
			r.phase = phaseError
			r.errMsg = msg.Err.Error()
			return r, nil
		}
		r.lastResult = msg.Result
		r.completed = append(r.completed, msg.Result.Item.ID)
		r.phase = phaseFeedback
		return r, nil

	case hookMsg:
		r.hookPending = false
		if msg.Err == nil {
			r.hook = msg.Text
		}
		return r, nil

	case statsReadyMsg:
		if msg.Err != nil {
			r.phase = phaseError
			r.errMsg = msg.Err.Error()
			return r, nil
		}
		return r, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(msg.Stats)}
		}

	case tea.KeyMsg:
		return r.handleKey(msg)
	}

	return r, nil
}

func (r *ReviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch r.phase {
	case phaseEmpty, phaseError:
		if key == "enter" || key == "esc" {
			return r, func() tea.Msg { return router.PopScreenMsg{} }
		}

	case phasePrompt:
		switch key {
		case " ", "space", "enter":
			r.phase = phaseRevealed
		case "esc":
			return r, r.finish()
		}

	case phaseRevealed:
		switch key {
		case "1", "2", "3", "4", "5":
			rating := int(key[0] - '0')
			return r, r.rate(rating)
		case "h", "H":
			if r.provider != nil && !r.hookPending && r.hook == "" {
				r.hookPending = true
				return r, r.fetchHook()
			}
		case "esc":
			return r, r.finish()
		}

	case phaseFeedback:
		r.lastResult = nil
		r.hook = ""
		r.idx++
		if r.idx >= len(r.tasks) {
			return r, r.finish()
		}
		r.phase = phasePrompt
	}

	return r, nil
}

func (r *ReviewScreen) current() *scheduler.ReviewTask {
	if r.idx < 0 || r.idx >= len(r.tasks) {
		return nil
	}
	return &r.tasks[r.idx]
}

func (r *ReviewScreen) loadTasks() tea.Cmd {
	return func() tea.Msg {
		tasks, err := r.sched.TodayReviewTasks(context.Background(), time.Now())
		return tasksLoadedMsg{Tasks: tasks, Err: err}
	}
}

func (r *ReviewScreen) rate(rating int) tea.Cmd {
	task := r.current()
	if task == nil {
		return nil
	}
	id := task.Item.ID
	return func() tea.Msg {
		res, err := r.sched.ProcessRating(context.Background(), id, rating, time.Now())
		return ratedMsg{Result: res, Err: err}
	}
}

func (r *ReviewScreen) fetchHook() tea.Cmd {
	task := r.current()
	if task == nil {
		return nil
	}
	title, content := task.Item.Title, task.Item.Content
	provider := r.provider
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		text, err := assist.MemoryHook(ctx, provider, title, content)
		return hookMsg{Text: text, Err: err}
	}
}

// finish ends the session: nothing reviewed pops back home, otherwise
// the summary screen replaces this one.
func (r *ReviewScreen) finish() tea.Cmd {
	if len(r.completed) == 0 {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	ids := append([]string(nil), r.completed...)
	start := r.startTime
	return func() tea.Msg {
		stats, err := r.agg.SessionStats(context.Background(), ids, start)
		return statsReadyMsg{Stats: stats, Err: err}
	}
}
