package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/recollect-cli/recollect/internal/assist"
	"github.com/recollect-cli/recollect/internal/knowledge"
	"github.com/recollect-cli/recollect/internal/router"
	"github.com/recollect-cli/recollect/internal/scheduler"
	"github.com/recollect-cli/recollect/internal/screen"
	"github.com/recollect-cli/recollect/internal/screens/add"
	"github.com/recollect-cli/recollect/internal/screens/review"
	"github.com/recollect-cli/recollect/internal/session"
	"github.com/recollect-cli/recollect/internal/ui/components"
	"github.com/recollect-cli/recollect/internal/ui/theme"
)

// Deps carries the services the home screen and its children need.
type Deps struct {
	Scheduler  *scheduler.Scheduler
	Repo       scheduler.Repository
	Writer     add.Writer
	Aggregator *session.Aggregator

	// Provider is optional; nil disables memory hooks during review.
	Provider assist.Provider
}

// HomeScreen is the main screen of the application.
type HomeScreen struct {
	deps Deps
	menu components.Menu

	totalCount    int
	learningCount int
	masteredCount int
	dueCount      int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.refresh()

	items := []components.MenuItem{
		{
			Label: "START REVIEW",
			Hint:  dueHint(h.dueCount),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: review.New(deps.Scheduler, deps.Aggregator, deps.Provider),
					}
				}
			},
		},
		{
			Label: "ADD ITEM",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: add.New(deps.Writer)}
				}
			},
		},
		{
			Label: "QUIT",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	}

	h.menu = components.NewMenu(items)
	return h
}

// refresh recomputes the counts shown on the home screen.
func (h *HomeScreen) refresh() {
	ctx := context.Background()

	h.totalCount, h.learningCount, h.masteredCount = 0, 0, 0
	if items, err := h.deps.Repo.AllItems(ctx); err == nil {
		h.totalCount = len(items)
		for _, item := range items {
			if item.Status == knowledge.StatusMastered {
				h.masteredCount++
			} else {
				h.learningCount++
			}
		}
	}

	h.dueCount = 0
	if tasks, err := h.deps.Scheduler.TodayReviewTasks(ctx, time.Now()); err == nil {
		h.dueCount = len(tasks)
	}
}

func dueHint(due int) string {
	if due == 0 {
		return "nothing due"
	}
	if due == 1 {
		return "1 item due"
	}
	return fmt.Sprintf("%d items due", due)
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	title := theme.Title.
		Width(width).
		Render("R E C O L L E C T")
	subtitle := theme.Subtitle.
		Width(width).
		Render("spaced repetition for things worth keeping")
	sections = append(sections, title+"\n"+subtitle)

	stats := fmt.Sprintf("%d items    %d learning    %d mastered    %d due today",
		h.totalCount, h.learningCount, h.masteredCount, h.dueCount)
	sections = append(sections, theme.Body.
		Width(width).
		Align(lipgloss.Center).
		Render(stats))

	menu := lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View())
	sections = append(sections, menu)

	content := strings.Join(sections, "\n\n")
	return lipgloss.PlaceVertical(height, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// DueCount returns the number of items due today, for the header.
func (h *HomeScreen) DueCount() int {
	return h.dueCount
}

// MasteredCount returns the number of mastered items, for the header.
func (h *HomeScreen) MasteredCount() int {
	return h.masteredCount
}
