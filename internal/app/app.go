package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/recollect-cli/recollect/internal/router"
	"github.com/recollect-cli/recollect/internal/screen"
	"github.com/recollect-cli/recollect/internal/screens/home"
	"github.com/recollect-cli/recollect/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	homeFn func() *home.HomeScreen
	home   *home.HomeScreen
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(deps home.Deps) AppModel {
	homeFn := func() *home.HomeScreen { return home.New(deps) }
	h := homeFn()
	return AppModel{
		router: router.New(h),
		homeFn: homeFn,
		home:   h,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case router.PopScreenMsg:
		// Returning to home: rebuild it so the counts are fresh.
		cmd := m.router.Update(msg)
		if m.router.Depth() == 1 {
			m.home = m.homeFn()
			m.router.Replace(m.home)
		}
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Screens that handle esc themselves see it first; the
			// review screen intercepts it to finish the session.
			if _, handlesEsc := m.router.Active().(escHandler); !handlesEsc && m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// escHandler marks screens that want the raw esc key.
type escHandler interface {
	HandlesEsc()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	due, mastered := 0, 0
	if m.home != nil {
		due = m.home.DueCount()
		mastered = m.home.MasteredCount()
	}
	header := layout.RenderHeader(title, due, mastered, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(deps home.Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
