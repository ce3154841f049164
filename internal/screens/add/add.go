// Package add implements the in-app item creation form.
package add

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/recollect-cli/recollect/internal/knowledge"
	"github.com/recollect-cli/recollect/internal/router"
	"github.com/recollect-cli/recollect/internal/screen"
	"github.com/recollect-cli/recollect/internal/ui/components"
	"github.com/recollect-cli/recollect/internal/ui/layout"
	"github.com/recollect-cli/recollect/internal/ui/theme"
)

// Writer persists new knowledge items.
type Writer interface {
	CreateItem(ctx context.Context, item *knowledge.Item) error
}

type savedMsg struct {
	Title string
	Err   error
}

// AddScreen is a two-field form: title, then content.
type AddScreen struct {
	writer Writer

	titleInput   components.TextInput
	contentInput components.TextInput
	onContent    bool

	lastSaved string
	errMsg    string
}

var _ screen.Screen = (*AddScreen)(nil)
var _ screen.KeyHintProvider = (*AddScreen)(nil)

// New creates an AddScreen.
func New(writer Writer) *AddScreen {
	a := &AddScreen{
		writer:       writer,
		titleInput:   components.NewTextInput("Title", "What is this about?", 120),
		contentInput: components.NewTextInput("Content", "The thing to remember", 0),
	}
	return a
}

func (a *AddScreen) Init() tea.Cmd {
	return a.titleInput.Focus()
}

func (a *AddScreen) Title() string {
	return "Add Item"
}

func (a *AddScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Next / Save"},
		{Key: "Tab", Description: "Switch field"},
		{Key: "Esc", Description: "Back"},
	}
}

func (a *AddScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.Err != nil {
			a.errMsg = msg.Err.Error()
			return a, nil
		}
		a.errMsg = ""
		a.lastSaved = msg.Title
		// Reset for the next item.
		a.titleInput = components.NewTextInput("Title", "What is this about?", 120)
		a.contentInput = components.NewTextInput("Content", "The thing to remember", 0)
		a.onContent = false
		return a, a.titleInput.Focus()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return a, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			return a, a.switchField()
		case "enter":
			if !a.onContent {
				return a, a.switchField()
			}
			return a, a.save()
		}
	}

	var cmd tea.Cmd
	if a.onContent {
		a.contentInput, cmd = a.contentInput.Update(msg)
	} else {
		a.titleInput, cmd = a.titleInput.Update(msg)
	}
	return a, cmd
}

func (a *AddScreen) switchField() tea.Cmd {
	a.onContent = !a.onContent
	if a.onContent {
		a.titleInput.Blur()
		return a.contentInput.Focus()
	}
	a.contentInput.Blur()
	return a.titleInput.Focus()
}

func (a *AddScreen) save() tea.Cmd {
	title := strings.TrimSpace(a.titleInput.Value())
	content := strings.TrimSpace(a.contentInput.Value())
	if title == "" {
		a.errMsg = "a title is required"
		return nil
	}

	now := time.Now()
	item := &knowledge.Item{
		Title:                title,
		Content:              content,
		FrequencyCoefficient: 1.0,
		Status:               knowledge.StatusLearning,
		CreatedAt:            now,
		NextReviewAt:         &now,
	}
	return func() tea.Msg {
		err := a.writer.CreateItem(context.Background(), item)
		return savedMsg{Title: title, Err: err}
	}
}

func (a *AddScreen) View(width, height int) string {
	var b strings.Builder

	formWidth := min(width-8, 64)

	b.WriteString(a.titleInput.View())
	b.WriteString("\n\n")
	b.WriteString(a.contentInput.View())
	b.WriteString("\n\n")

	if a.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(a.errMsg))
		b.WriteString("\n")
	} else if a.lastSaved != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).
			Render("Saved \"" + a.lastSaved + "\""))
		b.WriteString("\n")
	}

	form := theme.Card.Width(formWidth).Render(b.String())
	block := lipgloss.PlaceHorizontal(width, lipgloss.Center, form)
	return lipgloss.PlaceVertical(height, lipgloss.Center, block)
}
