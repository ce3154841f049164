package review

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/recollect-cli/recollect/internal/scheduler"
	"github.com/recollect-cli/recollect/internal/ui/components"
	"github.com/recollect-cli/recollect/internal/ui/theme"
)

func (r *ReviewScreen) View(width, height int) string {
	switch r.phase {
	case phaseLoading:
		return centered(width, height, theme.Hint.Render("Loading today's reviews..."))
	case phaseEmpty:
		return centered(width, height,
			theme.Title.Render("All caught up!")+"\n\n"+
				theme.Subtitle.Render("Nothing is due for review right now."))
	case phaseError:
		return centered(width, height,
			lipgloss.NewStyle().Foreground(theme.Error).Render("Something went wrong")+"\n\n"+
				theme.Hint.Render(r.errMsg))
	case phaseFeedback:
		return r.feedbackView(width, height)
	default:
		return r.cardView(width, height)
	}
}

func (r *ReviewScreen) cardView(width, height int) string {
	task := r.current()
	if task == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(r.progressLine(width))
	b.WriteString("\n\n")

	cardWidth := min(width-8, 72)
	card := theme.Card.Width(cardWidth)

	title := theme.Title.Render(task.Item.Title)
	if task.Priority == scheduler.PriorityOverdue {
		title += "\n" + theme.Due.Render(fmt.Sprintf("overdue by %d day(s)", task.DaysOverdue))
	}

	body := title
	if r.phase == phaseRevealed {
		body += "\n\n" + theme.Body.Render(task.Item.Content)
		if r.hookPending {
			body += "\n\n" + theme.Hint.Render("Fetching a memory hook...")
		} else if r.hook != "" {
			body += "\n\n" + theme.Hint.Render("Hook: "+r.hook)
		}
	} else {
		body += "\n\n" + theme.Hint.Render("How well do you remember this?")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card.Render(body)))

	if r.phase == phaseRevealed {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, ratingScale()))
	}

	return lipgloss.PlaceVertical(height, lipgloss.Center, b.String())
}

func (r *ReviewScreen) feedbackView(width, height int) string {
	res := r.lastResult
	if res == nil {
		return ""
	}

	var lines []string

	switch {
	case res.Promoted:
		lines = append(lines, theme.Mastered.Render("Mastered!"))
	case res.Rebounded:
		lines = append(lines, theme.Rebounded.Render("Back to learning"))
	default:
		lines = append(lines, theme.Title.Render("Recorded"))
	}

	lines = append(lines, "")
	lines = append(lines, theme.Body.Render(fmt.Sprintf(
		"Next review in %.1f day(s), on %s",
		res.IntervalDays,
		res.NextReviewAt.Format("Mon, Jan 2"))))
	lines = append(lines, theme.Subtitle.Render(fmt.Sprintf("Reviewed %d time(s)", res.Item.ReviewCount)))

	content := strings.Join(lines, "\n")
	block := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(content)
	return lipgloss.PlaceVertical(height, lipgloss.Center, block)
}

func (r *ReviewScreen) progressLine(width int) string {
	done := r.idx
	total := len(r.tasks)
	percent := 0.0
	if total > 0 {
		percent = float64(done) / float64(total)
	}
	bar := components.NewProgressBar(
		fmt.Sprintf("%d/%d", done, total), percent, false, min(width-8, 48))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View())
}

func ratingScale() string {
	labels := []string{"1 blank", "2 fuzzy", "3 effortful", "4 solid", "5 instant"}
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts,
			theme.RatingKey.Render(l[:1])+theme.Subtitle.Render(l[1:]))
	}
	return strings.Join(parts, "    ")
}

func centered(width, height int, content string) string {
	block := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(content)
	return lipgloss.PlaceVertical(height, lipgloss.Center, block)
}
