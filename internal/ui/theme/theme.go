package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: muted, readable for long review sessions
var (
	Primary   = lipgloss.Color("#7C9E8F") // Sage
	Secondary = lipgloss.Color("#5B8DB8") // Steel Blue
	Accent    = lipgloss.Color("#D9A441") // Amber
	Success   = lipgloss.Color("#6FBF73") // Green
	Error     = lipgloss.Color("#C75B5B") // Muted Red
	Text      = lipgloss.Color("#E8E4D9") // Warm White
	TextDim   = lipgloss.Color("#8A8778") // Stone
	BgDark    = lipgloss.Color("#1C1B18") // Near Black
	BgCard    = lipgloss.Color("#2A2824") // Dark Umber
	Border    = lipgloss.Color("#45423A") // Dim Umber
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Mastered = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	Rebounded = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Due = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	RatingKey = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)
)
