// Package styles provides Lip Gloss styles for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hy4ri/integral/internal/model"
)

// Terminal-adaptive colors that work in both light and dark terminals.
var (
	// Subtle is a muted color for secondary text
	Subtle = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	// Highlight is the accent color for selected items
	Highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	// Special colors
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF6666"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#66FF66"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#FFAA00", Dark: "#FFCC66"}
)

// Event type colors
var (
	MeetingColor  = lipgloss.Color("#3B82F6") // blue
	TaskColor     = lipgloss.Color("#22C55E") // green
	PersonalColor = lipgloss.Color("#A855F7") // purple
	OtherColor    = lipgloss.Color("#6B7280") // gray
)

// EventTypeColor returns the accent color of an event type.
func EventTypeColor(t model.EventType) lipgloss.Color {
	switch t {
	case model.EventMeeting:
		return MeetingColor
	case model.EventTask:
		return TaskColor
	case model.EventPersonal:
		return PersonalColor
	default:
		return OtherColor
	}
}

// EventChip renders a compact colored event label.
func EventChip(t model.EventType) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(EventTypeColor(t))
}

// Priority colors
var (
	PriorityHighColor   = lipgloss.Color("#D0473D")
	PriorityMediumColor = lipgloss.Color("#EA8811")
	PriorityLowColor    = lipgloss.Color("#296FDF")
)

// GetPriorityStyle returns the appropriate style for a priority.
func GetPriorityStyle(p model.Priority) lipgloss.Style {
	switch p {
	case model.PriorityHigh:
		return lipgloss.NewStyle().Foreground(PriorityHighColor)
	case model.PriorityMedium:
		return lipgloss.NewStyle().Foreground(PriorityMediumColor)
	case model.PriorityLow:
		return lipgloss.NewStyle().Foreground(PriorityLowColor)
	default:
		return lipgloss.NewStyle()
	}
}

// Base styles
var (
	// Title is the style for section titles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	// Subtitle is for secondary headings
	Subtitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Subtle)
)

// Task styles
var (
	TaskItem = lipgloss.NewStyle().
			PaddingLeft(2)

	TaskSelected = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeftForeground(Highlight).
			Bold(true).
			Background(lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#2A2A2A"})

	TaskCompleted = lipgloss.NewStyle().
			PaddingLeft(2).
			Faint(true).
			Strikethrough(true)

	TaskDue = lipgloss.NewStyle().
		Foreground(Subtle).
		PaddingLeft(1)

	TaskDueOverdue = lipgloss.NewStyle().
			Foreground(ErrorColor).
			PaddingLeft(1)

	TaskDueToday = lipgloss.NewStyle().
			Foreground(SuccessColor).
			PaddingLeft(1)

	// TaskOnCalendar marks tasks mirrored to the calendar
	TaskOnCalendar = lipgloss.NewStyle().
			Foreground(TaskColor).
			PaddingLeft(1)
)

// Panel styles
var (
	// Sidebar is the style for the calendar sidebar container
	Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Subtle).
		Padding(0, 1)

	// Card is a dashboard tile
	Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Subtle).
		Padding(0, 1)

	// CardValue is the large number on a stats card
	CardValue = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight)
)

// StatusBar styles
var (
	StatusBar = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"}).
			Background(lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#1F1F1F"}).
			Padding(0, 1)

	StatusBarKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight).
			Background(lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#1F1F1F"})

	StatusBarText = lipgloss.NewStyle().
			Foreground(Subtle).
			Background(lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#1F1F1F"})

	StatusBarError = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Background(lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#1F1F1F"}).
			Bold(true)

	StatusBarSuccess = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Background(lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#1F1F1F"}).
				Bold(true)
)

// Help styles
var (
	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Subtle)
)

// Input styles
var (
	InputLabel = lipgloss.NewStyle().
		Bold(true)
)

// Dialog styles
var (
	Dialog = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Highlight).
		Padding(1, 2)

	DialogTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight).
			MarginBottom(1)
)

var Spinner = lipgloss.NewStyle().Foreground(Highlight)

// Section header style
// NOTE: No margins here - they add extra lines to fixed-height panes.
var SectionHeader = lipgloss.NewStyle().
	Bold(true).
	Foreground(Subtle).
	Underline(true)

// Calendar styles
var (
	CalendarWeekday = lipgloss.NewStyle().
			Foreground(Subtle)

	CalendarDay = lipgloss.NewStyle()

	CalendarDaySelected = lipgloss.NewStyle().
				Bold(true).
				Background(Highlight).
				Foreground(lipgloss.Color("#ffffff"))

	CalendarDayToday = lipgloss.NewStyle().
				Bold(true).
				Foreground(SuccessColor)

	CalendarDayWithEvents = lipgloss.NewStyle().
				Foreground(WarningColor)

	CalendarDayOtherMonth = lipgloss.NewStyle().
				Faint(true)

	CalendarCellBorder = lipgloss.NewStyle().
				Foreground(Subtle)

	CalendarMoreEvents = lipgloss.NewStyle().
				Foreground(Subtle).
				Italic(true)

	HourLabel = lipgloss.NewStyle().
			Foreground(Subtle).
			Width(6).
			Align(lipgloss.Right)

	// NowMarker is the current-time line in day and week views
	NowMarker = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)
)

// Tab bar styles
var (
	TabBar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Subtle).
		PaddingLeft(1).
		PaddingRight(1)

	Tab = lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(Subtle)

	TabActive = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(Highlight)
)

// Checkbox styles
const (
	CheckboxUnchecked = "[ ]"
	CheckboxChecked   = "[x]"
)
