package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hy4ri/integral/internal/calendar"
	"github.com/hy4ri/integral/internal/datekey"
	"github.com/hy4ri/integral/internal/model"
	"github.com/hy4ri/integral/internal/tui/styles"
)

const (
	sidebarWidth = 28
	// defaultStartHour is the first hour row shown when nothing is selected.
	defaultStartHour = 8
	// nowGutter marks the current hour between the label and the cells.
	nowGutter = "▸"
)

// renderCalendar renders the calendar tab: header, grid for the current
// mode and the optional sidebar.
func (r *Renderer) renderCalendar(width, height int) string {
	cal := r.Calendar
	events := r.VisibleEvents()
	selected, hasSelected := r.SelectedEvent()

	header := styles.Title.Render(cal.Title()) + "  " + styles.HelpDesc.Render("["+cal.Mode.String()+"]")
	if cal.Search != "" {
		header += "  " + styles.HelpDesc.Render("search: "+cal.Search)
	}
	if !cal.ShowTasks {
		header += "  " + styles.HelpDesc.Render("tasks hidden")
	}

	showSidebar := cal.SidebarOpen && !r.Narrow() && width > sidebarWidth+40
	gridWidth := width
	if showSidebar {
		gridWidth = width - sidebarWidth - 1
	}
	gridHeight := height - 2

	var grid string
	switch cal.Mode {
	case calendar.ViewMonth:
		grid = r.renderMonthGrid(events, selected.ID, gridWidth, gridHeight)
	case calendar.ViewWeek:
		grid = r.renderTimeline(calendar.WeekGrid(cal.Ref), events, selected, hasSelected, gridWidth, gridHeight)
	default:
		grid = r.renderTimeline([]datekey.Key{cal.Ref}, events, selected, hasSelected, gridWidth, gridHeight)
	}

	body := grid
	if showSidebar {
		side := r.renderCalendarSidebar(selected, hasSelected, height-2)
		body = lipgloss.JoinHorizontal(lipgloss.Top, grid, " ", side)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body)
}

// groupByDate buckets events by their date key, keeping order.
func groupByDate(events []model.Event) map[datekey.Key][]model.Event {
	out := make(map[datekey.Key][]model.Event)
	for _, ev := range events {
		out[ev.Date] = append(out[ev.Date], ev)
	}
	return out
}

// renderMonthGrid draws the 6x7 month grid. Each cell lists its first
// events and collapses the rest into "+K more".
func (r *Renderer) renderMonthGrid(events []model.Event, selectedID string, width, height int) string {
	cal := r.Calendar
	cells := calendar.MonthGrid(cal.Ref, cal.Today())
	byDate := groupByDate(events)
	narrow := r.Narrow()

	cellWidth := (width - 1) / 7
	if cellWidth < 4 {
		cellWidth = 4
	}
	limit := calendar.MonthCellLimitWide
	if narrow {
		limit = calendar.MonthCellLimitNarrow
	}
	// Day number, shown events, overflow line.
	cellHeight := limit + 2
	if rows := (height - 1) / 6; rows < cellHeight && rows >= 1 {
		cellHeight = rows
	}

	var headers []string
	for i := 0; i < 7; i++ {
		name := calendar.WeekdayAbbr(i)
		headers = append(headers, styles.CalendarWeekday.Render(fitString(name, cellWidth)))
	}
	lines := []string{strings.Join(headers, "")}

	for row := 0; row < 6; row++ {
		var rendered []string
		for col := 0; col < 7; col++ {
			cell := cells[row*7+col]
			rendered = append(rendered, r.renderMonthCell(cell, byDate[cell.Date], selectedID, cellWidth, cellHeight, narrow))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderMonthCell(cell calendar.Cell, events []model.Event, selectedID string, width, height int, narrow bool) string {
	dayStyle := styles.CalendarDay
	switch {
	case cell.Date == r.Calendar.Ref:
		dayStyle = styles.CalendarDaySelected
	case cell.IsToday:
		dayStyle = styles.CalendarDayToday
	case !cell.InMonth:
		dayStyle = styles.CalendarDayOtherMonth
	}

	shown, more := fitCell(events, narrow, height-1)

	dayLine := dayStyle.Render(fmt.Sprintf("%2d", cell.Date.Day))
	if height < 2 && more > 0 {
		// No room below the day number, so the count rides on its line.
		dayLine += " " + styles.CalendarMoreEvents.Render(fitString(fmt.Sprintf("+%d", more), max(width-3, 0)))
		more = 0
	} else {
		dayLine += strings.Repeat(" ", max(width-2, 0))
	}
	lines := []string{dayLine}

	for _, ev := range shown {
		label := ev.Title
		if ev.StartTime != "" && !narrow {
			label = ev.StartTime + " " + label
		}
		style := lipgloss.NewStyle().Foreground(styles.EventTypeColor(ev.Type))
		if ev.ID == selectedID {
			style = styles.EventChip(ev.Type)
		}
		if !cell.InMonth {
			style = style.Faint(true)
		}
		lines = append(lines, style.Render(fitString(label, width-1))+" ")
	}
	if more > 0 {
		lines = append(lines, styles.CalendarMoreEvents.Render(fitString(fmt.Sprintf("+%d more", more), width)))
	}

	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(strings.Join(lines, "\n"))
}

// fitCell applies the month overflow rule, then gives up shown events until
// they and the "+K more" line fit in slots lines.
func fitCell(events []model.Event, narrow bool, slots int) (shown []model.Event, more int) {
	shown, more = calendar.Overflow(events, narrow)
	need := len(shown)
	if more > 0 {
		need++
	}
	if need <= slots {
		return shown, more
	}
	keep := max(slots-1, 0)
	return events[:keep], len(events) - keep
}

// span is the hour rows a timed event covers.
type span struct {
	event model.Event
	first int
	last  int
}

// hourSpan converts a placement to hour rows. Every event covers at least
// its start row.
func hourSpan(p calendar.Positioned) span {
	first := int(p.Placement.Top / calendar.PixelsPerHour)
	rows := int(math.Ceil(p.Placement.Height / calendar.PixelsPerHour))
	if rows < 1 {
		rows = 1
	}
	return span{event: p.Event, first: first, last: first + rows - 1}
}

// renderTimeline draws one column per day with an hour label column, the
// untimed events on top and the current-time marker on today's column.
func (r *Renderer) renderTimeline(days []datekey.Key, events []model.Event, selected model.Event, hasSelected bool, width, height int) string {
	cal := r.Calendar
	byDate := groupByDate(events)
	today := cal.Today()
	now := cal.Now()
	nowRow := int(calendar.NowOffset(now) / calendar.PixelsPerHour)

	labelWidth := styles.HourLabel.GetWidth() + 1
	colWidth := (width - labelWidth) / len(days)
	if colWidth < 3 {
		colWidth = 3
	}

	columns := make([][]span, len(days))
	untimed := make([][]model.Event, len(days))
	for i, d := range days {
		timed, rest := calendar.DayColumn(byDate[d])
		for _, p := range timed {
			columns[i] = append(columns[i], hourSpan(p))
		}
		untimed[i] = rest
	}

	var b strings.Builder

	// Day headers
	b.WriteString(strings.Repeat(" ", labelWidth))
	for _, d := range days {
		label := fmt.Sprintf("%s %d", calendar.WeekdayAbbr(d.Weekday()), d.Day)
		style := styles.CalendarWeekday
		if d == today {
			style = styles.CalendarDayToday
		}
		if d == cal.Ref && len(days) > 1 {
			style = styles.CalendarDaySelected
		}
		b.WriteString(style.Render(fitString(label, colWidth)))
	}
	b.WriteString("\n")

	// All-day row
	b.WriteString(styles.HourLabel.Render("all") + " ")
	for i := range days {
		cell := ""
		if n := len(untimed[i]); n > 0 {
			cell = untimed[i][0].Title
			if n > 1 {
				cell = fmt.Sprintf("%s +%d", cell, n-1)
			}
		}
		style := lipgloss.NewStyle()
		if len(untimed[i]) > 0 {
			ev := untimed[i][0]
			style = style.Foreground(styles.EventTypeColor(ev.Type))
			if hasSelected && ev.ID == selected.ID {
				style = styles.EventChip(ev.Type)
			}
		}
		b.WriteString(style.Render(fitString(cell, colWidth)))
	}
	b.WriteString("\n")

	rows := height - 2
	if rows < 1 {
		rows = 1
	}
	if rows > 24 {
		rows = 24
	}

	hours := make([]string, 0, 24)
	for hour := 0; hour < 24; hour++ {
		gutter := " "
		if hour == nowRow && containsDay(days, today) {
			gutter = styles.NowMarker.Render(nowGutter)
		}
		var line strings.Builder
		line.WriteString(styles.HourLabel.Render(calendar.HourLabel(hour)) + gutter)
		for i, d := range days {
			line.WriteString(r.renderTimelineCell(columns[i], hour, colWidth, d == today && hour == nowRow, selected.ID, len(days) == 1))
		}
		hours = append(hours, line.String())
	}

	vp := &r.Timeline
	vp.Width = labelWidth + colWidth*len(days)
	vp.Height = rows
	vp.SetContent(strings.Join(hours, "\n"))
	if !r.TimelineManual {
		vp.SetYOffset(timelineStart(selected, hasSelected, rows))
	}
	b.WriteString(vp.View())

	return b.String()
}

func (r *Renderer) renderTimelineCell(spans []span, hour, width int, nowRow bool, selectedID string, detailed bool) string {
	for _, s := range spans {
		if hour < s.first || hour > s.last {
			continue
		}
		ev := s.event
		style := lipgloss.NewStyle().Foreground(styles.EventTypeColor(ev.Type))
		if ev.ID == selectedID {
			style = styles.EventChip(ev.Type)
		}
		if hour == s.first {
			label := "■ " + ev.Title
			if detailed {
				label += "  " + ev.TimeRange()
				if ev.Description != "" {
					label += "  " + ev.Description
				}
			}
			return style.Render(fitString(label, width))
		}
		return style.Render(fitString("│", width))
	}
	if nowRow {
		return styles.NowMarker.Render(strings.Repeat("─", width))
	}
	return styles.CalendarCellBorder.Render(fitString("·", width))
}

// timelineStart picks the first hour row so the selected event, or the
// working day, is visible.
func timelineStart(selected model.Event, hasSelected bool, rows int) int {
	start := defaultStartHour
	if hasSelected {
		if h, _, ok := model.ParseClock(selected.StartTime); ok {
			start = h - 1
		}
	}
	if start+rows > 24 {
		start = 24 - rows
	}
	if start < 0 {
		start = 0
	}
	return start
}

func containsDay(days []datekey.Key, d datekey.Key) bool {
	for _, day := range days {
		if day == d {
			return true
		}
	}
	return false
}

// renderCalendarSidebar shows the mini calendar and the selected event.
func (r *Renderer) renderCalendarSidebar(selected model.Event, hasSelected bool, height int) string {
	cal := r.Calendar
	var b strings.Builder

	b.WriteString(styles.SectionHeader.Render(cal.Ref.Time(nil).Format("January 2006")) + "\n")
	b.WriteString(styles.CalendarWeekday.Render("Su Mo Tu We Th Fr Sa") + "\n")

	first := cal.Ref.FirstOfMonth()
	busy := make(map[int]bool)
	for _, ev := range r.Workspace.Events.Between(first, first.AddDays(first.DaysInMonth()-1)) {
		busy[ev.Date.Day] = true
	}
	today := cal.Today()

	for i, day := range calendar.MiniCalendar(cal.Ref) {
		if day == nil {
			b.WriteString("   ")
		} else {
			style := styles.CalendarDay
			k := datekey.Key{Year: first.Year, Month: first.Month, Day: *day}
			switch {
			case k == cal.Ref:
				style = styles.CalendarDaySelected
			case k == today:
				style = styles.CalendarDayToday
			case busy[*day]:
				style = styles.CalendarDayWithEvents
			}
			b.WriteString(style.Render(fmt.Sprintf("%2d", *day)) + " ")
		}
		if i%7 == 6 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n\n")

	inner := sidebarWidth - styles.Sidebar.GetHorizontalFrameSize()
	if hasSelected {
		b.WriteString(styles.SectionHeader.Render("Selected") + "\n")
		b.WriteString(styles.EventChip(selected.Type).Render(truncateString(selected.Title, inner)) + "\n")
		when := selected.Date.Time(nil).Format("Mon, Jan 2")
		if tr := selected.TimeRange(); tr != "" {
			when += " " + tr
		}
		b.WriteString(styles.HelpDesc.Render(when) + "\n")
		if selected.Priority != model.PriorityNone {
			b.WriteString(styles.GetPriorityStyle(selected.Priority).Render(string(selected.Priority)+" priority") + "\n")
		}
		if selected.Description != "" {
			b.WriteString(lipgloss.NewStyle().Width(inner).Render(selected.Description) + "\n")
		}
	}
	if r.AINote != "" {
		b.WriteString("\n" + styles.SectionHeader.Render("AI") + "\n")
		b.WriteString(lipgloss.NewStyle().Width(inner).Render(r.AINote))
	}

	return styles.Sidebar.Width(sidebarWidth).MaxHeight(height).Render(strings.TrimRight(b.String(), "\n"))
}
