package state

import tea "github.com/charmbracelet/bubbletea"

// Key represents a key binding.
type Key struct {
	Key  string
	Help string
}

// KeymapData contains all key bindings for the application.
type KeymapData struct {
	// Navigation
	Up      Key
	Down    Key
	Bottom  Key
	Left    Key
	Right   Key
	NextTab Key
	PrevTab Key

	// Actions
	Select Key
	Back   Key
	Quit   Key
	Help   Key
	Logout Key

	// Shared item actions
	Add    Key
	Edit   Key
	Delete Key

	// Calendar
	Today       Key
	MonthView   Key
	WeekView    Key
	DayView     Key
	Sidebar     Key
	Search      Key
	TaskEvents  Key
	FocusBlocks Key
	Copy        Key
	Summarize   Key
	ScrollUp    Key
	ScrollDown  Key
	Writer      Key

	// Tasks
	Toggle    Key
	Mirror    Key
	Recommend Key
	Reminder  Key
	Analyze   Key
}

// DefaultKeymap returns the default Vim-style key bindings.
func DefaultKeymap() KeymapData {
	return KeymapData{
		Up:      Key{Key: "k", Help: "up"},
		Down:    Key{Key: "j", Help: "down"},
		Bottom:  Key{Key: "G", Help: "bottom"},
		Left:    Key{Key: "h", Help: "previous"},
		Right:   Key{Key: "l", Help: "next"},
		NextTab: Key{Key: "tab", Help: "next tab"},
		PrevTab: Key{Key: "shift+tab", Help: "previous tab"},

		Select: Key{Key: "enter", Help: "select"},
		Back:   Key{Key: "esc", Help: "back"},
		Quit:   Key{Key: "q", Help: "quit"},
		Help:   Key{Key: "?", Help: "help"},
		Logout: Key{Key: "O", Help: "log out"},

		Add:    Key{Key: "a", Help: "add"},
		Edit:   Key{Key: "e", Help: "edit"},
		Delete: Key{Key: "x", Help: "delete"},

		Today:       Key{Key: "t", Help: "today"},
		MonthView:   Key{Key: "m", Help: "month view"},
		WeekView:    Key{Key: "w", Help: "week view"},
		DayView:     Key{Key: "d", Help: "day view"},
		Sidebar:     Key{Key: "s", Help: "toggle sidebar"},
		Search:      Key{Key: "/", Help: "search"},
		TaskEvents:  Key{Key: "T", Help: "show/hide task events"},
		FocusBlocks: Key{Key: "F", Help: "add focus blocks"},
		Copy:        Key{Key: "y", Help: "copy event"},
		Summarize:   Key{Key: "S", Help: "summarize description"},
		ScrollUp:    Key{Key: "pgup", Help: "scroll hours up"},
		ScrollDown:  Key{Key: "pgdown", Help: "scroll hours down"},
		Writer:      Key{Key: "W", Help: "AI writing assistant"},

		Toggle:    Key{Key: " ", Help: "complete/uncomplete"},
		Mirror:    Key{Key: "c", Help: "add to calendar"},
		Recommend: Key{Key: "R", Help: "AI recommendations"},
		Reminder:  Key{Key: "r", Help: "AI reminder suggestion"},
		Analyze:   Key{Key: "A", Help: "AI task analysis"},
	}
}

// KeyState tracks multi-key sequences (like 'gg').
type KeyState struct {
	LastKey  string
	WaitingG bool // Waiting for second 'g' in 'gg'
}

// HandleKey processes a key press and returns the action to take.
// Returns the action name and whether the key was consumed.
func (ks *KeyState) HandleKey(msg tea.KeyMsg, keymap KeymapData) (string, bool) {
	key := msg.String()

	if ks.WaitingG {
		ks.WaitingG = false
		if key == "g" {
			return "top", true
		}
		// If not 'g', reset and process normally
	}

	if key == "g" {
		ks.WaitingG = true
		ks.LastKey = key
		return "", true
	}
	ks.LastKey = key

	switch key {
	case keymap.Up.Key, "up":
		return "up", true
	case keymap.Down.Key, "down":
		return "down", true
	case keymap.Bottom.Key:
		return "bottom", true
	case keymap.Left.Key, "left":
		return "left", true
	case keymap.Right.Key, "right":
		return "right", true
	case keymap.NextTab.Key:
		return "next_tab", true
	case keymap.PrevTab.Key:
		return "prev_tab", true
	case "1":
		return "tab_dashboard", true
	case "2":
		return "tab_calendar", true
	case "3":
		return "tab_tasks", true
	case keymap.Select.Key:
		return "select", true
	case keymap.Back.Key:
		return "back", true
	case keymap.Quit.Key, "ctrl+c":
		return "quit", true
	case keymap.Help.Key:
		return "help", true
	case keymap.Logout.Key:
		return "logout", true
	case keymap.Add.Key:
		return "add", true
	case keymap.Edit.Key:
		return "edit", true
	case keymap.Delete.Key:
		return "delete", true
	case keymap.Today.Key:
		return "today", true
	case keymap.MonthView.Key:
		return "mode_month", true
	case keymap.WeekView.Key:
		return "mode_week", true
	case keymap.DayView.Key:
		return "mode_day", true
	case keymap.Sidebar.Key:
		return "sidebar", true
	case keymap.Search.Key:
		return "search", true
	case keymap.TaskEvents.Key:
		return "task_events", true
	case keymap.FocusBlocks.Key:
		return "focus_blocks", true
	case keymap.Copy.Key:
		return "copy", true
	case keymap.Summarize.Key:
		return "summarize", true
	case keymap.Toggle.Key, "space":
		return "toggle", true
	case keymap.Mirror.Key:
		return "mirror", true
	case keymap.Recommend.Key:
		return "recommend", true
	case keymap.Reminder.Key:
		return "reminder", true
	case keymap.Analyze.Key:
		return "analyze", true
	case keymap.ScrollUp.Key, "ctrl+u":
		return "scroll_up", true
	case keymap.ScrollDown.Key, "ctrl+d":
		return "scroll_down", true
	case keymap.Writer.Key:
		return "writer", true
	}

	return "", false
}

// Reset clears any pending multi-key sequences.
func (ks *KeyState) Reset() {
	ks.WaitingG = false
	ks.LastKey = ""
}

// HelpItems returns a slice of key-description pairs for the help view.
func (k KeymapData) HelpItems() [][]string {
	return [][]string{
		{"Navigation", ""},
		{k.Up.Key + "/" + k.Down.Key, "Select previous/next item"},
		{"gg/" + k.Bottom.Key, "First/last item"},
		{"1/2/3", "Dashboard / Calendar / Tasks"},
		{k.NextTab.Key + "/" + k.PrevTab.Key, "Cycle tabs"},
		{"", ""},
		{"Calendar", ""},
		{k.Left.Key + "/" + k.Right.Key, "Previous/next month, week or day"},
		{k.Today.Key, "Jump to today"},
		{k.MonthView.Key + "/" + k.WeekView.Key + "/" + k.DayView.Key, "Month / week / day view"},
		{k.Sidebar.Key, "Toggle sidebar"},
		{k.Search.Key, "Search events"},
		{k.TaskEvents.Key, "Show/hide task events"},
		{k.Add.Key + "/" + k.Edit.Key + "/" + k.Delete.Key, "Add / edit / delete event"},
		{k.Copy.Key, "Copy event to clipboard"},
		{k.Summarize.Key, "Summarize event description"},
		{k.FocusBlocks.Key, "Add suggested focus blocks"},
		{k.ScrollUp.Key + "/" + k.ScrollDown.Key, "Scroll day and week hours"},
		{k.Writer.Key, "Improve event description with AI"},
		{"", ""},
		{"Tasks", ""},
		{k.Add.Key + "/" + k.Edit.Key + "/" + k.Delete.Key, "Add / edit / delete task"},
		{"space", "Complete/uncomplete task"},
		{k.Mirror.Key, "Add task to calendar"},
		{k.Reminder.Key, "Suggest a reminder time"},
		{k.Recommend.Key, "Recommend new tasks"},
		{k.Analyze.Key, "Analyze task patterns"},
		{"", ""},
		{"General", ""},
		{k.Help.Key, "Toggle help"},
		{k.Back.Key, "Go back / Cancel"},
		{k.Logout.Key, "Log out"},
		{k.Quit.Key, "Quit"},
	}
}
