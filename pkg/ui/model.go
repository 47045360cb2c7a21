package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ips/pkg/alarm"
	"ips/pkg/config"
	"ips/pkg/dhikr"
	"ips/pkg/inspiration"
	"ips/pkg/keymaps"
	"ips/pkg/prayer"
	"ips/pkg/task"
)

// Tab is one of the top-level screens
type Tab int

const (
	TasksTab Tab = iota
	AlarmsTab
	TodayTab
)

var tabNames = []string{"Tasks", "Alarms", "Today"}

// InputMode represents the current input mode
type InputMode int

const (
	NormalMode InputMode = iota
	AddMode
	EditMode
	DeleteConfirmMode
	SearchMode
	SubtasksMode
	AlarmAddMode
	HelpViewMode
)

// task form fields, in focus order
const (
	fieldText = iota
	fieldCategory
	fieldPriority
	fieldDueDate
	fieldSubtasks
	fieldCount
)

// Deps are the services the UI drives. Prayer and Verses may be nil.
type Deps struct {
	Tasks  *task.Store
	Alarms *alarm.Scheduler
	Dhikr  *dhikr.Counter
	Prayer *prayer.Client
	Verses *inspiration.Client
	Quote  string
	Clock  func() time.Time
}

// Model represents the application state
type Model struct {
	table      table.Model
	alarmTable table.Model
	items      []task.Task
	rowIDs     []int64 // task id per table row, 0 for group headers
	alarmItems []alarm.Alarm
	width      int
	height     int
	err        error

	// Services
	tasks  *task.Store
	alarms *alarm.Scheduler
	dhikr  *dhikr.Counter
	prayer *prayer.Client
	verses *inspiration.Client
	clock  func() time.Time

	// Configuration
	config config.Config
	styles config.Styles
	keyMap keymaps.KeyMap
	help   help.Model

	// View state
	tab       Tab
	filter    task.Filter
	sortBy    task.SortBy
	groupBy   task.GroupBy
	sortOrder task.SortOrder

	// Form state
	mode        InputMode
	inputs      []textinput.Model
	activeInput int
	searchInput textinput.Model
	alarmInput  textinput.Model

	// Edit/delete/subtask target
	editingID     int64
	deleteAlarm   bool
	subtaskCursor int

	// Today tab and alarm state
	now       time.Time
	ringing   []alarm.Alarm
	timings   prayer.Timings
	prayerErr error
	verse     string
	quote     string
	dhikrKind string
	progress  progress.Model
}

func newTable(columns []table.Column, styles config.Styles) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.BorderColor)).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(styles.SelectedTextColor)).
		Background(lipgloss.Color(styles.SelectedBgColor)).
		Bold(true)
	t.SetStyles(s)

	// only arrow-style navigation so letters stay free for actions
	t.KeyMap = table.KeyMap{
		LineUp:     key.NewBinding(key.WithKeys("up", "k")),
		LineDown:   key.NewBinding(key.WithKeys("down", "j")),
		PageUp:     key.NewBinding(key.WithKeys("pgup")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown")),
		GotoTop:    key.NewBinding(key.WithKeys("home")),
		GotoBottom: key.NewBinding(key.WithKeys("end")),
	}
	return t
}

func newInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Width = 48
	return in
}

// NewModel creates a new UI model with the provided services and configuration
func NewModel(deps Deps, cfg config.Config, styles config.Styles) Model {
	taskTable := newTable([]table.Column{
		{Title: "", Width: 3},
		{Title: "Task", Width: 36},
		{Title: "Category", Width: 14},
		{Title: "Priority", Width: 8},
		{Title: "Due", Width: 10},
		{Title: "Progress", Width: 8},
	}, styles)

	alarmTable := newTable([]table.Column{
		{Title: "Time", Width: 6},
		{Title: "Date", Width: 10},
		{Title: "Active", Width: 6},
		{Title: "State", Width: 10},
	}, styles)

	inputs := make([]textinput.Model, fieldCount)
	inputs[fieldText] = newInput("What needs doing?")
	inputs[fieldCategory] = newInput("Prayer, Quran Reading, Fasting, Charity, Work, Personal")
	inputs[fieldPriority] = newInput("low, medium, high")
	inputs[fieldDueDate] = newInput("YYYY-MM-DD (optional)")
	inputs[fieldSubtasks] = newInput("comma separated (optional)")

	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	m := Model{
		table:       taskTable,
		alarmTable:  alarmTable,
		tasks:       deps.Tasks,
		alarms:      deps.Alarms,
		dhikr:       deps.Dhikr,
		prayer:      deps.Prayer,
		verses:      deps.Verses,
		clock:       clock,
		config:      cfg,
		styles:      styles,
		keyMap:      keymaps.BuildKeyMap(cfg.KeyMap),
		help:        help.New(),
		tab:         TasksTab,
		filter:      task.Filter{Category: task.All, Priority: task.All},
		mode:        NormalMode,
		inputs:      inputs,
		searchInput: newInput("Search tasks"),
		alarmInput:  newInput("HH:MM or YYYY-MM-DDTHH:MM"),
		now:         clock(),
		verse:       "Loading verse...",
		quote:       deps.Quote,
		dhikrKind:   dhikr.Subhanallah,
		progress:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}
	m.help.ShowAll = true

	m.loadTasks()
	m.loadAlarms()

	return m
}

// Init starts the clock and the background fetches
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.fetchPrayerCmd(), m.fetchVerseCmd())
}

// resetInputs clears all form inputs and focuses the first one
func (m *Model) resetInputs() {
	for i := range m.inputs {
		m.inputs[i].Reset()
		m.inputs[i].Blur()
	}
	m.activeInput = fieldText
	m.inputs[fieldText].Focus()
	m.err = nil
}
