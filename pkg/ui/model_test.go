package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ips/pkg/alarm"
	"ips/pkg/config"
	"ips/pkg/database"
	"ips/pkg/dhikr"
	"ips/pkg/task"
)

func at(hour, minute, second int) time.Time {
	return time.Date(2026, 3, 1, hour, minute, second, 0, time.UTC)
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	kv := database.NewMemoryStore()
	clock := func() time.Time { return at(6, 0, 0) }
	deps := Deps{
		Tasks:  task.NewStore(kv, task.WithClock(clock)),
		Alarms: alarm.NewScheduler(kv),
		Dhikr:  dhikr.NewCounter(kv),
		Quote:  "quote",
		Clock:  clock,
	}
	cfg := config.Config{Alarm: config.AlarmConfig{SnoozeMinutes: 5}}
	return NewModel(deps, cfg, config.DefaultStyles())
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

// addTask walks through the add form
func addTask(t *testing.T, m Model, fields ...string) Model {
	t.Helper()
	m = send(t, m, keys("a"))
	require.Equal(t, AddMode, m.mode)
	for i := 0; i < fieldCount; i++ {
		if i < len(fields) && fields[i] != "" {
			m = send(t, m, keys(fields[i]))
		}
		m = send(t, m, enter)
	}
	return m
}

func TestAddTaskThroughForm(t *testing.T) {
	m := newTestModel(t)
	m = addTask(t, m, "Read Quran", "Quran Reading", "high", "", "Juz 1, Juz 2")

	assert.Equal(t, NormalMode, m.mode)
	require.Len(t, m.items, 1)
	got := m.items[0]
	assert.Equal(t, "Read Quran", got.Text)
	assert.Equal(t, task.CategoryQuran, got.Category)
	assert.Equal(t, task.PriorityHigh, got.Priority)
	assert.Len(t, got.Subtasks, 2)
	assert.Contains(t, m.View(), "Read Quran")
}

func TestAddTaskValidationKeepsForm(t *testing.T) {
	m := newTestModel(t)
	m = addTask(t, m, "Pray", "", "", "tomorrow")

	assert.Equal(t, AddMode, m.mode)
	assert.ErrorIs(t, m.err, task.ErrInvalidDueDate)
	assert.Empty(t, m.tasks.All())

	m = send(t, m, esc)
	assert.Equal(t, NormalMode, m.mode)
	assert.NoError(t, m.err)
}

func TestToggleAndSubtasks(t *testing.T) {
	m := newTestModel(t)
	m = addTask(t, m, "Read Quran", "", "", "", "Juz 1, Juz 2")

	m = send(t, m, enter)
	require.Equal(t, SubtasksMode, m.mode)
	m = send(t, m, space)
	assert.Equal(t, 50, task.Progress(m.tasks.All()[0]))

	m = send(t, m, down, space, esc)
	assert.Equal(t, NormalMode, m.mode)
	assert.Equal(t, 100, task.Progress(m.tasks.All()[0]))
	assert.False(t, m.tasks.All()[0].Completed)

	m = send(t, m, space)
	assert.True(t, m.tasks.All()[0].Completed)
}

func TestEditTask(t *testing.T) {
	m := newTestModel(t)
	m = addTask(t, m, "Pray", "", "", "", "")

	m = send(t, m, keys("e"))
	require.Equal(t, EditMode, m.mode)
	assert.Equal(t, "Pray", m.inputs[fieldText].Value())
	assert.Equal(t, "Prayer", m.inputs[fieldCategory].Value())

	m = send(t, m, keys(" Isha"), tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, NormalMode, m.mode)
	assert.Equal(t, "Pray Isha", m.tasks.All()[0].Text)
}

func TestDeleteTaskConfirm(t *testing.T) {
	m := newTestModel(t)
	m = addTask(t, m, "Pray", "", "", "", "")

	m = send(t, m, keys("d"))
	require.Equal(t, DeleteConfirmMode, m.mode)
	m = send(t, m, keys("n"))
	assert.Len(t, m.tasks.All(), 1)

	m = send(t, m, keys("d"), keys("y"))
	assert.Equal(t, NormalMode, m.mode)
	assert.Empty(t, m.tasks.All())
	assert.Contains(t, m.View(), "No tasks found.")
}

func TestFiltersAndSearch(t *testing.T) {
	m := newTestModel(t)
	m = addTask(t, m, "Pray Fajr", "", "", "", "")
	m = addTask(t, m, "Finish report", "Work", "high", "", "")

	m = send(t, m, keys("c"))
	assert.Equal(t, "Prayer", m.filter.Category)
	assert.Len(t, m.items, 1)

	m = send(t, m, keys("c"), keys("c"), keys("c"), keys("c"))
	assert.Equal(t, "Work", m.filter.Category)
	require.Len(t, m.items, 1)
	assert.Equal(t, "Finish report", m.items[0].Text)

	m = send(t, m, keys("x"), keys("/"))
	require.Equal(t, SearchMode, m.mode)
	m = send(t, m, keys("FAJR"))
	require.Len(t, m.items, 1)
	assert.Equal(t, "Pray Fajr", m.items[0].Text)

	m = send(t, m, esc)
	assert.Len(t, m.items, 2)
}

func TestAlarmRingsOnTickAndSnoozes(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tab)
	require.Equal(t, AlarmsTab, m.tab)

	m = send(t, m, keys("a"), keys("07:30"), enter)
	assert.Equal(t, NormalMode, m.mode)
	require.Len(t, m.alarmItems, 1)

	next, cmd := m.Update(tickMsg(at(7, 30, 0)))
	m = next.(Model)
	assert.NotNil(t, cmd, "the tick chain continues")
	require.Len(t, m.ringing, 1)
	assert.Contains(t, m.View(), "ALARM 07:30")

	m = send(t, m, tickMsg(at(7, 30, 1)))
	assert.Len(t, m.ringing, 1)

	m = send(t, m, keys("z"))
	assert.Empty(t, m.ringing)
	assert.Equal(t, "07:35", m.alarmItems[0].Label())

	m = send(t, m, tickMsg(at(7, 30, 30)))
	assert.Empty(t, m.ringing)

	m = send(t, m, tickMsg(at(7, 35, 0)), keys("S"))
	assert.Empty(t, m.ringing)
	assert.False(t, m.alarmItems[0].IsTriggered)
}

func TestFirstAlarmIsSelectable(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tab, keys("a"), keys("07:30"), enter)
	require.Len(t, m.alarmItems, 1)

	a, ok := m.selectedAlarm()
	require.True(t, ok)
	assert.Equal(t, "07:30", a.Label())

	m = send(t, m, space)
	assert.False(t, m.alarms.All()[0].IsActive)

	m = send(t, m, keys("d"), keys("y"))
	assert.Empty(t, m.alarms.All())

	m = send(t, m, keys("a"), keys("08:00"), enter)
	_, ok = m.selectedAlarm()
	assert.True(t, ok, "cursor comes back after the table was emptied")
}

func TestTaskSelectableAfterDeletingLast(t *testing.T) {
	m := newTestModel(t)
	_, ok := m.selectedTask()
	assert.False(t, ok)

	m = addTask(t, m, "Pray", "", "", "", "")
	m = send(t, m, keys("d"), keys("y"))
	require.Empty(t, m.tasks.All())

	m = addTask(t, m, "Read", "", "", "", "")
	got, ok := m.selectedTask()
	require.True(t, ok)
	assert.Equal(t, "Read", got.Text)

	m = send(t, m, space)
	assert.True(t, m.tasks.All()[0].Completed)
}

func TestAlarmInvalidTime(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tab, keys("a"), enter)

	assert.Equal(t, AlarmAddMode, m.mode)
	assert.ErrorIs(t, m.err, alarm.ErrInvalidTime)
	assert.Empty(t, m.alarms.All())
}

func TestTodayTabDhikr(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tab, tab)
	require.Equal(t, TodayTab, m.tab)

	m = send(t, m, keys("+"), keys("+"), keys("+"))
	assert.Equal(t, 3, m.dhikr.Count(dhikr.Subhanallah))
	assert.Contains(t, m.View(), "subhanallah: 3/100")

	m = send(t, m, prayerMsg{timings: map[string]string{"Fajr": "05:00"}})
	assert.Contains(t, m.View(), "Fajr 05:00")

	m = send(t, m, verseMsg{text: `"Read" - Quran Al-Alaq Ayah 1`})
	assert.Contains(t, m.View(), "Al-Alaq")

	m = send(t, m, keys("0"))
	assert.Equal(t, 0, m.dhikr.Count(dhikr.Subhanallah))
}

func TestHelpAndQuit(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keys("?"))
	assert.Equal(t, HelpViewMode, m.mode)
	assert.Contains(t, m.View(), "Available Commands")

	m = send(t, m, esc)
	assert.Equal(t, NormalMode, m.mode)

	_, cmd := m.Update(keys("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
