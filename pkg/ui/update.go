package ui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"ips/pkg/alarm"
	"ips/pkg/task"
	"ips/pkg/utils"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		m.onTick(time.Time(msg))
		return m, tickCmd()

	case prayerMsg:
		m.timings, m.prayerErr = msg.timings, msg.err
		return m, nil

	case verseMsg:
		m.verse = msg.text
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case NormalMode:
			handled, quit, c := m.handleNormalKey(msg)
			if quit {
				return m, tea.Quit
			}
			if c != nil {
				cmds = append(cmds, c)
			}
			if handled {
				return m, tea.Batch(cmds...)
			}

		case AddMode, EditMode:
			switch msg.Type {
			case tea.KeyEsc:
				m.mode = NormalMode
				m.editingID = 0
				m.resetInputs()
				return m, nil
			case tea.KeyTab, tea.KeyDown:
				m.focusNextInput()
				return m, nil
			case tea.KeyShiftTab, tea.KeyUp:
				m.focusPreviousInput()
				return m, nil
			case tea.KeyEnter:
				if m.activeInput == fieldCount-1 {
					m.submitForm()
				} else {
					m.focusNextInput()
				}
				return m, nil
			case tea.KeyCtrlS:
				m.submitForm()
				return m, nil
			}

			m.inputs[m.activeInput], cmd = m.inputs[m.activeInput].Update(msg)
			return m, cmd

		case SearchMode:
			switch msg.Type {
			case tea.KeyEsc:
				m.mode = NormalMode
				m.searchInput.Blur()
				m.searchInput.SetValue("")
				m.filter.Search = ""
				m.loadTasks()
				return m, nil
			case tea.KeyEnter:
				m.mode = NormalMode
				m.searchInput.Blur()
				utils.Log("Searching for: %s", m.filter.Search)
				return m, nil
			}

			// results update as the user types
			m.searchInput, cmd = m.searchInput.Update(msg)
			m.filter.Search = m.searchInput.Value()
			m.loadTasks()
			return m, cmd

		case AlarmAddMode:
			switch msg.Type {
			case tea.KeyEsc:
				m.mode = NormalMode
				m.err = nil
				m.alarmInput.Reset()
				m.alarmInput.Blur()
				return m, nil
			case tea.KeyEnter:
				m.submitAlarm()
				return m, nil
			}

			m.alarmInput, cmd = m.alarmInput.Update(msg)
			return m, cmd

		case SubtasksMode:
			m.handleSubtaskKey(msg)
			return m, nil

		case DeleteConfirmMode:
			switch msg.String() {
			case "y", "Y":
				m.confirmDelete()
				m.mode = NormalMode
				m.editingID = 0
			case "n", "N", "esc":
				m.mode = NormalMode
				m.editingID = 0
			}
			return m, nil

		case HelpViewMode:
			if msg.Type == tea.KeyEsc || key.Matches(msg, m.keyMap.ShowHelp) {
				m.mode = NormalMode
			} else if key.Matches(msg, m.keyMap.QuitApp) {
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetWidth(msg.Width - 4)
		m.table.SetHeight(max(msg.Height-10, 3))
		m.alarmTable.SetWidth(msg.Width - 4)
		m.alarmTable.SetHeight(max(msg.Height-10, 3))
	}

	// Only move the table cursor in normal mode
	if m.mode == NormalMode {
		switch m.tab {
		case TasksTab:
			m.table, cmd = m.table.Update(msg)
			cmds = append(cmds, cmd)
		case AlarmsTab:
			m.alarmTable, cmd = m.alarmTable.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// onTick advances the clock and lets the scheduler decide what rings
func (m *Model) onTick(now time.Time) {
	if m.alarms == nil {
		m.now = now
		return
	}
	m.now = now
	if fired := m.alarms.Tick(now); len(fired) > 0 {
		m.loadAlarms()
		return
	}
	m.ringing = m.alarms.Ringing()
}

// handleNormalKey processes keys outside of forms. handled means the key
// must not also reach the table.
func (m *Model) handleNormalKey(msg tea.KeyMsg) (handled, quit bool, cmd tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.QuitApp):
		return true, true, nil

	case key.Matches(msg, m.keyMap.ShowHelp):
		m.mode = HelpViewMode
		return true, false, nil

	case key.Matches(msg, m.keyMap.NextTab):
		m.tab = (m.tab + 1) % Tab(len(tabNames))
		m.err = nil
		return true, false, nil

	case key.Matches(msg, m.keyMap.PrevTab):
		m.tab = (m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))
		m.err = nil
		return true, false, nil

	case key.Matches(msg, m.keyMap.StopAlarms) && len(m.ringing) > 0:
		if err := m.alarms.StopAll(); err != nil {
			m.err = err
		}
		m.loadAlarms()
		return true, false, nil

	case key.Matches(msg, m.keyMap.SnoozeAlarms) && len(m.ringing) > 0:
		if _, err := m.alarms.SnoozeAll(m.config.Alarm.SnoozeInterval()); err != nil {
			m.err = err
		}
		m.loadAlarms()
		return true, false, nil
	}

	switch m.tab {
	case TasksTab:
		return m.handleTaskKey(msg), false, nil
	case AlarmsTab:
		return m.handleAlarmKey(msg), false, nil
	case TodayTab:
		handled, cmd := m.handleTodayKey(msg)
		return handled, false, cmd
	}
	return false, false, nil
}

func (m *Model) handleTaskKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keyMap.ToggleStatus):
		if t, ok := m.selectedTask(); ok {
			if _, err := m.tasks.Toggle(t.ID); err != nil && !errors.Is(err, task.ErrNotFound) {
				m.err = err
			}
			m.loadTasks()
		}

	case key.Matches(msg, m.keyMap.OpenSubtasks):
		if t, ok := m.selectedTask(); ok && len(t.Subtasks) > 0 {
			m.mode = SubtasksMode
			m.editingID = t.ID
			m.subtaskCursor = 0
		}

	case key.Matches(msg, m.keyMap.AddItem):
		m.mode = AddMode
		m.editingID = 0
		m.resetInputs()

	case key.Matches(msg, m.keyMap.EditTask):
		if t, ok := m.selectedTask(); ok {
			m.startEdit(t)
		}

	case key.Matches(msg, m.keyMap.DeleteItem):
		if t, ok := m.selectedTask(); ok {
			m.mode = DeleteConfirmMode
			m.deleteAlarm = false
			m.editingID = t.ID
		}

	case key.Matches(msg, m.keyMap.SearchTasks):
		m.mode = SearchMode
		m.searchInput.SetValue(m.filter.Search)
		m.searchInput.Focus()

	case key.Matches(msg, m.keyMap.CycleCategory):
		m.filter.Category = cycle(categoryOptions(), m.filter.Category)
		m.loadTasks()

	case key.Matches(msg, m.keyMap.CyclePriority):
		m.filter.Priority = cycle(priorityOptions(), m.filter.Priority)
		m.loadTasks()

	case key.Matches(msg, m.keyMap.ClearFilters):
		m.filter = task.Filter{Category: task.All, Priority: task.All}
		m.searchInput.SetValue("")
		m.loadTasks()

	case key.Matches(msg, m.keyMap.ToggleSortBy):
		m.sortBy = (m.sortBy + 1) % task.SortBy(len(task.SortByNames))
		m.loadTasks()

	case key.Matches(msg, m.keyMap.ToggleGroupBy):
		m.groupBy = (m.groupBy + 1) % task.GroupBy(len(task.GroupByNames))
		m.loadTasks()

	case key.Matches(msg, m.keyMap.ToggleSortOrder):
		if m.sortOrder == task.SortAsc {
			m.sortOrder = task.SortDesc
		} else {
			m.sortOrder = task.SortAsc
		}
		m.loadTasks()

	default:
		return false
	}
	return true
}

func (m *Model) handleAlarmKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keyMap.AddItem):
		m.mode = AlarmAddMode
		m.err = nil
		m.alarmInput.Reset()
		m.alarmInput.Focus()

	case key.Matches(msg, m.keyMap.ToggleStatus):
		if a, ok := m.selectedAlarm(); ok {
			if _, err := m.alarms.ToggleActive(a.ID); err != nil && !errors.Is(err, alarm.ErrNotFound) {
				m.err = err
			}
			m.loadAlarms()
		}

	case key.Matches(msg, m.keyMap.DeleteItem):
		if a, ok := m.selectedAlarm(); ok {
			m.mode = DeleteConfirmMode
			m.deleteAlarm = true
			m.editingID = a.ID
		}

	default:
		return false
	}
	return true
}

func (m *Model) handleTodayKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.IncrementDhikr):
		if _, err := m.dhikr.Increment(m.dhikrKind); err != nil {
			m.err = err
		}

	case key.Matches(msg, m.keyMap.ResetDhikr):
		if err := m.dhikr.Reset(m.dhikrKind); err != nil {
			m.err = err
		}

	case key.Matches(msg, m.keyMap.Refresh):
		m.verse = "Loading verse..."
		return true, tea.Batch(m.fetchPrayerCmd(), m.fetchVerseCmd())

	default:
		return false, nil
	}
	return true, nil
}

func (m *Model) handleSubtaskKey(msg tea.KeyMsg) {
	t, err := m.tasks.Get(m.editingID)
	if err != nil {
		m.mode = NormalMode
		m.editingID = 0
		return
	}

	switch {
	case msg.Type == tea.KeyEsc, key.Matches(msg, m.keyMap.OpenSubtasks):
		m.mode = NormalMode
		m.editingID = 0
		m.loadTasks()

	case msg.String() == "up", msg.String() == "k":
		if m.subtaskCursor > 0 {
			m.subtaskCursor--
		}

	case msg.String() == "down", msg.String() == "j":
		if m.subtaskCursor < len(t.Subtasks)-1 {
			m.subtaskCursor++
		}

	case key.Matches(msg, m.keyMap.ToggleStatus):
		if _, err := m.tasks.ToggleSubtask(t.ID, m.subtaskCursor); err != nil {
			m.err = err
		}
		m.loadTasks()
	}
}

func (m *Model) confirmDelete() {
	if m.deleteAlarm {
		utils.Log("Deleting alarm ID: %d", m.editingID)
		if err := m.alarms.Delete(m.editingID); err != nil {
			m.err = err
		}
		m.loadAlarms()
		return
	}

	utils.Log("Deleting task ID: %d", m.editingID)
	if err := m.tasks.Delete(m.editingID); err != nil {
		m.err = err
	}
	m.loadTasks()
}
