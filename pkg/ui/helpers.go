package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"ips/pkg/alarm"
	"ips/pkg/task"
	"ips/pkg/utils"
)

// loadTasks rebuilds the task table from the store using the current
// filter, sort and grouping
func (m *Model) loadTasks() {
	if m.tasks == nil {
		return
	}

	m.items = m.tasks.Filter(m.filter)
	groups := task.GroupTasks(m.items, m.groupBy, m.sortBy, m.sortOrder)

	rows := []table.Row{}
	ids := []int64{}
	for gi, group := range groups {
		if m.groupBy != task.GroupByNone {
			if gi > 0 {
				rows = append(rows, table.Row{"", "", "", "", "", ""})
				ids = append(ids, 0)
			}
			rows = append(rows, table.Row{"", fmt.Sprintf("== %s ==", group.Name), "", "", "", ""})
			ids = append(ids, 0)
		}

		for _, t := range group.Tasks {
			status := "[ ]"
			if t.Completed {
				status = "[x]"
			}
			text := t.Text
			if n := len(t.Subtasks); n > 0 {
				text = fmt.Sprintf("%s (%d/%d)", text, doneSubtasks(t), n)
			}
			rows = append(rows, table.Row{
				status,
				text,
				string(t.Category),
				string(t.Priority),
				t.DueDate,
				fmt.Sprintf("%d%%", task.Progress(t)),
			})
			ids = append(ids, t.ID)
		}
	}

	m.rowIDs = ids
	m.table.SetRows(rows)
	clampCursor(&m.table, len(rows))
}

// clampCursor keeps the cursor on a row. An empty table leaves it at -1, so
// it is pulled back as soon as rows exist again.
func clampCursor(t *table.Model, rows int) {
	if rows == 0 {
		return
	}
	if c := t.Cursor(); c < 0 || c >= rows {
		t.SetCursor(min(max(c, 0), rows-1))
	}
}

func doneSubtasks(t task.Task) int {
	n := 0
	for _, s := range t.Subtasks {
		if s.Completed {
			n++
		}
	}
	return n
}

// selectedTask returns the task under the cursor, if the cursor is on one
func (m *Model) selectedTask() (task.Task, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rowIDs) || m.rowIDs[idx] == 0 {
		return task.Task{}, false
	}
	t, err := m.tasks.Get(m.rowIDs[idx])
	if err != nil {
		return task.Task{}, false
	}
	return t, true
}

// loadAlarms rebuilds the alarm table and the ringing list
func (m *Model) loadAlarms() {
	if m.alarms == nil {
		return
	}

	m.alarmItems = m.alarms.All()
	m.ringing = m.alarms.Ringing()

	rows := []table.Row{}
	for _, a := range m.alarmItems {
		active := "off"
		if a.IsActive {
			active = "on"
		}
		state := "waiting"
		if a.Ringing() {
			state = "RINGING"
		} else if !a.IsActive {
			state = "-"
		}
		rows = append(rows, table.Row{a.Label(), a.Time.Format("2006-01-02"), active, state})
	}
	m.alarmTable.SetRows(rows)
	clampCursor(&m.alarmTable, len(rows))
}

func (m *Model) selectedAlarm() (alarm.Alarm, bool) {
	idx := m.alarmTable.Cursor()
	if idx < 0 || idx >= len(m.alarmItems) {
		return alarm.Alarm{}, false
	}
	return m.alarmItems[idx], true
}

// focusInput moves focus to field i of the task form
func (m *Model) focusInput(i int) {
	m.inputs[m.activeInput].Blur()
	m.activeInput = (i + fieldCount) % fieldCount
	m.inputs[m.activeInput].Focus()
}

func (m *Model) focusNextInput() {
	m.focusInput(m.activeInput + 1)
}

func (m *Model) focusPreviousInput() {
	m.focusInput(m.activeInput - 1)
}

func (m *Model) draft() task.Draft {
	return task.Draft{
		Text:     m.inputs[fieldText].Value(),
		Category: m.inputs[fieldCategory].Value(),
		Priority: m.inputs[fieldPriority].Value(),
		DueDate:  m.inputs[fieldDueDate].Value(),
		Subtasks: m.inputs[fieldSubtasks].Value(),
	}
}

// startEdit fills the form from the selected task
func (m *Model) startEdit(t task.Task) {
	m.mode = EditMode
	m.editingID = t.ID
	m.resetInputs()

	d := task.DraftFrom(t)
	m.inputs[fieldText].SetValue(d.Text)
	m.inputs[fieldCategory].SetValue(d.Category)
	m.inputs[fieldPriority].SetValue(d.Priority)
	m.inputs[fieldDueDate].SetValue(d.DueDate)
	m.inputs[fieldSubtasks].SetValue(d.Subtasks)
}

// submitForm saves the form. Validation errors keep the form open.
func (m *Model) submitForm() {
	var err error
	switch m.mode {
	case AddMode:
		_, err = m.tasks.Add(m.draft())
	case EditMode:
		_, err = m.tasks.Edit(m.editingID, m.draft())
		if errors.Is(err, task.ErrNotFound) {
			err = nil
		}
	}
	if err != nil {
		utils.Log("Task form rejected: %v", err)
		m.err = err
		return
	}

	m.mode = NormalMode
	m.editingID = 0
	m.resetInputs()
	m.loadTasks()
}

func (m *Model) submitAlarm() {
	if _, err := m.alarms.Add(m.alarmInput.Value(), m.clock()); err != nil {
		m.err = fmt.Errorf("%w: use HH:MM", err)
		return
	}
	m.err = nil
	m.mode = NormalMode
	m.alarmInput.Reset()
	m.alarmInput.Blur()
	m.loadAlarms()
}

// cycle returns the value after current in options, wrapping around
func cycle(options []string, current string) string {
	for i, o := range options {
		if strings.EqualFold(o, current) {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func categoryOptions() []string {
	out := []string{task.All}
	for _, c := range task.Categories {
		out = append(out, string(c))
	}
	return out
}

func priorityOptions() []string {
	out := []string{task.All}
	for _, p := range task.Priorities {
		out = append(out, string(p))
	}
	return out
}

func (m Model) priorityStyle(p task.Priority) lipgloss.Style {
	color := m.styles.LowPriorityColor
	switch p {
	case task.PriorityHigh:
		color = m.styles.HighPriorityColor
	case task.PriorityMedium:
		color = m.styles.MediumPriorityColor
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
