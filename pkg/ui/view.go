package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ips/pkg/dhikr"
	"ips/pkg/inspiration"
	"ips/pkg/prayer"
	"ips/pkg/task"
)

const appTitle = " Islamic Productivity Suite "

func (m Model) headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
		Background(lipgloss.Color(m.styles.AccentColor)).
		Padding(0, 1)
}

func (m Model) mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.MutedTextColor))
}

// View renders the UI based on the current mode
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.renderTabs())
	sb.WriteString("\n")
	if banner := m.renderRinging(); banner != "" {
		sb.WriteString(banner)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	switch m.mode {
	case NormalMode:
		switch m.tab {
		case TasksTab:
			sb.WriteString(m.renderTasks())
		case AlarmsTab:
			sb.WriteString(m.renderAlarms())
		case TodayTab:
			sb.WriteString(m.renderToday())
		}

	case AddMode:
		sb.WriteString(m.headerStyle().Render(" Add New Task "))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderForm())

	case EditMode:
		sb.WriteString(m.headerStyle().Render(" Edit Task "))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderForm())

	case DeleteConfirmMode:
		sb.WriteString(m.headerStyle().
			Background(lipgloss.Color(m.styles.ErrorColor)).
			Render(" Delete "))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderDeleteConfirm())

	case SearchMode:
		sb.WriteString(m.headerStyle().Render(" Search Tasks "))
		sb.WriteString("\n\n")
		sb.WriteString(m.searchInput.View())
		sb.WriteString("\n\n")
		sb.WriteString(m.table.View())

	case SubtasksMode:
		sb.WriteString(m.renderSubtasks())

	case AlarmAddMode:
		sb.WriteString(m.headerStyle().Render(" Set Alarm "))
		sb.WriteString("\n\n")
		sb.WriteString("Alarm time:\n")
		sb.WriteString(m.alarmInput.View())

	case HelpViewMode:
		sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Available Commands"))
		sb.WriteString("\n\n")
		sb.WriteString(m.help.View(m.keyMap))
	}

	// Error message if any
	if m.err != nil {
		sb.WriteString("\n\n")
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.ErrorColor)).
			Render(fmt.Sprintf("Error: %v", m.err)))
	}

	sb.WriteString("\n\n")
	sb.WriteString(m.helpBar())

	return sb.String()
}

func (m Model) renderTabs() string {
	parts := []string{m.headerStyle().Render(appTitle)}
	for i, name := range tabNames {
		style := lipgloss.NewStyle().Padding(0, 1)
		if Tab(i) == m.tab {
			style = style.Bold(true).Underline(true).Foreground(lipgloss.Color(m.styles.AccentColor))
		} else {
			style = style.Foreground(lipgloss.Color(m.styles.MutedTextColor))
		}
		parts = append(parts, style.Render(name))
	}
	parts = append(parts, m.mutedStyle().Render(m.now.Format("15:04:05")))
	return strings.Join(parts, " ")
}

// renderRinging is the banner shown while any alarm is ringing
func (m Model) renderRinging() string {
	if len(m.ringing) == 0 {
		return ""
	}
	labels := make([]string, len(m.ringing))
	for i, a := range m.ringing {
		labels[i] = a.Label()
	}
	minutes := int(m.config.Alarm.SnoozeInterval().Minutes())
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("231")).
		Background(lipgloss.Color(m.styles.AlarmColor)).
		Padding(0, 1).
		Render(fmt.Sprintf("ALARM %s  |  %s: stop  |  %s: snooze (%d mins)",
			strings.Join(labels, ", "),
			m.keyMap.StopAlarms.Help().Key,
			m.keyMap.SnoozeAlarms.Help().Key,
			minutes))
}

func (m Model) renderTasks() string {
	var sb strings.Builder

	if len(m.rowIDs) == 0 {
		sb.WriteString(m.mutedStyle().Render("No tasks found."))
		sb.WriteString("\n")
	} else {
		sb.WriteString(m.table.View())
		sb.WriteString("\n")
	}

	if t, ok := m.selectedTask(); ok {
		sb.WriteString(m.priorityStyle(t.Priority).Render(fmt.Sprintf("%s priority", t.Priority)))
		sb.WriteString("  ")
		sb.WriteString(m.progress.ViewAs(float64(task.Progress(t)) / 100))
		sb.WriteString("\n")
	}

	stats := m.tasks.Statistics()
	info := fmt.Sprintf("Showing %d of %d | category: %s | priority: %s",
		len(m.items), stats.Total, m.filter.Category, m.filter.Priority)
	if m.filter.Search != "" {
		info += fmt.Sprintf(" | search: %s", m.filter.Search)
	}
	order := "asc"
	if m.sortOrder == task.SortDesc {
		order = "desc"
	}
	info += fmt.Sprintf(" | sorted by %s (%s)", m.sortBy, order)
	if m.groupBy != task.GroupByNone {
		info += fmt.Sprintf(", grouped by %s", task.GroupByNames[m.groupBy])
	}
	sb.WriteString(m.mutedStyle().Render(info))

	return sb.String()
}

func (m Model) renderAlarms() string {
	if len(m.alarmItems) == 0 {
		return m.mutedStyle().Render("No alarms set.")
	}
	return m.alarmTable.View()
}

func (m Model) renderToday() string {
	var sb strings.Builder
	section := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.styles.AccentColor))

	sb.WriteString(section.Render(m.now.Format("Monday, 2 January 2006")))
	sb.WriteString("  ")
	sb.WriteString(m.mutedStyle().Render(inspiration.HijriDate(m.now)))
	sb.WriteString("\n\n")

	location := ""
	if m.prayer != nil {
		location = " (" + m.prayer.Location() + ")"
	}
	sb.WriteString(section.Render("Prayer times" + location))
	sb.WriteString("\n")
	switch {
	case m.prayerErr != nil:
		sb.WriteString(m.mutedStyle().Render("Prayer times unavailable"))
	case m.timings == nil:
		sb.WriteString(m.mutedStyle().Render("Loading..."))
	default:
		var parts []string
		for _, name := range prayer.Names {
			if at, ok := m.timings[name]; ok {
				parts = append(parts, fmt.Sprintf("%s %s", name, at))
			}
		}
		sb.WriteString(strings.Join(parts, "  "))
	}
	sb.WriteString("\n\n")

	if m.dhikr != nil {
		count := m.dhikr.Count(m.dhikrKind)
		sb.WriteString(section.Render("Dhikr"))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s: %d/%d  ", m.dhikrKind, count, dhikr.Target))
		sb.WriteString(m.progress.ViewAs(float64(dhikr.Progress(count)) / 100))
		sb.WriteString("\n\n")
	}

	if m.tasks != nil {
		stats := m.tasks.Statistics()
		sb.WriteString(section.Render("Statistics"))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Total: %d  Completed: %d  Pending: %d", stats.Total, stats.Completed, stats.Pending()))
		sb.WriteString("\n\n")
	}

	sb.WriteString(section.Render("Verse of the day"))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Width(max(m.width-4, 40)).Render(m.verse))
	sb.WriteString("\n\n")

	if m.quote != "" {
		sb.WriteString(section.Render("Daily inspiration"))
		sb.WriteString("\n")
		sb.WriteString(m.quote)
	}

	return sb.String()
}

func (m Model) renderSubtasks() string {
	var sb strings.Builder

	t, err := m.tasks.Get(m.editingID)
	if err != nil {
		return ""
	}

	sb.WriteString(m.headerStyle().Render(" " + t.Text + " "))
	sb.WriteString("\n\n")
	for i, s := range t.Subtasks {
		cursor := "  "
		if i == m.subtaskCursor {
			cursor = "> "
		}
		mark := "[ ]"
		if s.Completed {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s%s %s", cursor, mark, s.Text)
		if i == m.subtaskCursor {
			line = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.styles.AccentColor)).Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.progress.ViewAs(float64(task.Progress(t)) / 100))

	return sb.String()
}

func (m Model) renderDeleteConfirm() string {
	var sb strings.Builder

	if m.deleteAlarm {
		label := ""
		for _, a := range m.alarmItems {
			if a.ID == m.editingID {
				label = a.Label()
			}
		}
		sb.WriteString(fmt.Sprintf("Are you sure you want to delete the %s alarm?\n\n", label))
	} else {
		t, err := m.tasks.Get(m.editingID)
		if err != nil {
			return ""
		}
		sb.WriteString("Are you sure you want to delete this task?\n\n")
		sb.WriteString(fmt.Sprintf("Task: %s\n", t.Text))
		sb.WriteString(fmt.Sprintf("Category: %s\n\n", t.Category))
	}
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Press Y to confirm, N to cancel"))

	return sb.String()
}

// helpBar renders a sleek status bar with available actions
func (m Model) helpBar() string {
	var actions []string

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.AccentColor)).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.NormalTextColor))
	separator := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.BorderColor)).
		Render(" • ")

	addAction := func(k, desc string) {
		actions = append(actions, fmt.Sprintf("%s %s", keyStyle.Render(k), descStyle.Render(desc)))
	}
	km := m.keyMap

	switch m.mode {
	case NormalMode:
		switch m.tab {
		case TasksTab:
			addAction(km.AddItem.Help().Key, "add")
			addAction(km.EditTask.Help().Key, "edit")
			addAction(km.DeleteItem.Help().Key, "del")
			addAction(km.ToggleStatus.Help().Key, "toggle")
			addAction(km.OpenSubtasks.Help().Key, "subtasks")
			addAction(km.SearchTasks.Help().Key, "search")
			addAction(km.CycleCategory.Help().Key+"/"+km.CyclePriority.Help().Key, "filter")
		case AlarmsTab:
			addAction(km.AddItem.Help().Key, "add alarm")
			addAction(km.ToggleStatus.Help().Key, "on/off")
			addAction(km.DeleteItem.Help().Key, "del")
		case TodayTab:
			addAction(km.IncrementDhikr.Help().Key, "dhikr")
			addAction(km.ResetDhikr.Help().Key, "reset")
			addAction(km.Refresh.Help().Key, "refresh")
		}
		addAction(km.NextTab.Help().Key, "next tab")
		addAction(km.ShowHelp.Help().Key, "help")
		addAction(km.QuitApp.Help().Key, "quit")

	case AddMode, EditMode:
		addAction("tab", "next field")
		addAction("enter", "next/save")
		addAction("ctrl+s", "save")
		addAction("esc", "cancel")

	case DeleteConfirmMode:
		addAction("y", "confirm")
		addAction("n", "cancel")

	case SearchMode:
		addAction("enter", "keep")
		addAction("esc", "clear")

	case SubtasksMode:
		addAction("↑/↓", "move")
		addAction(km.ToggleStatus.Help().Key, "toggle")
		addAction("esc", "back")

	case AlarmAddMode:
		addAction("enter", "set")
		addAction("esc", "cancel")

	case HelpViewMode:
		addAction(km.ShowHelp.Help().Key+"/esc", "back")
		addAction(km.QuitApp.Help().Key, "quit")
	}

	return strings.Join(actions, separator)
}

// renderForm renders the input form for adding/editing tasks
func (m Model) renderForm() string {
	var sb strings.Builder

	labels := []string{
		"Task:",
		"Category:",
		"Priority:",
		"Due date (YYYY-MM-DD):",
		"Subtasks (comma separated):",
	}
	for i, label := range labels {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(label)
		sb.WriteString("\n")
		sb.WriteString(m.inputs[i].View())
	}

	return sb.String()
}
