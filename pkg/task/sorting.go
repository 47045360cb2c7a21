package task

import (
	"sort"
	"strings"
)

// SortBy represents the field tasks are sorted on
type SortBy int

const (
	SortByCreated SortBy = iota
	SortByDueDate
	SortByPriority
	SortByText
	SortByCategory
	SortByStatus
)

// SortByNames is indexed by SortBy
var SortByNames = []string{"created", "due date", "priority", "text", "category", "status"}

func (s SortBy) String() string {
	if int(s) < len(SortByNames) {
		return SortByNames[s]
	}
	return "unknown"
}

// SortOrder represents ascending or descending order
type SortOrder int

const (
	SortAsc SortOrder = iota
	SortDesc
)

// GroupBy represents how tasks are grouped for display
type GroupBy int

const (
	GroupByNone GroupBy = iota
	GroupByCategory
	GroupByPriority
	GroupByDueDate
)

// GroupByNames is indexed by GroupBy
var GroupByNames = []string{"", "category", "priority", "due date"}

// Group is a named run of tasks
type Group struct {
	Name  string
	Tasks []Task
}

func priorityRank(p Priority) int {
	for i, candidate := range Priorities {
		if candidate == p {
			return i
		}
	}
	return -1
}

func categoryRank(c Category) int {
	for i, candidate := range Categories {
		if candidate == c {
			return i
		}
	}
	return len(Categories)
}

// Sort returns a sorted copy of tasks. The sort is stable so equal tasks
// keep their collection order.
func Sort(tasks []Task, by SortBy, order SortOrder) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)

	less := func(a, b Task) bool {
		switch by {
		case SortByDueDate:
			// tasks without a due date go last
			if a.DueDate == "" || b.DueDate == "" {
				return a.DueDate != "" && b.DueDate == ""
			}
			return a.DueDate < b.DueDate
		case SortByPriority:
			return priorityRank(a.Priority) > priorityRank(b.Priority)
		case SortByText:
			return strings.ToLower(a.Text) < strings.ToLower(b.Text)
		case SortByCategory:
			return categoryRank(a.Category) < categoryRank(b.Category)
		case SortByStatus:
			return !a.Completed && b.Completed // Undone first
		default:
			return a.ID < b.ID
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if order == SortDesc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})

	return sorted
}

// GroupTasks splits tasks into named groups, each sorted with by/order.
// Groups follow category/priority order, or date order for due dates.
func GroupTasks(tasks []Task, group GroupBy, by SortBy, order SortOrder) []Group {
	if group == GroupByNone {
		return []Group{{Tasks: Sort(tasks, by, order)}}
	}

	var names []string
	byName := map[string][]Task{}

	for _, t := range tasks {
		var name string
		switch group {
		case GroupByCategory:
			name = string(t.Category)
		case GroupByPriority:
			name = string(t.Priority)
		case GroupByDueDate:
			name = t.DueDate
			if name == "" {
				name = "No due date"
			}
		}
		if _, seen := byName[name]; !seen {
			names = append(names, name)
		}
		byName[name] = append(byName[name], t)
	}

	sort.SliceStable(names, func(i, j int) bool {
		switch group {
		case GroupByCategory:
			return categoryRank(Category(names[i])) < categoryRank(Category(names[j]))
		case GroupByPriority:
			return priorityRank(Priority(names[i])) > priorityRank(Priority(names[j]))
		default:
			return names[i] < names[j]
		}
	})

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		groups = append(groups, Group{Name: name, Tasks: Sort(byName[name], by, order)})
	}
	return groups
}
