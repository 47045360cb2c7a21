package task

import (
	"strings"
	"time"
)

// Category groups tasks the way the sidebar filter does
type Category string

const (
	CategoryPrayer   Category = "Prayer"
	CategoryQuran    Category = "Quran Reading"
	CategoryFasting  Category = "Fasting"
	CategoryCharity  Category = "Charity"
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
)

// Categories lists every category in display order
var Categories = []Category{
	CategoryPrayer,
	CategoryQuran,
	CategoryFasting,
	CategoryCharity,
	CategoryWork,
	CategoryPersonal,
}

// Priority of a task
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every priority from lowest to highest
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// All is the filter value that matches every category or priority
const All = "all"

// DateLayout is the format of due dates
const DateLayout = "2006-01-02"

// Subtask is one entry of a task's checklist. Subtasks are addressed by
// their position in Task.Subtasks.
type Subtask struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Task is a single persisted task record
type Task struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Category  Category  `json:"category"`
	Priority  Priority  `json:"priority"`
	DueDate   string    `json:"dueDate"`
	Subtasks  []Subtask `json:"subtasks"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// Draft is unvalidated input from a form or the command line
type Draft struct {
	Text     string
	Category string
	Priority string
	DueDate  string
	// Subtasks is a comma separated list, e.g. "p1, p2"
	Subtasks string
}

// DraftFrom turns a task back into the form values used to edit it
func DraftFrom(t Task) Draft {
	names := make([]string, len(t.Subtasks))
	for i, s := range t.Subtasks {
		names[i] = s.Text
	}
	return Draft{
		Text:     t.Text,
		Category: string(t.Category),
		Priority: string(t.Priority),
		DueDate:  t.DueDate,
		Subtasks: strings.Join(names, ", "),
	}
}

// ParseCategory resolves user input to a category. Empty input yields the
// default (Prayer). The legacy name "Salah" is accepted as an alias.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryPrayer, nil
	}
	if strings.EqualFold(s, "salah") {
		return CategoryPrayer, nil
	}
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

// ParsePriority resolves user input to a priority. Empty input yields low.
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PriorityLow, nil
	}
	for _, p := range Priorities {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", ErrInvalidPriority
}

// ParseSubtasks splits a comma separated list into incomplete subtasks.
// Blank entries are dropped.
func ParseSubtasks(s string) []Subtask {
	subtasks := []Subtask{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		subtasks = append(subtasks, Subtask{Text: part})
	}
	return subtasks
}

// parseDueDate validates an optional YYYY-MM-DD date
func parseDueDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", ErrInvalidDueDate
	}
	return s, nil
}

// validated holds the draft fields after validation
type validated struct {
	text     string
	category Category
	priority Priority
	dueDate  string
	subtasks []Subtask
}

func (d Draft) validate() (validated, error) {
	var v validated

	v.text = strings.TrimSpace(d.Text)
	if v.text == "" {
		return v, ErrEmptyText
	}

	var err error
	if v.category, err = ParseCategory(d.Category); err != nil {
		return v, err
	}
	if v.priority, err = ParsePriority(d.Priority); err != nil {
		return v, err
	}
	if v.dueDate, err = parseDueDate(d.DueDate); err != nil {
		return v, err
	}
	v.subtasks = ParseSubtasks(d.Subtasks)

	return v, nil
}

// clone returns a deep copy so callers can't mutate store state through it
func (t Task) clone() Task {
	out := t
	out.Subtasks = make([]Subtask, len(t.Subtasks))
	copy(out.Subtasks, t.Subtasks)
	return out
}
