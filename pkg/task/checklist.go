package task

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ips/pkg/utils"
)

var (
	checklistDate = regexp.MustCompile(`^(?:(\d{2})\.(\d{2})\.(\d{4})|(\d{4})-(\d{2})-(\d{2})):?$`)
	checklistTags = regexp.MustCompile(`\s*\(([^,()]+),\s*(\w+)\)$`)
)

const noDueDateHeader = "No due date:"

// ParseChecklist reads the txt export format back into tasks. Unrecognised
// lines are skipped. Returned tasks have no id or creation time yet.
func ParseChecklist(r io.Reader) ([]Task, error) {
	var (
		tasks       []Task
		currentDate string
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		raw := scanner.Text()
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if line == noDueDateHeader {
			currentDate = ""
			continue
		}
		if m := checklistDate.FindStringSubmatch(line); m != nil {
			var day, month, year int
			if m[1] != "" {
				day, _ = strconv.Atoi(m[1])
				month, _ = strconv.Atoi(m[2])
				year, _ = strconv.Atoi(m[3])
			} else {
				year, _ = strconv.Atoi(m[4])
				month, _ = strconv.Atoi(m[5])
				day, _ = strconv.Atoi(m[6])
			}
			currentDate = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format(DateLayout)
			continue
		}

		if !strings.HasPrefix(line, "- ") {
			continue
		}
		text, done := checkbox(strings.TrimPrefix(line, "- "))
		if text == "" {
			continue
		}

		// indented items belong to the task above
		if raw != strings.TrimLeft(raw, " \t") {
			if len(tasks) == 0 {
				continue
			}
			parent := &tasks[len(tasks)-1]
			parent.Subtasks = append(parent.Subtasks, Subtask{Text: text, Completed: done})
			continue
		}

		t := Task{
			Text:      text,
			Category:  CategoryPrayer,
			Priority:  PriorityLow,
			DueDate:   currentDate,
			Subtasks:  []Subtask{},
			Completed: done,
		}
		if m := checklistTags.FindStringSubmatch(text); m != nil {
			category, cerr := ParseCategory(m[1])
			priority, perr := ParsePriority(m[2])
			if cerr == nil && perr == nil {
				t.Text = strings.TrimSpace(strings.TrimSuffix(text, m[0]))
				t.Category = category
				t.Priority = priority
			}
		}
		tasks = append(tasks, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read checklist: %w", err)
	}
	return tasks, nil
}

func checkbox(s string) (string, bool) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "[x]"), strings.HasPrefix(s, "[X]"):
		return strings.TrimSpace(s[3:]), true
	case strings.HasPrefix(s, "[ ]"):
		return strings.TrimSpace(s[3:]), false
	}
	return s, false
}

// ImportChecklist appends the tasks of a txt checklist to the collection
func (s *Store) ImportChecklist(r io.Reader) (int, error) {
	tasks, err := ParseChecklist(r)
	if err != nil {
		return 0, err
	}
	if len(tasks) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	for i := range tasks {
		tasks[i].ID = s.nextID(now)
		tasks[i].CreatedAt = now
		s.tasks = append(s.tasks, tasks[i])
	}
	utils.Log("Imported %d tasks from checklist", len(tasks))

	return len(tasks), s.persist()
}
