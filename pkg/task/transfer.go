package task

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Export formats
const (
	FormatJSON = "json"
	FormatText = "txt"
)

// Export writes the full collection. JSON output is a pretty-printed array of
// task records; txt is a checklist grouped by due date.
func (s *Store) Export(w io.Writer, format string) error {
	tasks := s.All()

	var content []byte
	switch format {
	case FormatJSON, "":
		var err error
		content, err = json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal tasks: %w", err)
		}
	case FormatText:
		content = []byte(checklist(tasks))
	default:
		return fmt.Errorf("unknown export type: %s", format)
	}

	_, err := w.Write(content)
	return err
}

func checklist(tasks []Task) string {
	var lines []string
	for _, group := range GroupTasks(tasks, GroupByDueDate, SortByCreated, SortAsc) {
		header := group.Name
		if d, err := time.Parse(DateLayout, group.Name); err == nil {
			header = d.Format("02.01.2006")
		}
		lines = append(lines, fmt.Sprintf("\n%s:", header))

		for _, t := range group.Tasks {
			status := " "
			if t.Completed {
				status = "x"
			}
			lines = append(lines, fmt.Sprintf("- [%s] %s (%s, %s)", status, t.Text, t.Category, t.Priority))
			for _, sub := range t.Subtasks {
				mark := " "
				if sub.Completed {
					mark = "x"
				}
				lines = append(lines, fmt.Sprintf("    - [%s] %s", mark, sub.Text))
			}
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}

// Import parses a JSON array of tasks and replaces the collection with it.
// Nothing changes unless the whole document is valid.
func (s *Store) Import(r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("failed to read import: %w", err)
	}

	tasks, err := decode(data)
	if err != nil {
		return 0, fmt.Errorf("invalid file format: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = tasks
	s.lastID = maxID(tasks)
	s.assignMissing()

	return len(tasks), s.persist()
}

// decode parses and validates a serialized collection. Ids of zero are
// allowed here and filled in by Load and Import.
func decode(data []byte) ([]Task, error) {
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []Task{}
	}

	seen := map[int64]bool{}
	for i := range tasks {
		t := &tasks[i]

		t.Text = strings.TrimSpace(t.Text)
		if t.Text == "" {
			return nil, fmt.Errorf("task %d: %w", i, ErrEmptyText)
		}

		category, err := ParseCategory(string(t.Category))
		if err != nil {
			return nil, fmt.Errorf("task %d: %w: %q", i, err, t.Category)
		}
		t.Category = category

		priority, err := ParsePriority(string(t.Priority))
		if err != nil {
			return nil, fmt.Errorf("task %d: %w: %q", i, err, t.Priority)
		}
		t.Priority = priority

		if t.DueDate, err = parseDueDate(t.DueDate); err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}

		if t.Subtasks == nil {
			t.Subtasks = []Subtask{}
		}

		if t.ID != 0 {
			if seen[t.ID] {
				return nil, fmt.Errorf("task %d: %w: %d", i, ErrDuplicateID, t.ID)
			}
			seen[t.ID] = true
		}
	}
	return tasks, nil
}
