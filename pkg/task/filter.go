package task

import (
	"math"
	"strings"
)

// Filter selects tasks for display. Empty or "all" category/priority match
// every task.
type Filter struct {
	Search   string
	Category string
	Priority string
}

// Match reports whether t passes all three predicates
func (f Filter) Match(t Task) bool {
	if !strings.Contains(strings.ToLower(t.Text), strings.ToLower(f.Search)) {
		return false
	}
	if !isAll(f.Category) {
		c, err := ParseCategory(f.Category)
		if err != nil || t.Category != c {
			return false
		}
	}
	if !isAll(f.Priority) {
		p, err := ParsePriority(f.Priority)
		if err != nil || t.Priority != p {
			return false
		}
	}
	return true
}

func isAll(s string) bool {
	return s == "" || strings.EqualFold(s, All)
}

// Filter returns the matching tasks in collection order. It recomputes on
// every call.
func (s *Store) Filter(f Filter) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []Task{}
	for _, t := range s.tasks {
		if f.Match(t) {
			out = append(out, t.clone())
		}
	}
	return out
}

// Statistics summarises the full, unfiltered collection
type Statistics struct {
	Total     int
	Completed int
}

// Pending is the number of tasks not yet completed
func (st Statistics) Pending() int {
	return st.Total - st.Completed
}

// Statistics counts all tasks and the completed ones
func (s *Store) Statistics() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Statistics{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			st.Completed++
		}
	}
	return st
}

// Progress is the completion percentage of a task: its own flag when it has
// no subtasks, the rounded share of completed subtasks otherwise.
func Progress(t Task) int {
	if len(t.Subtasks) == 0 {
		if t.Completed {
			return 100
		}
		return 0
	}
	done := 0
	for _, s := range t.Subtasks {
		if s.Completed {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(t.Subtasks))))
}

// PurgeFilter selects tasks for bulk deletion. The zero value matches everything.
type PurgeFilter struct {
	Category string
	DueDate  string
	Done     bool
	Undone   bool
}

func (p PurgeFilter) matches(t Task) bool {
	if !isAll(p.Category) {
		c, err := ParseCategory(p.Category)
		if err != nil || t.Category != c {
			return false
		}
	}
	if p.DueDate != "" && t.DueDate != p.DueDate {
		return false
	}
	if p.Done && !t.Completed {
		return false
	}
	if p.Undone && t.Completed {
		return false
	}
	return true
}
