package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"ips/pkg/database"
	"ips/pkg/utils"
)

// Store owns the task collection and mirrors it to the persistence port on
// every mutation.
type Store struct {
	mu     sync.Mutex
	kv     database.Store
	key    string
	tasks  []Task
	lastID int64
	now    func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithKey stores the collection under a key other than database.TasksKey
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// NewStore creates a store backed by kv and loads the persisted collection
func NewStore(kv database.Store, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		key:   database.TasksKey,
		tasks: []Task{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Load()
	return s
}

// Load replaces the in-memory collection with the persisted one. A missing or
// corrupt entry yields an empty collection.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = []Task{}
	s.lastID = 0

	data, err := s.kv.Get(s.key)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			utils.Warn("could not read %s: %v", s.key, err)
		}
		return
	}

	tasks, err := decode(data)
	if err != nil {
		utils.Warn("stored %s are corrupt, starting with an empty list: %v", s.key, err)
		return
	}

	s.tasks = tasks
	s.lastID = maxID(tasks)
	s.assignMissing()
	utils.Log("Loaded %d tasks", len(tasks))
}

// Persist writes the whole collection to the store
func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist()
}

func (s *Store) persist() error {
	data, err := json.Marshal(s.tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	if err := s.kv.Set(s.key, data); err != nil {
		return fmt.Errorf("failed to persist tasks: %w", err)
	}
	return nil
}

// timestamp is the clock reading stored as createdAt, at the millisecond
// precision of the JSON format
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// nextID derives an id from the clock, bumped past the last one handed out
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// assignMissing gives records stored without an id or createdAt fresh ones
func (s *Store) assignMissing() {
	now := s.timestamp()
	for i := range s.tasks {
		if s.tasks[i].ID == 0 {
			s.tasks[i].ID = s.nextID(now)
		}
		if s.tasks[i].CreatedAt.IsZero() {
			s.tasks[i].CreatedAt = now
		}
	}
}

// Add validates the draft and appends a new task
func (s *Store) Add(d Draft) (Task, error) {
	v, err := d.validate()
	if err != nil {
		return Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	t := Task{
		ID:        s.nextID(now),
		Text:      v.text,
		Category:  v.category,
		Priority:  v.priority,
		DueDate:   v.dueDate,
		Subtasks:  v.subtasks,
		CreatedAt: now,
	}
	s.tasks = append(s.tasks, t)
	utils.Log("Added task %d: %s", t.ID, t.Text)

	return t.clone(), s.persist()
}

// Toggle flips the completion flag of a task. Subtasks are left alone.
func (s *Store) Toggle(id int64) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}
	s.tasks[i].Completed = !s.tasks[i].Completed

	return s.tasks[i].clone(), s.persist()
}

// ToggleSubtask flips the subtask at index. The parent's flag is not derived.
func (s *Store) ToggleSubtask(id int64, index int) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}
	if index < 0 || index >= len(s.tasks[i].Subtasks) {
		return Task{}, ErrSubtaskIndex
	}
	s.tasks[i].Subtasks[index].Completed = !s.tasks[i].Subtasks[index].Completed

	return s.tasks[i].clone(), s.persist()
}

// Edit overwrites every editable field of the task from the draft. Subtasks
// are re-parsed, so their completion state starts over.
func (s *Store) Edit(id int64, d Draft) (Task, error) {
	v, err := d.validate()
	if err != nil {
		return Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}

	t := &s.tasks[i]
	t.Text = v.text
	t.Category = v.category
	t.Priority = v.priority
	t.DueDate = v.dueDate
	t.Subtasks = v.subtasks
	utils.Log("Updated task %d", t.ID)

	return t.clone(), s.persist()
}

// Delete removes the task. Deleting an unknown id does nothing.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	utils.Log("Deleted task %d", id)

	return s.persist()
}

// Get returns a copy of the task with the given id
func (s *Store) Get(id int64) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}
	return s.tasks[i].clone(), nil
}

// All returns a copy of the collection in insertion order
func (s *Store) All() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.tasks)
}

// Len returns the number of tasks
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Replace swaps the whole collection, e.g. after an import
func (s *Store) Replace(tasks []Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = cloneAll(tasks)
	s.lastID = maxID(s.tasks)
	return s.persist()
}

// Purge removes every task matching the filter and returns how many were removed
func (s *Store) Purge(p PurgeFilter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tasks[:0]
	removed := 0
	for _, t := range s.tasks {
		if p.matches(t) {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	if removed == 0 {
		return 0, nil
	}
	return removed, s.persist()
}

func (s *Store) indexOf(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.clone()
	}
	return out
}

func maxID(tasks []Task) int64 {
	var max int64
	for _, t := range tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max
}
