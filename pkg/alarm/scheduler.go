package alarm

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"ips/pkg/database"
	"ips/pkg/utils"
)

// Notifier is told about every alarm that starts ringing
type Notifier interface {
	Ring(Alarm)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Alarm)

func (f NotifierFunc) Ring(a Alarm) { f(a) }

// Scheduler owns the alarm list and decides, once per tick, which alarms
// start ringing.
type Scheduler struct {
	mu       sync.Mutex
	kv       database.Store
	alarms   []Alarm
	lastID   int64
	notifier Notifier
	snooze   time.Duration
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithNotifier registers the receiver of ringing events
func WithNotifier(n Notifier) Option {
	return func(s *Scheduler) { s.notifier = n }
}

// WithSnooze changes the default snooze interval
func WithSnooze(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.snooze = d
		}
	}
}

// NewScheduler creates a scheduler backed by kv and loads the persisted alarms
func NewScheduler(kv database.Store, opts ...Option) *Scheduler {
	s := &Scheduler{
		kv:     kv,
		alarms: []Alarm{},
		snooze: DefaultSnooze,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Load()
	return s
}

// SetNotifier replaces the notifier after construction
func (s *Scheduler) SetNotifier(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = n
}

// SnoozeInterval is the default snooze duration
func (s *Scheduler) SnoozeInterval() time.Duration {
	return s.snooze
}

// Load replaces the in-memory alarms with the persisted ones. Missing or
// corrupt entries yield an empty list.
func (s *Scheduler) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alarms = []Alarm{}
	s.lastID = 0

	data, err := s.kv.Get(database.AlarmsKey)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			utils.Warn("could not read alarms: %v", err)
		}
		return
	}

	var alarms []Alarm
	if err := json.Unmarshal(data, &alarms); err != nil {
		utils.Warn("stored alarms are corrupt, starting with none: %v", err)
		return
	}
	if alarms == nil {
		alarms = []Alarm{}
	}

	s.alarms = alarms
	for _, a := range alarms {
		if a.ID > s.lastID {
			s.lastID = a.ID
		}
	}
	utils.Log("Loaded %d alarms", len(alarms))
}

func (s *Scheduler) persist() error {
	data, err := json.Marshal(s.alarms)
	if err != nil {
		return fmt.Errorf("failed to encode alarms: %w", err)
	}
	if err := s.kv.Set(database.AlarmsKey, data); err != nil {
		return fmt.Errorf("failed to persist alarms: %w", err)
	}
	return nil
}

// Add parses value relative to now and appends an active alarm
func (s *Scheduler) Add(value string, now time.Time) (Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	at, err := ParseTime(value, now)
	if err != nil {
		return Alarm{}, err
	}

	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	a := Alarm{ID: id, Time: at, IsActive: true}
	s.alarms = append(s.alarms, a)
	utils.Log("Added alarm %d at %s", a.ID, a.Label())

	return a.clone(), s.persist()
}

// Tick compares now against every active alarm. An alarm rings at most once
// per matching minute, even when it is stopped and ticked again inside that
// minute. Newly ringing alarms are returned and passed to the notifier.
func (s *Scheduler) Tick(now time.Time) []Alarm {
	s.mu.Lock()

	minute := minuteOf(now)
	var fired []Alarm
	for i := range s.alarms {
		a := &s.alarms[i]
		if !a.IsActive || a.IsTriggered || !a.matches(now) || a.firedDuring(minute) {
			continue
		}
		a.IsTriggered = true
		a.LastTriggered = &minute
		fired = append(fired, a.clone())
		utils.Log("Alarm %d ringing at %s", a.ID, now.Format("15:04:05"))
	}

	if len(fired) > 0 {
		if err := s.persist(); err != nil {
			utils.Warn("%v", err)
		}
	}
	notifier := s.notifier
	s.mu.Unlock()

	// notify outside the lock so the receiver may call back into the scheduler
	if notifier != nil {
		for _, a := range fired {
			notifier.Ring(a)
		}
	}
	return fired
}

// Stop silences one alarm. It stays active and waits for its next minute.
func (s *Scheduler) Stop(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	if !s.alarms[i].IsTriggered {
		return nil
	}
	s.alarms[i].IsTriggered = false
	return s.persist()
}

// StopAll silences every ringing alarm
func (s *Scheduler) StopAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for i := range s.alarms {
		if s.alarms[i].IsTriggered {
			s.alarms[i].IsTriggered = false
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.persist()
}

// Snooze silences a ringing alarm and moves it delta into the future. A
// non-positive delta uses the configured snooze interval.
func (s *Scheduler) Snooze(id int64, delta time.Duration) (Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Alarm{}, ErrNotFound
	}
	if !s.alarms[i].IsTriggered {
		return s.alarms[i].clone(), ErrNotRinging
	}
	s.snoozeAt(i, delta)

	return s.alarms[i].clone(), s.persist()
}

// SnoozeAll snoozes every ringing alarm and returns how many were snoozed
func (s *Scheduler) SnoozeAll(delta time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for i := range s.alarms {
		if s.alarms[i].IsTriggered {
			s.snoozeAt(i, delta)
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return n, s.persist()
}

func (s *Scheduler) snoozeAt(i int, delta time.Duration) {
	if delta <= 0 {
		delta = s.snooze
	}
	a := &s.alarms[i]
	a.IsTriggered = false
	a.Time = a.Time.Add(delta)
	utils.Log("Alarm %d snoozed until %s", a.ID, a.Label())
}

// ToggleActive switches an alarm on or off. Turning it off also silences it.
func (s *Scheduler) ToggleActive(id int64) (Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Alarm{}, ErrNotFound
	}
	a := &s.alarms[i]
	a.IsActive = !a.IsActive
	if !a.IsActive {
		a.IsTriggered = false
	}
	return a.clone(), s.persist()
}

// Delete removes an alarm. Deleting an unknown id does nothing.
func (s *Scheduler) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.alarms = append(s.alarms[:i], s.alarms[i+1:]...)
	utils.Log("Deleted alarm %d", id)
	return s.persist()
}

// All returns a copy of every alarm in creation order
func (s *Scheduler) All() []Alarm {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Alarm, len(s.alarms))
	for i, a := range s.alarms {
		out[i] = a.clone()
	}
	return out
}

// Ringing returns the alarms currently triggered
func (s *Scheduler) Ringing() []Alarm {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Alarm
	for _, a := range s.alarms {
		if a.Ringing() {
			out = append(out, a.clone())
		}
	}
	return out
}

func (s *Scheduler) indexOf(id int64) int {
	for i := range s.alarms {
		if s.alarms[i].ID == id {
			return i
		}
	}
	return -1
}
