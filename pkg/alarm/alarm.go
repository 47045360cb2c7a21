package alarm

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidTime = errors.New("invalid alarm time")
	ErrNotFound    = errors.New("alarm not found")
	ErrNotRinging  = errors.New("alarm is not ringing")
)

// DefaultSnooze is how far a snoozed alarm is pushed back
const DefaultSnooze = 5 * time.Minute

// Alarm is a single persisted alarm. Only the hour and minute of Time are
// compared against the clock.
type Alarm struct {
	ID          int64     `json:"id"`
	Time        time.Time `json:"time"`
	IsActive    bool      `json:"isActive"`
	IsTriggered bool      `json:"isTriggered"`
	// LastTriggered is the minute the alarm last started ringing
	LastTriggered *time.Time `json:"lastTriggered,omitempty"`
}

// Ringing reports whether the alarm is active and triggered
func (a Alarm) Ringing() bool {
	return a.IsActive && a.IsTriggered
}

// Label is the HH:MM the alarm rings at
func (a Alarm) Label() string {
	return a.Time.Format("15:04")
}

// matches reports whether now falls in the alarm's hour and minute
func (a Alarm) matches(now time.Time) bool {
	t := a.Time.In(now.Location())
	return t.Hour() == now.Hour() && t.Minute() == now.Minute()
}

// firedDuring reports whether the alarm already rang in the given minute
func (a Alarm) firedDuring(minute time.Time) bool {
	return a.LastTriggered != nil && a.LastTriggered.Equal(minute)
}

func (a Alarm) clone() Alarm {
	out := a
	if a.LastTriggered != nil {
		last := *a.LastTriggered
		out.LastTriggered = &last
	}
	return out
}

// minuteOf truncates t to the start of its wall-clock minute
func minuteOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

var dateTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

var clockLayouts = []string{
	"15:04",
	"15:04:05",
}

// ParseTime accepts a clock time (HH:MM, placed on now's date) or a full
// date and time. Empty or malformed input yields ErrInvalidTime.
func ParseTime(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidTime
	}

	for _, layout := range clockLayouts {
		if t, err := time.ParseInLocation(layout, value, now.Location()); err == nil {
			return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), t.Second(), 0, now.Location()), nil
		}
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, now.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTime
}
