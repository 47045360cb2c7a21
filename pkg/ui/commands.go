package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ips/pkg/prayer"
	"ips/pkg/utils"
)

// tickMsg drives the clock and the alarm check. Exactly one tick is in
// flight at any time: each tickMsg schedules the next.
type tickMsg time.Time

type prayerMsg struct {
	timings prayer.Timings
	err     error
}

type verseMsg struct {
	text string
	err  error
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) fetchTimeout() time.Duration {
	if m.config.HTTPTimeout > 0 {
		return m.config.HTTPTimeout
	}
	return 10 * time.Second
}

func (m Model) fetchPrayerCmd() tea.Cmd {
	if m.prayer == nil {
		return nil
	}
	client, timeout := m.prayer, m.fetchTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		timings, err := client.Timings(ctx)
		if err != nil {
			utils.Warn("prayer times unavailable: %v", err)
		}
		return prayerMsg{timings: timings, err: err}
	}
}

func (m Model) fetchVerseCmd() tea.Cmd {
	if m.verses == nil {
		return nil
	}
	client, timeout := m.verses, m.fetchTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		text, err := client.RandomVerse(ctx)
		if err != nil {
			utils.Warn("verse unavailable: %v", err)
		}
		return verseMsg{text: text, err: err}
	}
}
