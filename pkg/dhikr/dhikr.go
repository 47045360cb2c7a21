// Package dhikr keeps persisted remembrance counters
package dhikr

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"ips/pkg/database"
	"ips/pkg/utils"
)

const (
	Subhanallah   = "subhanallah"
	Alhamdulillah = "alhamdulillah"
	Allahuakbar   = "allahuakbar"

	// Target is the count at which progress reaches 100%
	Target = 100
)

var ErrUnknownType = errors.New("dhikr type must not be empty")

// Counter tracks one count per dhikr type
type Counter struct {
	mu     sync.Mutex
	kv     database.Store
	counts map[string]int
}

func defaults() map[string]int {
	return map[string]int{Subhanallah: 0}
}

// NewCounter loads the persisted counts, falling back to the defaults
func NewCounter(kv database.Store) *Counter {
	c := &Counter{kv: kv}
	c.Load()
	return c
}

// Load reads the persisted counts, falling back to the defaults
func (c *Counter) Load() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counts = defaults()

	data, err := c.kv.Get(database.DhikrKey)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			utils.Warn("could not read dhikr counts: %v", err)
		}
		return
	}

	var counts map[string]int
	if err := json.Unmarshal(data, &counts); err != nil || counts == nil {
		utils.Warn("stored dhikr counts are corrupt, resetting: %v", err)
		return
	}
	for k, v := range counts {
		if v < 0 {
			v = 0
		}
		c.counts[k] = v
	}
}

func (c *Counter) persist() error {
	data, err := json.Marshal(c.counts)
	if err != nil {
		return fmt.Errorf("failed to encode dhikr counts: %w", err)
	}
	if err := c.kv.Set(database.DhikrKey, data); err != nil {
		return fmt.Errorf("failed to persist dhikr counts: %w", err)
	}
	return nil
}

func normalize(kind string) (string, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		return "", ErrUnknownType
	}
	return kind, nil
}

// Increment adds one to kind and returns the new count
func (c *Counter) Increment(kind string) (int, error) {
	kind, err := normalize(kind)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.counts[kind]++
	return c.counts[kind], c.persist()
}

// Reset sets the count of kind back to zero
func (c *Counter) Reset(kind string) error {
	kind, err := normalize(kind)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.counts[kind] = 0
	return c.persist()
}

// Count returns the current count of kind
func (c *Counter) Count(kind string) int {
	kind, err := normalize(kind)
	if err != nil {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[kind]
}

// Progress is the share of Target reached, capped at 100
func (c *Counter) Progress(kind string) int {
	return Progress(c.Count(kind))
}

func Progress(count int) int {
	if count >= Target {
		return 100
	}
	return count * 100 / Target
}

// Types lists every known dhikr type in alphabetical order
func (c *Counter) Types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	types := make([]string, 0, len(c.counts))
	for k := range c.counts {
		types = append(types, k)
	}
	sort.Strings(types)
	return types
}
