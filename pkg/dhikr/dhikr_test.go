package dhikr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ips/pkg/database"
)

func TestCounter_Defaults(t *testing.T) {
	c := NewCounter(database.NewMemoryStore())
	assert.Equal(t, []string{Subhanallah}, c.Types())
	assert.Equal(t, 0, c.Count(Subhanallah))
	assert.Equal(t, 0, c.Progress(Subhanallah))
}

func TestCounter_IncrementPersists(t *testing.T) {
	kv := database.NewMemoryStore()
	c := NewCounter(kv)

	for i := 0; i < 33; i++ {
		_, err := c.Increment(Subhanallah)
		require.NoError(t, err)
	}
	n, err := c.Increment("  SubhanAllah ")
	require.NoError(t, err)
	assert.Equal(t, 34, n)
	assert.Equal(t, 34, c.Progress(Subhanallah))

	reloaded := NewCounter(kv)
	assert.Equal(t, 34, reloaded.Count(Subhanallah))

	require.NoError(t, reloaded.Reset(Subhanallah))
	assert.Equal(t, 0, NewCounter(kv).Count(Subhanallah))
}

func TestCounter_EmptyType(t *testing.T) {
	c := NewCounter(database.NewMemoryStore())
	_, err := c.Increment(" ")
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.ErrorIs(t, c.Reset(""), ErrUnknownType)
}

func TestProgress_Capped(t *testing.T) {
	assert.Equal(t, 0, Progress(0))
	assert.Equal(t, 99, Progress(99))
	assert.Equal(t, 100, Progress(100))
	assert.Equal(t, 100, Progress(250))
}

func TestCounter_CorruptEntry(t *testing.T) {
	kv := database.NewMemoryStore()
	require.NoError(t, kv.Set(database.DhikrKey, []byte(`["nope"]`)))

	c := NewCounter(kv)
	assert.Equal(t, []string{Subhanallah}, c.Types())
}
