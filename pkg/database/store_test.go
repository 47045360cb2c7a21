package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeContract runs the behaviour every backend must share
func storeContract(t *testing.T, s Store) {
	t.Helper()

	t.Run("missing key", func(t *testing.T) {
		_, err := s.Get("missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.Set(TasksKey, []byte(`[{"id":1}]`)))
		got, err := s.Get(TasksKey)
		require.NoError(t, err)
		assert.Equal(t, `[{"id":1}]`, string(got))
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, s.Set(TasksKey, []byte(`[]`)))
		got, err := s.Get(TasksKey)
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(got))
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, s.Set(DhikrKey, []byte(`{"subhanallah":3}`)))
		tasks, err := s.Get(TasksKey)
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(tasks))
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, s.Delete(DhikrKey))
		require.NoError(t, s.Delete(DhikrKey))
		_, err := s.Get(DhikrKey)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	s := NewMemoryStore()
	value := []byte("abc")
	require.NoError(t, s.Set("k", value))
	value[0] = 'x'

	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQL(DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer s.Close()

	storeContract(t, s)
}

func TestSQLiteStore_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ips.db")
	s, err := Open(DriverSQLite, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(AlarmsKey, []byte(`[]`)))
	require.NoError(t, s.Close())

	_, err = os.Stat(path)
	assert.NoError(t, err)

	reopened, err := Open(DriverSQLite, path)
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.Get(AlarmsKey)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestFileStore(t *testing.T) {
	s, err := OpenFile(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	storeContract(t, s)
}

func TestFileStore_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(TasksKey, []byte(`[1,2]`)))

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	got, err := reopened.Get(TasksKey)
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(got))
}

func TestFileStore_CorruptDocumentStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s, err := OpenFile(path)
	require.NoError(t, err)
	_, err = s.Get(TasksKey)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(TasksKey, []byte(`[]`)))
	reopened, err := OpenFile(path)
	require.NoError(t, err)
	got, err := reopened.Get(TasksKey)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("mongo", "")
	assert.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("IPS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("IPS_TEST_REDIS_ADDR not set")
	}
	s, err := OpenRedis(addr)
	require.NoError(t, err)
	defer s.Close()
	defer s.Delete(TasksKey)

	storeContract(t, s)
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("IPS_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("IPS_TEST_POSTGRES_DSN not set")
	}
	s, err := OpenSQL(DriverPostgres, dsn)
	require.NoError(t, err)
	defer s.Close()
	defer s.Delete(TasksKey)

	storeContract(t, s)
}
