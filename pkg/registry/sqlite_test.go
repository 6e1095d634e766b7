package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "registry.db")
	s, err := OpenSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, dbPath
}

func TestSQLiteLookupUnregistered(t *testing.T) {
	s, _ := openTestSQLite(t)
	_, err := s.Lookup("ghost")
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestSQLiteRegisterLookup(t *testing.T) {
	s, _ := openTestSQLite(t)
	require.NoError(t, s.Register("sensor-1", nat(684435902)))

	w, err := s.Lookup("sensor-1")
	require.NoError(t, err)
	assert.True(t, w.Eq(nat(684435902)) == 1)
}

func TestSQLiteOverwrite(t *testing.T) {
	s, _ := openTestSQLite(t)
	require.NoError(t, s.Register("sensor-1", nat(42)))
	require.NoError(t, s.Register("sensor-1", nat(43)))

	w, err := s.Lookup("sensor-1")
	require.NoError(t, err)
	assert.True(t, w.Eq(nat(43)) == 1)
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	s, dbPath := openTestSQLite(t)
	require.NoError(t, s.Register("sensor-1", nat(42)))
	require.NoError(t, s.Close())

	s2, err := OpenSQLite(dbPath)
	require.NoError(t, err)
	defer s2.Close()

	w, err := s2.Lookup("sensor-1")
	require.NoError(t, err)
	assert.True(t, w.Eq(nat(42)) == 1)
}
