package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/steamrisk/internal/model"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	s := NewStore()
	s.Put(570, &model.AppDetails{AppID: 570, Name: "Dota 2", Developers: []string{"Valve"}})
	s.Put(2358720, &model.AppDetails{AppID: 2358720, Name: "Black Myth: Wukong"})

	require.NoError(t, s.Save(path))

	loaded := Load(path)
	assert.Equal(t, 2, loaded.Len())

	d, ok := loaded.Get(570)
	require.True(t, ok)
	assert.Equal(t, "Dota 2", d.Name)
	assert.Equal(t, []string{"Valve"}, d.Developers)
}

func TestSave_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.json")

	s := NewStore()
	s.Put(1, &model.AppDetails{AppID: 1})
	require.NoError(t, s.Save(path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cache.json", entries[0].Name())
}

func TestLoad_MissingFileYieldsEmptyStore(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Zero(t, s.Len())
}

func TestLoad_CorruptFileYieldsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s := Load(path)
	assert.Zero(t, s.Len())
}

func TestSave_RetriesBeforeFailing(t *testing.T) {
	var waits []time.Duration
	orig := persistSleep
	persistSleep = func(d time.Duration) { waits = append(waits, d) }
	t.Cleanup(func() { persistSleep = orig })

	s := NewStore()
	s.Put(1, &model.AppDetails{AppID: 1})

	// directory that does not exist, so every write attempt fails
	err := s.Save(filepath.Join(t.TempDir(), "missing", "cache.json"))

	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Len(t, waits, persistAttempts)
}
