package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depsiren/internal/model"
)

func TestGetOnColdCache(t *testing.T) {
	c, err := New(t.TempDir(), DefaultTTL)
	require.NoError(t, err)

	md, ok := c.Get("pypi:requests")
	assert.False(t, ok)
	assert.Nil(t, md)
}

func TestSetThenGet(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir, DefaultTTL)
	require.NoError(t, err)

	want := model.Metadata{
		Name:          "requests",
		Ecosystem:     model.EcosystemPyPI,
		LatestVersion: "2.31.0",
		Maintainers:   []string{"kennethreitz"},
	}
	require.NoError(t, c.Set("pypi:requests", want))

	got, ok := c.Get("pypi:requests")
	require.True(t, ok)
	assert.Equal(t, want, *got)

	// The whole store is one JSON document keyed by slug.
	b, err := os.ReadFile(filepath.Join(dir, storeFile))
	require.NoError(t, err)
	var store map[string]entry
	require.NoError(t, json.Unmarshal(b, &store))
	require.Contains(t, store, "pypi:requests")
	assert.NotZero(t, store["pypi:requests"].Timestamp)
}

func TestGetIgnoresExpiredEntry(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir, DefaultTTL)
	require.NoError(t, err)

	stale := map[string]entry{
		"npm:lodash": {
			Timestamp: time.Now().Add(-7 * time.Hour).Unix(),
			Data:      model.Metadata{Name: "lodash", Ecosystem: model.EcosystemNpm},
		},
	}
	b, err := json.Marshal(stale)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, storeFile), b, 0644))

	_, ok := c.Get("npm:lodash")
	assert.False(t, ok, "entry past the TTL reads as absent")

	// A stale entry is not evicted; Set overwrites it in place.
	require.NoError(t, c.Set("npm:lodash", model.Metadata{Name: "lodash", Ecosystem: model.EcosystemNpm, LatestVersion: "4.17.21"}))
	got, ok := c.Get("npm:lodash")
	require.True(t, ok)
	assert.Equal(t, "4.17.21", got.LatestVersion)
}

func TestCorruptStoreFailsOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, storeFile), []byte("{not json"), 0644))

	c, err := New(dir, DefaultTTL)
	require.NoError(t, err)

	_, ok := c.Get("pypi:requests")
	assert.False(t, ok, "corrupt store behaves like an empty one")

	// Writing through the corrupt store replaces it wholesale.
	require.NoError(t, c.Set("pypi:requests", model.Metadata{Name: "requests", Ecosystem: model.EcosystemPyPI}))
	_, ok = c.Get("pypi:requests")
	assert.True(t, ok)
}

func TestSetLastWriterWins(t *testing.T) {
	c, err := New(t.TempDir(), DefaultTTL)
	require.NoError(t, err)

	require.NoError(t, c.Set("npm:react", model.Metadata{Name: "react", Ecosystem: model.EcosystemNpm, LatestVersion: "18.0.0"}))
	require.NoError(t, c.Set("npm:react", model.Metadata{Name: "react", Ecosystem: model.EcosystemNpm, LatestVersion: "18.2.0"}))

	got, ok := c.Get("npm:react")
	require.True(t, ok)
	assert.Equal(t, "18.2.0", got.LatestVersion)
}
