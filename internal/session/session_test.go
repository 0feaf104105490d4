package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePrefersConfigured(t *testing.T) {
	dir, err := Resolve("/tmp/custom-profile")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom-profile", dir)
}

func TestIsWarm(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profile")

	assert.False(t, IsWarm(dir), "missing directory is cold")

	require.NoError(t, Ensure(dir))
	assert.False(t, IsWarm(dir), "empty directory is cold")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cookies"), []byte("x"), 0600))
	assert.True(t, IsWarm(dir))
}

func TestReset(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profile")
	require.NoError(t, Ensure(dir))
	require.NoError(t, Reset(dir))

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestSnapshotRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")

	// First cookie has no priority; browsers omit it on some cookies and
	// the snapshot must still read back.
	cookies := []Cookie{
		{Name: "NID", Value: "abc", Domain: ".google.com", Path: "/"},
		{Name: "consent", Value: "yes", Domain: ".google.com", Path: "/", Priority: "Medium"},
	}
	require.NoError(t, SaveSnapshot(path, cookies))

	snap, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.False(t, snap.CapturedAt.IsZero())
	require.Len(t, snap.Cookies, 2)
	assert.Equal(t, "NID", snap.Cookies[0].Name)
	assert.Empty(t, snap.Cookies[0].Priority)
	assert.Equal(t, "Medium", snap.Cookies[1].Priority)
}
