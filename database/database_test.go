package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	papertrack "github.com/jackzhenguo/updatest-paper-in-arxiv"
	"github.com/jackzhenguo/updatest-paper-in-arxiv/jsonfile"
	"github.com/jackzhenguo/updatest-paper-in-arxiv/log"
	"github.com/jackzhenguo/updatest-paper-in-arxiv/sqlite"
)

func TestOpen_PrefersSqlite(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir, log.New("dev"))
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.(*sqlite.Store)
	assert.True(t, ok, "sqlite should be the primary engine")

	user := papertrack.User{Email: "ada@example.com", Password: "hash"}
	require.NoError(t, store.CreateUser(&user))
}

func TestOpen_FallsBackToJSONFile(t *testing.T) {
	dir := t.TempDir()

	// A directory squatting the database path makes the sqlite engine
	// fail to open.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, sqliteFile), 0700))

	store, err := Open(dir, log.New("dev"))
	require.NoError(t, err, "fallback must not surface an error")
	defer store.Close()

	_, ok := store.(*jsonfile.Store)
	assert.True(t, ok, "should fall back to the JSON engine")

	// The fallback engine is fully functional.
	user := papertrack.User{Email: "ada@example.com", Password: "hash"}
	require.NoError(t, store.CreateUser(&user))

	stored, err := store.UserByEmail("ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)

	_, err = os.Stat(filepath.Join(dir, jsonFile))
	assert.NoError(t, err, "state should land in the JSON file")
}

func TestOpen_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store, err := Open(dir, log.New("dev"))
	require.NoError(t, err)
	defer store.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
