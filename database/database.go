// Package database selects the storage engine. The SQLite engine is the
// primary; when it cannot be opened the JSON-file engine takes over for
// the rest of the process lifetime. Both implement papertrack.Store.
package database

import (
	"os"
	"path/filepath"

	papertrack "github.com/jackzhenguo/updatest-paper-in-arxiv"
	"github.com/jackzhenguo/updatest-paper-in-arxiv/jsonfile"
	"github.com/jackzhenguo/updatest-paper-in-arxiv/log"
	"github.com/jackzhenguo/updatest-paper-in-arxiv/sqlite"
)

const (
	sqliteFile = "papers.db"
	jsonFile   = "papers.json"
)

// Open builds the store under dir, creating the directory if needed.
// The engine is chosen once, here: callers hold on to the returned
// store for the lifetime of the process and close it on shutdown.
// Falling back is not an error, it only costs the durability guarantees
// of a real transactional engine, so it is logged and swallowed.
func Open(dir string, logger log.Logger) (papertrack.Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	store, err := sqlite.Open(filepath.Join(dir, sqliteFile))
	if err == nil {
		logger.Debugf("storage: sqlite engine at %s", filepath.Join(dir, sqliteFile))
		return store, nil
	}

	logger.Errorf("storage: sqlite engine unavailable, falling back to JSON file: %v", err)
	return jsonfile.Open(filepath.Join(dir, jsonFile))
}
