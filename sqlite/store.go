// Package sqlite is the primary storage engine, backed by an embedded
// SQLite database through database/sql.
package sqlite

import (
	"database/sql"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	papertrack "github.com/jackzhenguo/updatest-paper-in-arxiv"
	"github.com/jackzhenguo/updatest-paper-in-arxiv/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS user_paper_todo (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	paper_title TEXT NOT NULL,
	doi TEXT,
	paper_link TEXT,
	published TEXT,
	status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'in_progress', 'completed')),
	created_at TEXT DEFAULT CURRENT_TIMESTAMP,
	updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
	rating INTEGER DEFAULT 2,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
	UNIQUE(user_id, doi)
);

CREATE TRIGGER IF NOT EXISTS trigger_update_timestamp
AFTER UPDATE ON user_paper_todo
FOR EACH ROW
WHEN NEW.updated_at = OLD.updated_at
BEGIN
	UPDATE user_paper_todo SET updated_at = CURRENT_TIMESTAMP WHERE id = NEW.id;
END;

CREATE TABLE IF NOT EXISTS sessions (
	token TEXT PRIMARY KEY,
	user_id INTEGER NOT NULL,
	created_at TEXT DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);
`

// Store is the SQLite storage engine.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the database at path and applies the schema.
// Schema setup is idempotent, reopening an existing file is safe.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// The emulation engine is single-writer; holding SQLite to one
	// connection keeps locking behavior out of the picture here too.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, now: time.Now}, nil
}

// SetNow replaces the clock used to stamp timestamps. Test hook.
func (s *Store) SetNow(now func() time.Time) {
	s.now = now
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) timestamp() string {
	return papertrack.Timestamp(s.now())
}

// isConstraintErr recognizes SQLite uniqueness violations. The driver
// only exposes them through the message text.
func isConstraintErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}

// ------------------------------------------------------------------------------------------------
// Users
// ------------------------------------------------------------------------------------------------

func (s *Store) UserByEmail(email string) (*papertrack.User, error) {
	row := s.db.QueryRow(
		"SELECT id, email, password, created_at FROM users WHERE email = ?",
		email,
	)

	var user papertrack.User
	err := row.Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *Store) CreateUser(user *papertrack.User) error {
	user.CreatedAt = s.timestamp()

	res, err := s.db.Exec(
		"INSERT INTO users (email, password, created_at) VALUES (?, ?, ?)",
		user.Email, user.Password, user.CreatedAt,
	)
	if isConstraintErr(err) {
		return errors.New("email already registered", errors.Constraint())
	}
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = int(id)

	return nil
}

// ------------------------------------------------------------------------------------------------
// Sessions
// ------------------------------------------------------------------------------------------------

func (s *Store) CreateSession(session *papertrack.Session) error {
	session.CreatedAt = s.timestamp()

	// INSERT OR REPLACE gives the replace-by-token semantics: at most
	// one row per token, the latest insert wins.
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO sessions (token, user_id, created_at) VALUES (?, ?, ?)",
		session.Token, session.UserID, session.CreatedAt,
	)
	return err
}

func (s *Store) SessionByToken(token string) (*papertrack.Session, error) {
	row := s.db.QueryRow(
		"SELECT token, user_id, created_at FROM sessions WHERE token = ?",
		token,
	)

	var session papertrack.Session
	err := row.Scan(&session.Token, &session.UserID, &session.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &session, nil
}

func (s *Store) DeleteSession(token string) (int, error) {
	res, err := s.db.Exec("DELETE FROM sessions WHERE token = ?", token)
	if err != nil {
		return 0, err
	}

	return rowsAffected(res)
}

// ------------------------------------------------------------------------------------------------
// Papers
// ------------------------------------------------------------------------------------------------

const paperColumns = "id, user_id, paper_title, doi, paper_link, published, status, created_at, updated_at, rating"

func scanPaper(scan func(...interface{}) error) (papertrack.Paper, error) {
	var paper papertrack.Paper
	err := scan(
		&paper.ID, &paper.UserID, &paper.Title, &paper.DOI, &paper.Link,
		&paper.Published, &paper.Status, &paper.CreatedAt, &paper.UpdatedAt, &paper.Rating,
	)
	return paper, err
}

func (s *Store) PaperByDOI(userID int, doi string) (*papertrack.Paper, error) {
	row := s.db.QueryRow(
		"SELECT "+paperColumns+" FROM user_paper_todo WHERE user_id = ? AND doi = ?",
		userID, doi,
	)

	paper, err := scanPaper(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &paper, nil
}

func (s *Store) CreatePaper(paper *papertrack.Paper) error {
	now := s.timestamp()
	paper.Status = papertrack.StatusPending
	paper.Rating = papertrack.DefaultRating
	paper.CreatedAt = now
	paper.UpdatedAt = now

	res, err := s.db.Exec(
		`INSERT INTO user_paper_todo (user_id, paper_title, doi, paper_link, published, status, created_at, updated_at, rating)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		paper.UserID, paper.Title, paper.DOI, paper.Link, paper.Published,
		string(paper.Status), paper.CreatedAt, paper.UpdatedAt, paper.Rating,
	)
	if isConstraintErr(err) {
		return errors.New("paper already saved for this user", errors.Constraint())
	}
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	paper.ID = int(id)

	return nil
}

func (s *Store) PapersByUser(userID int) ([]papertrack.Paper, error) {
	rows, err := s.db.Query(
		"SELECT "+paperColumns+" FROM user_paper_todo WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	papers := make([]papertrack.Paper, 0)
	for rows.Next() {
		paper, err := scanPaper(rows.Scan)
		if err != nil {
			return nil, err
		}
		papers = append(papers, paper)
	}

	return papers, rows.Err()
}

func (s *Store) UpdatePaperStatus(userID int, doi string, status papertrack.Status) (int, error) {
	if !status.Valid() {
		return 0, errors.New("invalid status", errors.Constraint())
	}

	res, err := s.db.Exec(
		"UPDATE user_paper_todo SET status = ?, updated_at = ? WHERE user_id = ? AND doi = ?",
		string(status), s.timestamp(), userID, doi,
	)
	if err != nil {
		return 0, err
	}

	return rowsAffected(res)
}

func (s *Store) UpdatePaperRating(userID int, doi string, rating float64) (int, error) {
	// Normalized in Go so both engines treat NaN and infinities the
	// same way: no rows affected, nothing stored.
	normalized, ok := papertrack.NormalizeRating(rating)
	if !ok {
		return 0, nil
	}

	res, err := s.db.Exec(
		"UPDATE user_paper_todo SET rating = ?, updated_at = ? WHERE user_id = ? AND doi = ?",
		normalized, s.timestamp(), userID, doi,
	)
	if err != nil {
		return 0, err
	}

	return rowsAffected(res)
}

func (s *Store) DeletePaper(userID int, doi string) (int, error) {
	res, err := s.db.Exec(
		"DELETE FROM user_paper_todo WHERE user_id = ? AND doi = ?",
		userID, doi,
	)
	if err != nil {
		return 0, err
	}

	return rowsAffected(res)
}

func rowsAffected(res sql.Result) (int, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
