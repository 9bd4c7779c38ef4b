// Package jsonfile stores everything in a single JSON file. It is the
// fallback engine, used when the SQLite engine cannot be opened: the
// whole state lives in memory and is written back to the file after
// every successful mutation.
//
// The engine assumes a single logical writer at a time. It has no
// concurrency control of its own: overlapping writers would race on the
// in-memory state and the file, last write wins.
package jsonfile

import (
	"encoding/json"
	"os"
	"sort"
	"time"

	papertrack "github.com/jackzhenguo/updatest-paper-in-arxiv"
	"github.com/jackzhenguo/updatest-paper-in-arxiv/errors"
)

// fileData mirrors the on-disk layout. IDs are allocated from persisted
// counters, monotonically, and never reused after deletions.
type fileData struct {
	NextIDs  nextIDs      `json:"nextIds"`
	Users    []userRow    `json:"users"`
	Sessions []sessionRow `json:"sessions"`
	Papers   []paperRow   `json:"user_paper_todo"`
}

type nextIDs struct {
	Users  int `json:"users"`
	Papers int `json:"user_paper_todo"`
}

func emptyData() *fileData {
	return &fileData{
		NextIDs:  nextIDs{Users: 1, Papers: 1},
		Users:    []userRow{},
		Sessions: []sessionRow{},
		Papers:   []paperRow{},
	}
}

// Store is the JSON-file storage engine.
type Store struct {
	path string
	data *fileData
	now  func() time.Time
}

// Open loads the file at path, or starts empty when the file is absent,
// unreadable or corrupt. A bad file is treated as data loss, not as a
// reason to fail.
func Open(path string) (*Store, error) {
	s := &Store{path: path, now: time.Now}
	s.load()
	return s, nil
}

// SetNow replaces the clock used to stamp timestamps. Test hook.
func (s *Store) SetNow(now func() time.Time) {
	s.now = now
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) load() {
	s.data = emptyData()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var data fileData
	if err := json.Unmarshal(raw, &data); err != nil {
		return
	}

	// Counters must stay ahead of every stored row, even if the file
	// was written with stale ones.
	for _, u := range data.Users {
		if u.ID >= data.NextIDs.Users {
			data.NextIDs.Users = u.ID + 1
		}
	}
	for _, p := range data.Papers {
		if p.ID >= data.NextIDs.Papers {
			data.NextIDs.Papers = p.ID + 1
		}
	}
	if data.NextIDs.Users < 1 {
		data.NextIDs.Users = 1
	}
	if data.NextIDs.Papers < 1 {
		data.NextIDs.Papers = 1
	}
	if data.Users == nil {
		data.Users = []userRow{}
	}
	if data.Sessions == nil {
		data.Sessions = []sessionRow{}
	}
	if data.Papers == nil {
		data.Papers = []paperRow{}
	}

	s.data = &data
}

// persist writes the whole state back to the file, synchronously, so
// the file never diverges from memory as far as callers can tell.
func (s *Store) persist() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, raw, 0600)
}

func (s *Store) timestamp() string {
	return papertrack.Timestamp(s.now())
}

// ------------------------------------------------------------------------------------------------
// Users
// ------------------------------------------------------------------------------------------------

func (s *Store) UserByEmail(email string) (*papertrack.User, error) {
	for _, row := range s.data.Users {
		if row.Email == email {
			user := row.toUser()
			return &user, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateUser(user *papertrack.User) error {
	for _, row := range s.data.Users {
		if row.Email == user.Email {
			return errors.New("email already registered", errors.Constraint())
		}
	}

	user.ID = s.data.NextIDs.Users
	user.CreatedAt = s.timestamp()
	s.data.NextIDs.Users++
	s.data.Users = append(s.data.Users, newUserRow(user))

	return s.persist()
}

// ------------------------------------------------------------------------------------------------
// Sessions
// ------------------------------------------------------------------------------------------------

func (s *Store) CreateSession(session *papertrack.Session) error {
	// Replace by token: drop any session already holding it.
	kept := s.data.Sessions[:0]
	for _, row := range s.data.Sessions {
		if row.Token != session.Token {
			kept = append(kept, row)
		}
	}
	s.data.Sessions = kept

	session.CreatedAt = s.timestamp()
	s.data.Sessions = append(s.data.Sessions, newSessionRow(session))

	return s.persist()
}

func (s *Store) SessionByToken(token string) (*papertrack.Session, error) {
	for _, row := range s.data.Sessions {
		if row.Token == token {
			session := row.toSession()
			return &session, nil
		}
	}
	return nil, nil
}

func (s *Store) DeleteSession(token string) (int, error) {
	kept := make([]sessionRow, 0, len(s.data.Sessions))
	for _, row := range s.data.Sessions {
		if row.Token != token {
			kept = append(kept, row)
		}
	}

	removed := len(s.data.Sessions) - len(kept)
	if removed == 0 {
		// No state change, do not touch the disk.
		return 0, nil
	}

	s.data.Sessions = kept
	return removed, s.persist()
}

// ------------------------------------------------------------------------------------------------
// Papers
// ------------------------------------------------------------------------------------------------

func (s *Store) PaperByDOI(userID int, doi string) (*papertrack.Paper, error) {
	for _, row := range s.data.Papers {
		if row.UserID == userID && row.DOI == doi {
			paper := row.toPaper()
			return &paper, nil
		}
	}
	return nil, nil
}

func (s *Store) CreatePaper(paper *papertrack.Paper) error {
	for _, row := range s.data.Papers {
		if row.UserID == paper.UserID && row.DOI == paper.DOI {
			return errors.New("paper already saved for this user", errors.Constraint())
		}
	}

	now := s.timestamp()
	paper.ID = s.data.NextIDs.Papers
	paper.Status = papertrack.StatusPending
	paper.Rating = papertrack.DefaultRating
	paper.CreatedAt = now
	paper.UpdatedAt = now
	s.data.NextIDs.Papers++
	s.data.Papers = append(s.data.Papers, newPaperRow(paper))

	return s.persist()
}

func (s *Store) PapersByUser(userID int) ([]papertrack.Paper, error) {
	papers := make([]papertrack.Paper, 0)
	for _, row := range s.data.Papers {
		if row.UserID == userID {
			papers = append(papers, row.toPaper())
		}
	}

	// Timestamps are formatted so that string order is time order. ID
	// breaks ties between papers created within the same second.
	sort.SliceStable(papers, func(i, j int) bool {
		if papers[i].CreatedAt != papers[j].CreatedAt {
			return papers[i].CreatedAt > papers[j].CreatedAt
		}
		return papers[i].ID > papers[j].ID
	})

	return papers, nil
}

func (s *Store) UpdatePaperStatus(userID int, doi string, status papertrack.Status) (int, error) {
	if !status.Valid() {
		return 0, errors.New("invalid status", errors.Constraint())
	}

	for i := range s.data.Papers {
		row := &s.data.Papers[i]
		if row.UserID == userID && row.DOI == doi {
			row.Status = string(status)
			row.UpdatedAt = s.timestamp()
			return 1, s.persist()
		}
	}

	return 0, nil
}

func (s *Store) UpdatePaperRating(userID int, doi string, rating float64) (int, error) {
	normalized, ok := papertrack.NormalizeRating(rating)
	if !ok {
		return 0, nil
	}

	for i := range s.data.Papers {
		row := &s.data.Papers[i]
		if row.UserID == userID && row.DOI == doi {
			row.Rating = normalized
			row.UpdatedAt = s.timestamp()
			return 1, s.persist()
		}
	}

	return 0, nil
}

func (s *Store) DeletePaper(userID int, doi string) (int, error) {
	kept := make([]paperRow, 0, len(s.data.Papers))
	for _, row := range s.data.Papers {
		if row.UserID != userID || row.DOI != doi {
			kept = append(kept, row)
		}
	}

	removed := len(s.data.Papers) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	s.data.Papers = kept
	return removed, s.persist()
}
