package auth

import (
	"crypto/rand"
	"encoding/hex"

	papertrack "github.com/jackzhenguo/updatest-paper-in-arxiv"
)

const (
	// SessionCookie is the name of the cookie carrying the bearer token.
	SessionCookie = "session_token"

	// SessionMaxAge is the cookie lifetime in seconds (30 days).
	SessionMaxAge = 60 * 60 * 24 * 30
)

// NewToken returns a fresh bearer token: 32 random bytes, hex encoded.
func NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// SessionService creates, resolves and revokes bearer sessions on top
// of a session store.
type SessionService struct {
	Store papertrack.SessionStore
}

// Create opens a session for userID and returns its token.
func (s *SessionService) Create(userID int) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}

	session := papertrack.Session{Token: token, UserID: userID}
	if err := s.Store.CreateSession(&session); err != nil {
		return "", err
	}

	return token, nil
}

// UserID resolves a token to the user it authenticates. It returns
// (0, false) for an empty or unknown token.
func (s *SessionService) UserID(token string) (int, bool) {
	if token == "" {
		return 0, false
	}

	session, err := s.Store.SessionByToken(token)
	if err != nil || session == nil {
		return 0, false
	}

	return session.UserID, true
}

// Delete revokes a token. Unknown tokens are a no-op.
func (s *SessionService) Delete(token string) {
	if token == "" {
		return
	}

	s.Store.DeleteSession(token)
}
