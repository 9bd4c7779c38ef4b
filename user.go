package papertrack

// User is an account identified by email. The email is normalized
// (trimmed, lowercased) by the caller before it reaches the store.
// Password holds the bcrypt hash, never the clear text.
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"-"`
	CreatedAt string `json:"created_at"`
}

// Session binds a bearer token to a user. Whoever presents the token is
// treated as UserID, no additional proof required. A user may hold any
// number of sessions at once.
type Session struct {
	Token     string `json:"token"`
	UserID    int    `json:"user_id"`
	CreatedAt string `json:"created_at"`
}

type UserStore interface {
	// UserByEmail returns the user registered under email, or nil if
	// there is none.
	UserByEmail(email string) (*User, error)

	// CreateUser registers a new user, allocating the ID and stamping
	// CreatedAt. Registering an email that already exists is a
	// constraint error.
	CreateUser(*User) error
}

type SessionStore interface {
	// CreateSession stores a session, stamping CreatedAt. If a session
	// with the same token already exists it is replaced.
	CreateSession(*Session) error

	// SessionByToken returns the session for token, or nil if there is
	// none.
	SessionByToken(token string) (*Session, error)

	// DeleteSession removes the session for token and returns the
	// number of rows removed.
	DeleteSession(token string) (int, error)
}
