package papertrack

// Status is the reading status of a saved paper.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// DefaultRating is the rating given to a paper when it is saved.
const DefaultRating = 2

// Paper is an entry in a user's reading list. The DOI is free text: the
// empty string is a valid value, distinct from any other. The pair
// (UserID, DOI) is unique per user.
type Paper struct {
	ID        int    `json:"id"`
	UserID    int    `json:"-"`
	Title     string `json:"title"`
	DOI       string `json:"doi"`
	Link      string `json:"link"`
	Published string `json:"published"`
	Status    Status `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	Rating    int    `json:"rating"`
}

// PaperStore is the closed set of reading-list operations. Both storage
// engines implement it with identical observable behavior.
type PaperStore interface {
	// PaperByDOI returns the paper saved by userID under doi, or nil if
	// there is none.
	PaperByDOI(userID int, doi string) (*Paper, error)

	// CreatePaper saves a new paper. It allocates the ID, forces
	// Status to pending and Rating to DefaultRating, and stamps
	// CreatedAt/UpdatedAt. Saving a (user, doi) pair that already
	// exists is a constraint error.
	CreatePaper(*Paper) error

	// PapersByUser lists the user's papers, most recently created
	// first. The returned papers are copies: mutating them does not
	// affect the stored state.
	PapersByUser(userID int) ([]Paper, error)

	// UpdatePaperStatus sets the status of the paper identified by
	// (userID, doi) and refreshes UpdatedAt. It returns the number of
	// rows affected: 0 means the pair does not exist.
	UpdatePaperStatus(userID int, doi string, status Status) (int, error)

	// UpdatePaperRating sets the rating of the paper identified by
	// (userID, doi), clamped to [0, 5], and refreshes UpdatedAt.
	// A NaN or infinite rating affects 0 rows and stores nothing.
	UpdatePaperRating(userID int, doi string, rating float64) (int, error)

	// DeletePaper removes the paper identified by (userID, doi) and
	// returns the number of rows removed.
	DeletePaper(userID int, doi string) (int, error)
}
