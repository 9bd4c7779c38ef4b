// Package storetest holds the conformance suite that every storage
// engine must pass. The two engines are interchangeable: any behavior
// observable through papertrack.Store has to be identical, so the same
// suite runs against both.
package storetest

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	papertrack "github.com/jackzhenguo/updatest-paper-in-arxiv"
	"github.com/jackzhenguo/updatest-paper-in-arxiv/errors"
)

// Factory returns a fresh, empty store. It is called once per subtest.
type Factory func(t *testing.T) papertrack.Store

// clockSetter is implemented by both engines so the suite can control
// timestamps.
type clockSetter interface {
	SetNow(func() time.Time)
}

func setNow(t *testing.T, store papertrack.Store, at time.Time) {
	cs, ok := store.(clockSetter)
	require.True(t, ok, "store must expose SetNow for the conformance suite")
	cs.SetNow(func() time.Time { return at })
}

func createUser(t *testing.T, store papertrack.Store, email string) *papertrack.User {
	user := papertrack.User{Email: email, Password: "hash"}
	require.NoError(t, store.CreateUser(&user))
	return &user
}

func createPaper(t *testing.T, store papertrack.Store, userID int, doi string) *papertrack.Paper {
	paper := papertrack.Paper{
		UserID: userID,
		Title:  "Paper " + doi,
		DOI:    doi,
		Link:   "http://arxiv.org/abs/" + doi,
	}
	require.NoError(t, store.CreatePaper(&paper))
	return &paper
}

// Run exercises every store property against the given engine.
func Run(t *testing.T, factory Factory) {
	t.Run("UserEmailUnique", func(t *testing.T) { testUserEmailUnique(t, factory(t)) })
	t.Run("UserByEmailAbsent", func(t *testing.T) { testUserByEmailAbsent(t, factory(t)) })
	t.Run("PaperDefaults", func(t *testing.T) { testPaperDefaults(t, factory(t)) })
	t.Run("PaperDOIUniquePerUser", func(t *testing.T) { testPaperDOIUniquePerUser(t, factory(t)) })
	t.Run("EmptyDOIIsAValue", func(t *testing.T) { testEmptyDOIIsAValue(t, factory(t)) })
	t.Run("SessionReplaceByToken", func(t *testing.T) { testSessionReplaceByToken(t, factory(t)) })
	t.Run("SessionDelete", func(t *testing.T) { testSessionDelete(t, factory(t)) })
	t.Run("RatingClamp", func(t *testing.T) { testRatingClamp(t, factory(t)) })
	t.Run("StatusUpdate", func(t *testing.T) { testStatusUpdate(t, factory(t)) })
	t.Run("InjectedClockControlsTimestamps", func(t *testing.T) { testInjectedClockControlsTimestamps(t, factory(t)) })
	t.Run("PaperOrdering", func(t *testing.T) { testPaperOrdering(t, factory(t)) })
	t.Run("ZeroRowUpdateDelete", func(t *testing.T) { testZeroRowUpdateDelete(t, factory(t)) })
	t.Run("ListedPapersAreCopies", func(t *testing.T) { testListedPapersAreCopies(t, factory(t)) })
	t.Run("IDsNeverReused", func(t *testing.T) { testIDsNeverReused(t, factory(t)) })
}

func testUserEmailUnique(t *testing.T, store papertrack.Store) {
	defer store.Close()

	first := createUser(t, store, "ada@example.com")
	assert.Equal(t, 1, first.ID)

	err := store.CreateUser(&papertrack.User{Email: "ada@example.com", Password: "other"})
	require.Error(t, err)
	errors.AssertConstraint(t, err)

	// Exactly one row left, the original one.
	user, err := store.UserByEmail("ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, first.ID, user.ID)
	assert.Equal(t, "hash", user.Password)
}

func testUserByEmailAbsent(t *testing.T, store papertrack.Store) {
	defer store.Close()

	user, err := store.UserByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func testPaperDefaults(t *testing.T, store papertrack.Store) {
	defer store.Close()

	user := createUser(t, store, "ada@example.com")
	paper := createPaper(t, store, user.ID, "1705.09587v1")

	stored, err := store.PaperByDOI(user.ID, "1705.09587v1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, paper.ID, stored.ID)
	assert.Equal(t, papertrack.StatusPending, stored.Status)
	assert.Equal(t, papertrack.DefaultRating, stored.Rating)
	assert.NotEmpty(t, stored.CreatedAt)
	assert.NotEmpty(t, stored.UpdatedAt)
}

func testPaperDOIUniquePerUser(t *testing.T, store papertrack.Store) {
	defer store.Close()

	ada := createUser(t, store, "ada@example.com")
	bob := createUser(t, store, "bob@example.com")

	createPaper(t, store, ada.ID, "1705.09587v1")

	err := store.CreatePaper(&papertrack.Paper{UserID: ada.ID, Title: "Again", DOI: "1705.09587v1"})
	require.Error(t, err)
	errors.AssertConstraint(t, err)

	// Same DOI for another user is fine.
	createPaper(t, store, bob.ID, "1705.09587v1")

	adaPapers, err := store.PapersByUser(ada.ID)
	require.NoError(t, err)
	assert.Len(t, adaPapers, 1)

	bobPapers, err := store.PapersByUser(bob.ID)
	require.NoError(t, err)
	assert.Len(t, bobPapers, 1)
}

func testEmptyDOIIsAValue(t *testing.T, store papertrack.Store) {
	defer store.Close()

	user := createUser(t, store, "ada@example.com")
	createPaper(t, store, user.ID, "")

	err := store.CreatePaper(&papertrack.Paper{UserID: user.ID, Title: "Another without DOI", DOI: ""})
	require.Error(t, err)
	errors.AssertConstraint(t, err)

	stored, err := store.PaperByDOI(user.ID, "")
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func testSessionReplaceByToken(t *testing.T, store papertrack.Store) {
	defer store.Close()

	ada := createUser(t, store, "ada@example.com")
	bob := createUser(t, store, "bob@example.com")

	require.NoError(t, store.CreateSession(&papertrack.Session{Token: "tok", UserID: ada.ID}))
	require.NoError(t, store.CreateSession(&papertrack.Session{Token: "tok", UserID: bob.ID}))

	session, err := store.SessionByToken("tok")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, bob.ID, session.UserID, "second insert should win")

	// Exactly one row: deleting it once removes everything.
	n, err := store.DeleteSession("tok")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	session, err = store.SessionByToken("tok")
	require.NoError(t, err)
	assert.Nil(t, session)
}

func testSessionDelete(t *testing.T, store papertrack.Store) {
	defer store.Close()

	ada := createUser(t, store, "ada@example.com")
	require.NoError(t, store.CreateSession(&papertrack.Session{Token: "tok", UserID: ada.ID}))

	n, err := store.DeleteSession("unknown")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = store.DeleteSession("tok")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = store.DeleteSession("tok")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func testRatingClamp(t *testing.T, store papertrack.Store) {
	defer store.Close()

	user := createUser(t, store, "ada@example.com")
	createPaper(t, store, user.ID, "1705.09587v1")

	tts := []struct {
		rating   float64
		expected int
	}{
		{-5, 0},
		{0, 0},
		{3, 3},
		{5, 5},
		{9, 5},
	}

	for _, tt := range tts {
		n, err := store.UpdatePaperRating(user.ID, "1705.09587v1", tt.rating)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		stored, err := store.PaperByDOI(user.ID, "1705.09587v1")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, tt.expected, stored.Rating, "rating %v should clamp to %d", tt.rating, tt.expected)
	}

	// Non-finite input is a no-op, not a stored value.
	for _, rating := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		n, err := store.UpdatePaperRating(user.ID, "1705.09587v1", rating)
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		stored, err := store.PaperByDOI(user.ID, "1705.09587v1")
		require.NoError(t, err)
		assert.Equal(t, 5, stored.Rating, "non-finite rating should leave the last value")
	}
}

func testStatusUpdate(t *testing.T, store papertrack.Store) {
	defer store.Close()

	user := createUser(t, store, "ada@example.com")
	createPaper(t, store, user.ID, "1705.09587v1")

	n, err := store.UpdatePaperStatus(user.ID, "1705.09587v1", papertrack.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stored, err := store.PaperByDOI(user.ID, "1705.09587v1")
	require.NoError(t, err)
	assert.Equal(t, papertrack.StatusInProgress, stored.Status)

	_, err = store.UpdatePaperStatus(user.ID, "1705.09587v1", papertrack.Status("on_fire"))
	require.Error(t, err)

	stored, err = store.PaperByDOI(user.ID, "1705.09587v1")
	require.NoError(t, err)
	assert.Equal(t, papertrack.StatusInProgress, stored.Status, "bad status should not be stored")
}

func testInjectedClockControlsTimestamps(t *testing.T, store papertrack.Store) {
	defer store.Close()

	created := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	setNow(t, store, created)

	user := createUser(t, store, "ada@example.com")
	createPaper(t, store, user.ID, "1705.09587v1")

	stored, err := store.PaperByDOI(user.ID, "1705.09587v1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "2020-01-02 03:04:05", stored.CreatedAt)
	assert.Equal(t, "2020-01-02 03:04:05", stored.UpdatedAt)

	// Updates restamp UpdatedAt from the injected clock, CreatedAt is
	// left alone.
	setNow(t, store, created.Add(time.Hour))
	_, err = store.UpdatePaperStatus(user.ID, "1705.09587v1", papertrack.StatusCompleted)
	require.NoError(t, err)

	stored, err = store.PaperByDOI(user.ID, "1705.09587v1")
	require.NoError(t, err)
	assert.Equal(t, "2020-01-02 03:04:05", stored.CreatedAt)
	assert.Equal(t, "2020-01-02 04:04:05", stored.UpdatedAt)

	setNow(t, store, created.Add(2*time.Hour))
	_, err = store.UpdatePaperRating(user.ID, "1705.09587v1", 4)
	require.NoError(t, err)

	stored, err = store.PaperByDOI(user.ID, "1705.09587v1")
	require.NoError(t, err)
	assert.Equal(t, "2020-01-02 05:04:05", stored.UpdatedAt)
}

func testPaperOrdering(t *testing.T, store papertrack.Store) {
	defer store.Close()

	user := createUser(t, store, "ada@example.com")

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	dois := []string{"first", "second", "third"}
	for i, doi := range dois {
		setNow(t, store, base.Add(time.Duration(i)*time.Minute))
		createPaper(t, store, user.ID, doi)
	}

	papers, err := store.PapersByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, papers, 3)

	assert.Equal(t, "third", papers[0].DOI)
	assert.Equal(t, "second", papers[1].DOI)
	assert.Equal(t, "first", papers[2].DOI)
}

func testZeroRowUpdateDelete(t *testing.T, store papertrack.Store) {
	defer store.Close()

	user := createUser(t, store, "ada@example.com")

	n, err := store.UpdatePaperStatus(user.ID, "ghost", papertrack.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = store.UpdatePaperRating(user.ID, "ghost", 4)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = store.DeletePaper(user.ID, "ghost")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// None of the above created a row.
	papers, err := store.PapersByUser(user.ID)
	require.NoError(t, err)
	assert.Len(t, papers, 0)
}

func testListedPapersAreCopies(t *testing.T, store papertrack.Store) {
	defer store.Close()

	user := createUser(t, store, "ada@example.com")
	createPaper(t, store, user.ID, "1705.09587v1")

	papers, err := store.PapersByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, papers, 1)

	papers[0].Title = "mutated"
	papers[0].Rating = 99

	stored, err := store.PaperByDOI(user.ID, "1705.09587v1")
	require.NoError(t, err)
	assert.Equal(t, "Paper 1705.09587v1", stored.Title)
	assert.Equal(t, papertrack.DefaultRating, stored.Rating)
}

func testIDsNeverReused(t *testing.T, store papertrack.Store) {
	defer store.Close()

	user := createUser(t, store, "ada@example.com")

	first := createPaper(t, store, user.ID, "a")
	n, err := store.DeletePaper(user.ID, "a")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	second := createPaper(t, store, user.ID, "b")
	assert.Greater(t, second.ID, first.ID, "ids must not be reused after deletion")
}
