package papertrack

import (
	"math"
	"time"
)

// Store is the full persistence surface, backed by exactly one of the
// two engines selected at startup (see the database package).
type Store interface {
	UserStore
	SessionStore
	PaperStore

	Close() error
}

// TimeFormat is the layout of persisted timestamps. It matches SQLite's
// CURRENT_TIMESTAMP, so lexicographic order on formatted values equals
// chronological order.
const TimeFormat = "2006-01-02 15:04:05"

// Timestamp formats t for storage, in UTC.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// NormalizeRating clamps a rating to the inclusive range [0, 5],
// rounding to the nearest integer. ok is false for NaN and infinities,
// which must not be stored.
func NormalizeRating(rating float64) (int, bool) {
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		return 0, false
	}
	if rating < 0 {
		return 0, true
	}
	if rating > 5 {
		return 5, true
	}
	return int(math.Round(rating)), true
}
