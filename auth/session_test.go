package auth

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackzhenguo/updatest-paper-in-arxiv/jsonfile"
)

func createService(t *testing.T) *SessionService {
	store, err := jsonfile.Open(filepath.Join(t.TempDir(), "papers.json"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return &SessionService{Store: store}
}

func TestNewToken(t *testing.T) {
	first, err := NewToken()
	require.NoError(t, err)
	assert.Len(t, first, 64, "32 bytes hex encoded")

	second, err := NewToken()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestSessionService(t *testing.T) {
	service := createService(t)

	token, err := service.Create(7)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, ok := service.UserID(token)
	assert.True(t, ok)
	assert.Equal(t, 7, userID)

	_, ok = service.UserID("unknown")
	assert.False(t, ok)

	_, ok = service.UserID("")
	assert.False(t, ok)

	service.Delete(token)
	_, ok = service.UserID(token)
	assert.False(t, ok)

	// Deleting again, or deleting nothing, is a no-op.
	service.Delete(token)
	service.Delete("")
}
