package gin

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	router, _ := createServer(t)

	var tts = []struct {
		name string
		body map[string]string
		code int
	}{
		{
			name: "missing fields",
			body: map[string]string{"email": "ada@example.com"},
			code: 400,
		},
		{
			name: "weak password",
			body: map[string]string{"email": "ada@example.com", "password": "short"},
			code: 400,
		},
		{
			name: "no uppercase",
			body: map[string]string{"email": "ada@example.com", "password": "password1"},
			code: 400,
		},
		{
			name: "no digit",
			body: map[string]string{"email": "ada@example.com", "password": "Password"},
			code: 400,
		},
		{
			name: "ok",
			body: map[string]string{"email": "Ada@Example.com ", "password": "Password1"},
			code: 200,
		},
		{
			name: "duplicate, case-insensitive email",
			body: map[string]string{"email": "ada@example.com", "password": "Password1"},
			code: 400,
		},
	}

	for _, tt := range tts {
		resp := do(t, router, "POST", "/api/auth/register", tt.body)
		assert.Equal(t, tt.code, resp.Code, "%s: %s", tt.name, resp.Body.String())
	}
}

func TestLogin(t *testing.T) {
	router, _ := createServer(t)

	register := map[string]string{"email": "ada@example.com", "password": "Password1"}
	resp := do(t, router, "POST", "/api/auth/register", register)
	require.Equal(t, 200, resp.Code)

	// Wrong password
	resp = do(t, router, "POST", "/api/auth/login", map[string]string{"email": "ada@example.com", "password": "Password2"})
	assert.Equal(t, 401, resp.Code)

	// Unknown user
	resp = do(t, router, "POST", "/api/auth/login", map[string]string{"email": "bob@example.com", "password": "Password1"})
	assert.Equal(t, 401, resp.Code)

	// Missing credentials, no session
	resp = do(t, router, "POST", "/api/auth/login", map[string]string{})
	assert.Equal(t, 400, resp.Code)

	// Success
	resp = do(t, router, "POST", "/api/auth/login", register)
	require.Equal(t, 200, resp.Code)
	body := decode(t, resp)
	assert.Equal(t, "Login successful.", body["message"])
	assert.Equal(t, float64(1), body["userId"])

	var cookie string
	for _, c := range resp.Result().Cookies() {
		if c.Name == "session_token" {
			cookie = c.Value
			assert.True(t, c.HttpOnly, "session cookie must be http-only")
			assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
		}
	}
	require.NotEmpty(t, cookie)
}

func TestLogin_AlreadyLoggedIn(t *testing.T) {
	router, _ := createServer(t)
	cookie := loginUser(t, router, "ada@example.com")

	// Missing credentials but a valid session: report logged in.
	resp := do(t, router, "POST", "/api/auth/login", map[string]string{}, cookie)
	require.Equal(t, 200, resp.Code)
	body := decode(t, resp)
	assert.Equal(t, "Already logged in.", body["message"])
}

func TestStatusAndLogout(t *testing.T) {
	router, _ := createServer(t)

	resp := do(t, router, "POST", "/api/auth/status", nil)
	require.Equal(t, 200, resp.Code)
	assert.Equal(t, "Not logged in.", decode(t, resp)["message"])

	cookie := loginUser(t, router, "ada@example.com")

	resp = do(t, router, "POST", "/api/auth/status", nil, cookie)
	require.Equal(t, 200, resp.Code)
	body := decode(t, resp)
	assert.Equal(t, "Already logged in.", body["message"])
	assert.Equal(t, float64(1), body["userId"])

	resp = do(t, router, "POST", "/api/auth/logout", nil, cookie)
	require.Equal(t, 200, resp.Code)

	// The session is gone server-side, not just the cookie.
	resp = do(t, router, "POST", "/api/auth/status", nil, cookie)
	require.Equal(t, 200, resp.Code)
	assert.Equal(t, "Not logged in.", decode(t, resp)["message"])
}
