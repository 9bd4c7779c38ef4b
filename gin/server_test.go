package gin

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	papertrack "github.com/jackzhenguo/updatest-paper-in-arxiv"
	"github.com/jackzhenguo/updatest-paper-in-arxiv/jsonfile"
)

// fakeSearcher serves canned results so no test touches arXiv.
type fakeSearcher struct {
	results []papertrack.SearchResult
	err     error

	keyword string
	limit   int
}

func (s *fakeSearcher) Search(ctx context.Context, keyword string, limit int) ([]papertrack.SearchResult, error) {
	s.keyword = keyword
	s.limit = limit
	return s.results, s.err
}

func createServer(t *testing.T) (http.Handler, *fakeSearcher) {
	store, err := jsonfile.Open(filepath.Join(t.TempDir(), "papers.json"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	gin.SetMode(gin.ReleaseMode) // avoid unnecessary log
	searcher := &fakeSearcher{}
	return New(store, searcher), searcher
}

func createReader(i interface{}, t *testing.T) io.Reader {
	data, err := json.Marshal(i)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func do(t *testing.T, router http.Handler, method, url string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = createReader(body, t)
	}

	req := httptest.NewRequest(method, url, reader)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decode(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	r := make(map[string]interface{})
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &r))
	return r
}

// register + login, returning the session cookie.
func loginUser(t *testing.T, router http.Handler, email string) *http.Cookie {
	creds := map[string]string{"email": email, "password": "Password1"}

	resp := do(t, router, "POST", "/api/auth/register", creds)
	require.Equal(t, 200, resp.Code, resp.Body.String())

	resp = do(t, router, "POST", "/api/auth/login", creds)
	require.Equal(t, 200, resp.Code, resp.Body.String())

	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == "session_token" && cookie.Value != "" {
			return cookie
		}
	}

	t.Fatal("no session cookie in login response")
	return nil
}
