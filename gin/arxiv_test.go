package gin

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	papertrack "github.com/jackzhenguo/updatest-paper-in-arxiv"
)

func TestSearch(t *testing.T) {
	router, searcher := createServer(t)
	searcher.results = []papertrack.SearchResult{
		{
			Title:       "Attention Is All You Need",
			Link:        "http://arxiv.org/abs/1706.03762v7",
			DOI:         "1706.03762v7",
			FirstAuthor: "Ashish Vaswani",
			Status:      papertrack.StatusPending,
		},
	}

	// Missing keyword
	resp := do(t, router, "POST", "/api/search", map[string]interface{}{})
	assert.Equal(t, 400, resp.Code)

	// Default limit
	resp = do(t, router, "POST", "/api/search", map[string]interface{}{"keyword": "attention"})
	require.Equal(t, 200, resp.Code, resp.Body.String())
	assert.Equal(t, "attention", searcher.keyword)
	assert.Equal(t, defaultMaxResults, searcher.limit)

	// Both limit spellings are accepted
	resp = do(t, router, "POST", "/api/search", map[string]interface{}{"keyword": "attention", "maxResults": 3})
	require.Equal(t, 200, resp.Code)
	assert.Equal(t, 3, searcher.limit)

	resp = do(t, router, "POST", "/api/search", map[string]interface{}{"keyword": "attention", "max_results": 7})
	require.Equal(t, 200, resp.Code)
	assert.Equal(t, 7, searcher.limit)
}

func TestSearch_UpstreamFailure(t *testing.T) {
	router, searcher := createServer(t)
	searcher.err = fmt.Errorf("arxiv responded 503 Service Unavailable")

	resp := do(t, router, "POST", "/api/search", map[string]interface{}{"keyword": "attention"})
	assert.Equal(t, 500, resp.Code)
	assert.Equal(t,
		"Failed to fetch papers. Please try again later.: arxiv responded 503 Service Unavailable",
		decode(t, resp)["message"])
}
