package gin

import (
	"github.com/gin-gonic/gin"

	papertrack "github.com/jackzhenguo/updatest-paper-in-arxiv"
	"github.com/jackzhenguo/updatest-paper-in-arxiv/errors"
)

const defaultMaxResults = 10

type SearchHandler struct {
	Searcher papertrack.Searcher
}

func (h *SearchHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/search", JSONFormatter(h.Search))
}

func (h *SearchHandler) Search(c *gin.Context) (interface{}, error) {
	var body struct {
		Keyword       string `json:"keyword"`
		MaxResults    int    `json:"maxResults"`
		MaxResultsAlt int    `json:"max_results"`
	}
	c.ShouldBindJSON(&body)

	if body.Keyword == "" {
		return nil, errors.New("Keyword is required.", errors.BadRequest())
	}

	limit := body.MaxResults
	if limit <= 0 {
		limit = body.MaxResultsAlt
	}
	if limit <= 0 {
		limit = defaultMaxResults
	}

	results, err := h.Searcher.Search(c.Request.Context(), body.Keyword, limit)
	if err != nil {
		return nil, errors.New("Failed to fetch papers. Please try again later.", errors.WithCause(err))
	}

	return results, nil
}
