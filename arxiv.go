package papertrack

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var arxivSummaryPipe = CleaningPipe(
	strings.TrimSpace,
	OneLine,
	strings.TrimSpace,
)

// SearchResult is one entry of an arXiv keyword search, shaped for the
// search endpoint. Status is always pending: the result has not been
// saved yet.
type SearchResult struct {
	Title             string `json:"title"`
	Link              string `json:"link"`
	DOI               string `json:"doi"`
	Published         string `json:"published"`
	Summary           string `json:"summary"`
	FirstAuthor       string `json:"first_author"`
	AuthorAffiliation string `json:"author_affiliation"`
	Status            Status `json:"status"`
}

// Searcher finds papers by keyword.
type Searcher interface {
	Search(ctx context.Context, keyword string, limit int) ([]SearchResult, error)
}

type arxivEntry struct {
	Title     string `xml:"title"`
	ID        string `xml:"id"`
	Summary   string `xml:"summary"`
	Published string `xml:"published"`
	Authors   []struct {
		Name        string `xml:"name"`
		Affiliation string `xml:"affiliation"`
	} `xml:"author"`
}

type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

// ArxivClient queries the arXiv export API.
type ArxivClient struct {
	client *http.Client
	url    string
}

func NewArxivClient() *ArxivClient {
	return &ArxivClient{
		client: &http.Client{Timeout: 20 * time.Second},
		url:    "http://export.arxiv.org/api/query",
	}
}

// Search queries arXiv for keyword, newest submissions first.
func (c *ArxivClient) Search(ctx context.Context, keyword string, limit int) ([]SearchResult, error) {
	u, err := c.craftURL(keyword, limit)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("GET", u.String(), nil)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv responded %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var feed arxivFeed
	if err := xml.Unmarshal(data, &feed); err != nil {
		return nil, err
	}

	return parseEntries(feed), nil
}

func (c *ArxivClient) craftURL(keyword string, limit int) (*url.URL, error) {
	u, err := url.Parse(c.url)
	if err != nil {
		return nil, err
	}

	query := u.Query()
	query.Add("search_query", fmt.Sprintf("all:%q", keyword))
	query.Add("start", "0")
	query.Add("max_results", strconv.Itoa(limit))
	query.Add("sortBy", "submittedDate")
	query.Add("sortOrder", "descending")

	u.RawQuery = query.Encode()
	return u, nil
}

func parseEntries(feed arxivFeed) []SearchResult {
	results := make([]SearchResult, len(feed.Entries))
	for n, entry := range feed.Entries {
		firstAuthor := "Unknown Author"
		affiliation := "No affiliation listed"
		if len(entry.Authors) > 0 {
			if name := strings.TrimSpace(entry.Authors[0].Name); name != "" {
				firstAuthor = name
			}
			if aff := strings.TrimSpace(entry.Authors[0].Affiliation); aff != "" {
				affiliation = aff
			}
		}

		results[n] = SearchResult{
			Title:             strings.TrimSpace(entry.Title),
			Link:              entry.ID,
			DOI:               extractDOI(entry.ID),
			Published:         entry.Published,
			Summary:           arxivSummaryPipe(entry.Summary),
			FirstAuthor:       firstAuthor,
			AuthorAffiliation: affiliation,
			Status:            StatusPending,
		}
	}

	return results
}

// extractDOI keeps the last segment of the entry URL, e.g.
// http://arxiv.org/abs/1705.09587v1 -> 1705.09587v1.
func extractDOI(id string) string {
	parts := strings.Split(id, "/")
	return parts[len(parts)-1]
}
