package papertrack

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var searchFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title type="html">ArXiv Query: search_query=all:"yolo"</title>
  <entry>
    <id>http://arxiv.org/abs/1705.09587v1</id>
    <published>2017-05-26T14:15:22Z</published>
    <title>Recurrent Existence Determination Through Policy Optimization</title>
    <summary>  Binary determination of the existence of objects is one of the
problems where humans perform extraordinarily better than computer vision
systems.  </summary>
    <author>
      <name>Baoxiang Wang</name>
      <affiliation>The Chinese University of Hong Kong</affiliation>
    </author>
    <author>
      <name>Someone Else</name>
    </author>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/1705.05922v1</id>
    <published>2017-05-16T20:01:09Z</published>
    <title>Look Once</title>
    <summary>Short summary.</summary>
  </entry>
</feed>`

func TestArxivClient_Search(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, searchFeed)
	}))
	defer ts.Close()

	client := NewArxivClient()
	client.url = ts.URL

	results, err := client.Search(context.Background(), "yolo", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	first := results[0]
	assert.Equal(t, "Recurrent Existence Determination Through Policy Optimization", first.Title)
	assert.Equal(t, "http://arxiv.org/abs/1705.09587v1", first.Link)
	assert.Equal(t, "1705.09587v1", first.DOI)
	assert.Equal(t, "2017-05-26T14:15:22Z", first.Published)
	assert.Equal(t, "Baoxiang Wang", first.FirstAuthor)
	assert.Equal(t, "The Chinese University of Hong Kong", first.AuthorAffiliation)
	assert.Equal(t, StatusPending, first.Status)
	assert.NotContains(t, first.Summary, "\n", "summary should be one line")

	second := results[1]
	assert.Equal(t, "Unknown Author", second.FirstAuthor)
	assert.Equal(t, "No affiliation listed", second.AuthorAffiliation)
}

func TestArxivClient_UpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client := NewArxivClient()
	client.url = ts.URL

	_, err := client.Search(context.Background(), "yolo", 10)
	assert.Error(t, err)
}

func TestCraftURL(t *testing.T) {
	client := NewArxivClient()

	u, err := client.craftURL("deep learning", 5)
	require.NoError(t, err)

	query, err := url.ParseQuery(u.RawQuery)
	require.NoError(t, err)

	assert.Equal(t, `all:"deep learning"`, query.Get("search_query"))
	assert.Equal(t, "0", query.Get("start"))
	assert.Equal(t, "5", query.Get("max_results"))
	assert.Equal(t, "submittedDate", query.Get("sortBy"))
	assert.Equal(t, "descending", query.Get("sortOrder"))
}
