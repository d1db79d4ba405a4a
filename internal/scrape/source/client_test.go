package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientFetch(t *testing.T) {
	var gotReq scrapeRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/scrape", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(scrapeResponse{Jobs: []postingJSON{
			{Title: "Go Engineer", Company: "Acme", Location: "Remote"},
			{Title: "Platform Engineer", Company: "Beta", Location: "NYC", Site: "indeed"},
		}})
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, RequestsPerSec: 100, Burst: 10})
	c.Token = func() (string, error) { return "sekrit", nil }

	postings, err := c.Fetch(context.Background(), Query{
		Term: "golang", Site: "google", Limit: 5, HoursOld: 24,
		Country: "USA", Location: "Austin, TX",
	})
	require.NoError(t, err)
	require.Len(t, postings, 2)

	assert.Equal(t, "Bearer sekrit", gotAuth)
	assert.Equal(t, "golang", gotReq.SearchTerm)
	assert.Equal(t, "golang jobs near Austin, TX in the last 24 Hours", gotReq.GoogleSearchTerm)

	// Site falls back to the queried site when the service omits it.
	assert.Equal(t, "google", postings[0].Site)
	assert.Equal(t, "indeed", postings[1].Site)
	assert.Equal(t, "golang", postings[0].SearchTerm)
}

func TestClientFetchOmitsGoogleTermForOtherSites(t *testing.T) {
	var gotReq scrapeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(scrapeResponse{})
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, RequestsPerSec: 100, Burst: 10})
	_, err := c.Fetch(context.Background(), Query{Term: "golang", Site: "indeed", Location: "Austin, TX", HoursOld: 24})
	require.NoError(t, err)
	assert.Empty(t, gotReq.GoogleSearchTerm)
}

func TestClientFetchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, RequestsPerSec: 100, Burst: 10})
	_, err := c.Fetch(context.Background(), Query{Term: "golang", Site: "indeed"})
	require.Error(t, err)

	se, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, "indeed", se.Site)
	assert.Equal(t, "golang", se.Term)
	assert.Contains(t, se.Msg, "429")
}

func TestClientFetchConnectionRefused(t *testing.T) {
	c := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:1", RequestsPerSec: 100, Burst: 10})
	_, err := c.Fetch(context.Background(), Query{Term: "golang", Site: "indeed"})
	require.Error(t, err)

	_, ok := AsError(err)
	assert.True(t, ok, "transport failures must surface as *Error")
}

func TestErrorFormat(t *testing.T) {
	e := &Error{Site: "indeed", Term: "golang", Msg: "timeout"}
	assert.Equal(t, `[indeed] "golang": timeout`, e.Error())
}
