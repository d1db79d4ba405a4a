package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"jobscout-engine/internal/domain"
)

// Client talks to the external scrape service, a local sidecar that does
// the actual site-specific scraping and hands back normalized JSON.
type Client struct {
	baseURL string
	hc      *http.Client
	limiter *hostLimiter

	// Token returns the optional bearer token for the service; a lookup
	// failure just means the request goes out unauthenticated.
	Token func() (string, error)
}

type ClientConfig struct {
	BaseURL        string
	RequestsPerSec float64
	Burst          int
}

func NewClient(cfg ClientConfig) *Client {
	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 1.0
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 2
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		hc:      &http.Client{Timeout: 30 * time.Second},
		limiter: newHostLimiter(rps, burst),
	}
}

func (c *Client) Name() string { return "scrape-service" }

type scrapeRequest struct {
	Site             string `json:"site"`
	SearchTerm       string `json:"search_term"`
	ResultsWanted    int    `json:"results_wanted"`
	HoursOld         int    `json:"hours_old"`
	Country          string `json:"country"`
	Location         string `json:"location,omitempty"`
	GoogleSearchTerm string `json:"google_search_term,omitempty"`
}

type scrapeResponse struct {
	Jobs []postingJSON `json:"jobs"`
}

type postingJSON struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	JobURL      string   `json:"job_url"`
	Description string   `json:"description"`
	MinAmount   *float64 `json:"min_amount"`
	MaxAmount   *float64 `json:"max_amount"`
	Currency    string   `json:"currency"`
	Interval    string   `json:"interval"`
	Site        string   `json:"site"`
}

// Fetch runs one scrape against one site. Everything that can ordinarily go
// wrong is folded into a *Error value; Fetch never panics across its
// boundary.
func (c *Client) Fetch(ctx context.Context, q Query) ([]domain.Posting, error) {
	endpoint := c.baseURL + "/scrape"

	if err := c.limiter.waitURL(ctx, endpoint); err != nil {
		return nil, &Error{Site: q.Site, Term: q.Term, Msg: "rate wait: " + err.Error()}
	}

	sr := scrapeRequest{
		Site:          q.Site,
		SearchTerm:    q.Term,
		ResultsWanted: q.Limit,
		HoursOld:      q.HoursOld,
		Country:       q.Country,
		Location:      q.Location,
	}
	if q.Site == "google" {
		sr.GoogleSearchTerm = GoogleSearchTerm(q.Term, q.Location, q.HoursOld)
	}

	body, err := json.Marshal(sr)
	if err != nil {
		return nil, &Error{Site: q.Site, Term: q.Term, Msg: "encode request: " + err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Site: q.Site, Term: q.Term, Msg: "build request: " + err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "JobScout/1.0 (+local)")
	if c.Token != nil {
		if tok, terr := c.Token(); terr == nil && tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, &Error{Site: q.Site, Term: q.Term, Msg: err.Error()}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 256))
		return nil, &Error{
			Site: q.Site,
			Term: q.Term,
			Msg:  fmt.Sprintf("status %d: %s", res.StatusCode, strings.TrimSpace(string(snippet))),
		}
	}

	var out scrapeResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, &Error{Site: q.Site, Term: q.Term, Msg: "decode response: " + err.Error()}
	}

	postings := make([]domain.Posting, 0, len(out.Jobs))
	for _, j := range out.Jobs {
		site := j.Site
		if site == "" {
			site = q.Site
		}
		postings = append(postings, domain.Posting{
			Title:       j.Title,
			Company:     j.Company,
			Location:    j.Location,
			JobURL:      j.JobURL,
			Description: j.Description,
			MinAmount:   j.MinAmount,
			MaxAmount:   j.MaxAmount,
			Currency:    j.Currency,
			Interval:    j.Interval,
			Site:        site,
			SearchTerm:  q.Term,
		})
	}
	return postings, nil
}
