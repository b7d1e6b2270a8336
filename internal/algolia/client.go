package algolia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hnjobs/internal/config"
)

// Client is a minimal HN Algolia search API client.
// Docs: https://hn.algolia.com/api
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	retries int
	backoff time.Duration
}

const (
	defaultBaseURL = "https://hn.algolia.com/api/v1"

	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/119.0.0.0 Safari/537.36"
	acceptHeader = "application/json, */*;q=0.8"

	// base delay for linear retry backoff (attempt * baseBackoff)
	baseBackoff = 800 * time.Millisecond
)

// New creates an Algolia client from configuration. The client is safe to
// construct once per process and pass around explicitly; it carries the
// reused HTTP transport, the fixed request headers, and the request pacer.
func New(cfg config.AlgoliaConfig) *Client {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	timeout := 15 * time.Second
	if strings.TrimSpace(cfg.Timeout) != "" {
		if d, err := time.ParseDuration(cfg.Timeout); err == nil && d > 0 {
			timeout = d
		}
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 4
	}
	retries := cfg.Retries
	if retries < 0 {
		retries = 0
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		retries: retries,
		backoff: baseBackoff,
	}
}

// Hit is one search result from the search endpoints. ObjectID is the HN
// item id as a decimal string.
type Hit struct {
	ObjectID string `json:"objectID"`
	Title    string `json:"title"`
}

// SearchResponse is the envelope returned by /search and /search_by_date.
type SearchResponse struct {
	Hits []Hit `json:"hits"`
}

// Comment is one node in an item's reply tree. Text carries raw HTML.
type Comment struct {
	ID     int    `json:"id"`
	Type   string `json:"type"`
	Text   string `json:"text"`
	Author string `json:"author"`
}

// Item is the detail view of a single HN item, including its direct replies.
type Item struct {
	ID       int       `json:"id"`
	Type     string    `json:"type"`
	Title    string    `json:"title"`
	Children []Comment `json:"children"`
}

// Query holds the parameters accepted by the search endpoints.
type Query struct {
	Query                        string
	Tags                         string
	HitsPerPage                  int
	Page                         int
	RestrictSearchableAttributes string
}

func (q Query) values() url.Values {
	v := url.Values{}
	v.Set("query", q.Query)
	if q.Tags != "" {
		v.Set("tags", q.Tags)
	}
	if q.HitsPerPage > 0 {
		v.Set("hitsPerPage", strconv.Itoa(q.HitsPerPage))
	}
	v.Set("page", strconv.Itoa(q.Page))
	if q.RestrictSearchableAttributes != "" {
		v.Set("restrictSearchableAttributes", q.RestrictSearchableAttributes)
	}
	return v
}

// Search queries the relevance-ordered search endpoint.
func (c *Client) Search(ctx context.Context, q Query) (SearchResponse, error) {
	var resp SearchResponse
	err := c.getJSON(ctx, "/search", q.values(), &resp)
	return resp, err
}

// SearchByDate queries the newest-first search endpoint.
func (c *Client) SearchByDate(ctx context.Context, q Query) (SearchResponse, error) {
	var resp SearchResponse
	err := c.getJSON(ctx, "/search_by_date", q.values(), &resp)
	return resp, err
}

// Item fetches a single item with its direct reply list.
func (c *Client) Item(ctx context.Context, id int) (Item, error) {
	var it Item
	err := c.getJSON(ctx, fmt.Sprintf("/items/%d", id), nil, &it)
	return it, err
}

// getJSON performs a GET with bounded retry. After a failed attempt it
// sleeps attempt*backoff before trying again; once retries are exhausted
// the last error is returned.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * c.backoff):
			}
		}
		if err := c.doGet(ctx, path, query, out); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

func (c *Client) doGet(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("algolia: %s status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("algolia: decode %s: %w", path, err)
	}
	return nil
}
