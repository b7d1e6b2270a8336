package algolia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hnjobs/internal/config"
)

func newTestClient(baseURL string, retries int) *Client {
	c := New(config.AlgoliaConfig{
		BaseURL:           baseURL,
		Timeout:           "2s",
		Retries:           retries,
		RequestsPerSecond: 1000,
	})
	c.backoff = time.Millisecond // keep retry tests fast
	return c
}

func TestDoGetSendsFixedHeaders(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{"hits":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 0)
	if _, err := c.Search(context.Background(), Query{Query: "x"}); err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if !strings.Contains(gotUA, "Mozilla/5.0") {
		t.Errorf("unexpected User-Agent: %q", gotUA)
	}
	if gotAccept != "application/json, */*;q=0.8" {
		t.Errorf("unexpected Accept: %q", gotAccept)
	}
}

func TestSearchByDateQueryParams(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search_by_date" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		got = map[string]string{}
		for k := range r.URL.Query() {
			got[k] = r.URL.Query().Get(k)
		}
		w.Write([]byte(`{"hits":[{"objectID":"123","title":"Ask HN: Who is hiring?"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 0)
	resp, err := c.SearchByDate(context.Background(), Query{
		Query:                        "Ask HN: Who is hiring?",
		Tags:                         "story,author_whoishiring",
		HitsPerPage:                  10,
		RestrictSearchableAttributes: "title",
	})
	if err != nil {
		t.Fatalf("SearchByDate error: %v", err)
	}
	want := map[string]string{
		"query":                        "Ask HN: Who is hiring?",
		"tags":                         "story,author_whoishiring",
		"hitsPerPage":                  "10",
		"page":                         "0",
		"restrictSearchableAttributes": "title",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("query param %s = %q, want %q", k, got[k], v)
		}
	}
	if len(resp.Hits) != 1 || resp.Hits[0].ObjectID != "123" {
		t.Errorf("unexpected hits: %+v", resp.Hits)
	}
}

func TestGetJSONRetriesThenSucceeds(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"id":1,"type":"story","children":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 2)
	it, err := c.Item(context.Background(), 1)
	if err != nil {
		t.Fatalf("Item error after retries: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
	if it.ID != 1 {
		t.Errorf("unexpected item: %+v", it)
	}
}

func TestGetJSONExhaustsRetries(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 1)
	_, err := c.Item(context.Background(), 42)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if !strings.Contains(err.Error(), "status 503") {
		t.Errorf("expected last status error, got: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 attempts (1 retry), got %d", calls)
	}
}

func TestItemDecodesChildren(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/items/555" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"id": 555,
			"type": "story",
			"title": "Ask HN: Who is hiring? (August 2026)",
			"children": [
				{"id": 1, "type": "comment", "text": "<p>hi</p>", "author": "alice"},
				{"id": 2, "type": "comment", "text": "", "author": "bob"}
			]
		}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 0)
	it, err := c.Item(context.Background(), 555)
	if err != nil {
		t.Fatalf("Item error: %v", err)
	}
	if len(it.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(it.Children))
	}
	if it.Children[0].Author != "alice" || it.Children[0].Text != "<p>hi</p>" {
		t.Errorf("unexpected first child: %+v", it.Children[0])
	}
}
