// Package hiring locates the latest monthly "Ask HN: Who is hiring?" thread
// and turns its top-level comments into filtered job postings.
package hiring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"hnjobs/internal/algolia"
	"hnjobs/internal/extract"
	"hnjobs/internal/model"
	"hnjobs/internal/textutil"
)

const (
	hiringQuery  = "Ask HN: Who is hiring?"
	itemURL      = "https://news.ycombinator.com/item?id=%d"
	idPrefix     = "hn_"
	defaultTitle = "Software Engineer"
)

// ErrNoThread reports that neither the dated nor the fallback search
// produced a usable hiring thread.
var ErrNoThread = errors.New("hiring: no who-is-hiring thread found")

var hiringTitleRe = regexp.MustCompile(`(?i)ask hn:\s*who is hiring\??`)

// Service runs the locate/fetch/filter/extract pipeline against one Algolia
// client. It holds no mutable state; every Search call is independent and
// only reads from the upstream API.
type Service struct {
	client         *algolia.Client
	maxDescription int
}

// NewService creates a Service. maxDescription bounds the description field
// of returned postings; values <= 0 fall back to 800.
func NewService(client *algolia.Client, maxDescription int) *Service {
	if maxDescription <= 0 {
		maxDescription = 800
	}
	return &Service{client: client, maxDescription: maxDescription}
}

// Params are the caller-supplied search constraints.
type Params struct {
	// Terms must all appear (case-insensitive substrings) in a posting's
	// normalized text. Empty matches everything.
	Terms []string
	// Location, when set, restricts postings to those mentioning it and
	// overrides the heuristically extracted location in the result.
	Location string
	// Limit bounds the number of returned postings.
	Limit int
}

// LocateLatestThread finds the most recent monthly hiring thread and returns
// its numeric id and title. It first runs a dated search restricted to
// stories by the whoishiring account; if that fails it falls back to a
// broader undated search, which may surface older threads. When no hit's
// title matches the expected pattern the most recent hit is used as a last
// resort, trading precision for availability.
func (s *Service) LocateLatestThread(ctx context.Context) (int, string, error) {
	resp, err := s.client.SearchByDate(ctx, algolia.Query{
		Query:                        hiringQuery,
		Tags:                         "story,author_whoishiring",
		HitsPerPage:                  10,
		RestrictSearchableAttributes: "title",
	})
	hits := resp.Hits
	if err != nil {
		slog.Warn("hiring: dated thread search failed, falling back", "err", err)
		fresp, ferr := s.client.Search(ctx, algolia.Query{
			Query:                        hiringQuery,
			Tags:                         "story",
			HitsPerPage:                  20,
			RestrictSearchableAttributes: "title",
		})
		if ferr != nil {
			return 0, "", ferr
		}
		hits = fresp.Hits
	}
	for _, h := range hits {
		if !hiringTitleRe.MatchString(h.Title) {
			continue
		}
		id, err := strconv.Atoi(h.ObjectID)
		if err != nil {
			continue
		}
		return id, h.Title, nil
	}
	// Last resort: take the most recent hit even without a title match.
	if len(hits) > 0 {
		if id, err := strconv.Atoi(hits[0].ObjectID); err == nil {
			return id, hits[0].Title, nil
		}
	}
	return 0, "", ErrNoThread
}

// Search returns up to p.Limit postings from the latest hiring thread, in
// thread reply order. Failure to locate or fetch the thread degrades to an
// empty result set rather than an error; individual malformed comments are
// skipped.
func (s *Service) Search(ctx context.Context, p Params) ([]model.JobPosting, error) {
	threadID, title, err := s.LocateLatestThread(ctx)
	if err != nil {
		slog.Warn("hiring: no hiring thread found", "err", err)
		return []model.JobPosting{}, nil
	}
	slog.Debug("hiring: using thread", "id", threadID, "title", title)

	thread, err := s.client.Item(ctx, threadID)
	if err != nil {
		slog.Warn("hiring: thread fetch failed", "id", threadID, "err", err)
		return []model.JobPosting{}, nil
	}

	limit := p.Limit
	if limit < 0 {
		limit = 0
	}
	results := make([]model.JobPosting, 0, limit)
	for _, c := range thread.Children {
		if c.Type != "comment" {
			continue
		}
		text := textutil.Normalize(c.Text)
		if text == "" {
			continue
		}
		if !matchesTerms(text, p.Terms) {
			continue
		}
		if !matchesLocation(text, p.Location) {
			continue
		}

		company, jobTitle := extract.CompanyAndTitle(text)
		loc := extract.Location(text)
		if p.Location != "" {
			// Caller's location takes precedence over extraction.
			loc = p.Location
		}
		if jobTitle == "" {
			jobTitle = defaultTitle
		}
		if company == "" {
			company = c.Author
			if company == "" {
				company = "Unknown"
			}
		}

		results = append(results, model.JobPosting{
			ID:          idPrefix + strconv.Itoa(c.ID),
			Source:      model.SourceYCombinator,
			Title:       jobTitle,
			Company:     company,
			Location:    loc,
			Description: textutil.Truncate(text, s.maxDescription),
			URL:         fmt.Sprintf(itemURL, c.ID),
		})
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results, nil
}

// matchesTerms reports whether every term appears in text, case-insensitive.
func matchesTerms(text string, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	t := strings.ToLower(text)
	for _, term := range terms {
		if !strings.Contains(t, strings.ToLower(term)) {
			return false
		}
	}
	return true
}

// matchesLocation reports whether text satisfies the requested location.
// "remote" is special-cased; anything else is a plain substring match.
func matchesLocation(text, location string) bool {
	loc := strings.ToLower(strings.TrimSpace(location))
	if loc == "" {
		return true
	}
	t := strings.ToLower(text)
	if loc == "remote" {
		return strings.Contains(t, "remote")
	}
	return strings.Contains(t, loc)
}
