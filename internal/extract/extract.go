// Package extract derives company, title, and location fields from the
// unstructured text of a hiring-thread comment. Extraction is best-effort
// pattern matching over the first sentence; values are noisy by nature.
package extract

import (
	"regexp"
	"strings"

	"hnjobs/internal/textutil"
)

const (
	maxCompany = 80
	maxTitle   = 120
)

// Strategy tries to derive a (company, title) pair from the first line of a
// posting. Strategies are independent and tried in order; the first match
// wins.
type Strategy func(first string) (company, title string, ok bool)

var strategies = []Strategy{
	dashSeparated,
	parenthetical,
	delimiterSplit,
	firstLineFallback,
}

var (
	// "Company - Title", "Company – Title", "Company: Title"
	dashRe = regexp.MustCompile(`^\s*([^\-–—:]+)[\-–—:]\s*(.+)$`)
	// "Company (San Francisco) Senior Engineer"
	parenRe = regexp.MustCompile(`^\s*([^()]+)\s*\(([^)]+)\)\s*(.*)$`)
	delimRe = regexp.MustCompile(`,|\|`)
)

// CompanyAndTitle applies the extraction strategies to the first line of the
// first sentence of text. Company is bounded to 80 characters, title to 120.
// Either value may come back empty; the caller supplies defaults.
func CompanyAndTitle(text string) (company, title string) {
	if text == "" {
		return "", ""
	}
	first := text
	if i := strings.Index(first, ". "); i >= 0 {
		first = first[:i]
	}
	if i := strings.IndexAny(first, "\r\n"); i >= 0 {
		first = first[:i]
	}
	for _, try := range strategies {
		if c, t, ok := try(first); ok {
			return c, t
		}
	}
	return "", ""
}

func dashSeparated(first string) (string, string, bool) {
	m := dashRe.FindStringSubmatch(first)
	if m == nil {
		return "", "", false
	}
	company := textutil.Truncate(strings.TrimSpace(m[1]), maxCompany)
	title := textutil.Truncate(strings.TrimSpace(m[2]), maxTitle)
	return company, title, true
}

func parenthetical(first string) (string, string, bool) {
	m := parenRe.FindStringSubmatch(first)
	if m == nil {
		return "", "", false
	}
	company := textutil.Truncate(strings.TrimSpace(m[1]), maxCompany)
	rest := strings.TrimSpace(m[3])
	if rest == "" {
		rest = first
	}
	return company, textutil.Truncate(rest, maxTitle), true
}

func delimiterSplit(first string) (string, string, bool) {
	parts := delimRe.Split(first, -1)
	fields := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			fields = append(fields, p)
		}
	}
	if len(fields) < 2 {
		return "", "", false
	}
	return textutil.Truncate(fields[0], maxCompany), textutil.Truncate(fields[1], maxTitle), true
}

func firstLineFallback(first string) (string, string, bool) {
	return "", textutil.Truncate(strings.TrimSpace(first), maxTitle), true
}

// cities maps lowercase keywords to canonical location labels. Order
// matters: the first keyword found in the text wins.
var cities = []struct {
	re    *regexp.Regexp
	label string
}{
	{wordRe("san francisco"), "San Francisco"},
	{wordRe("sf"), "San Francisco"},
	{wordRe("new york"), "New York"},
	{wordRe("nyc"), "New York"},
	{wordRe("seattle"), "Seattle"},
	{wordRe("austin"), "Austin"},
	{wordRe("boston"), "Boston"},
	{wordRe("london"), "London"},
	{wordRe("berlin"), "Berlin"},
	{wordRe("toronto"), "Toronto"},
}

func wordRe(key string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(key) + `\b`)
}

// Location scans text for a recognized location mention and returns its
// canonical label, or "" when nothing matches. Any "remote" mention takes
// precedence over city keywords.
func Location(text string) string {
	t := strings.ToLower(text)
	if strings.Contains(t, "remote") {
		return "Remote"
	}
	for _, c := range cities {
		if c.re.MatchString(t) {
			return c.label
		}
	}
	return ""
}
