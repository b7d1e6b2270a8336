package model

// SourceYCombinator tags postings derived from Hacker News "Who is hiring?"
// threads.
const SourceYCombinator = "ycombinator"

// JobPosting is a normalized job record derived from a single comment in a
// hiring thread. Records are immutable once built and live only for the
// duration of one search invocation.
type JobPosting struct {
	ID          string `json:"id" yaml:"id"`
	Source      string `json:"source" yaml:"source"`
	Title       string `json:"title" yaml:"title"`
	Company     string `json:"company" yaml:"company"`
	Location    string `json:"location" yaml:"location"`
	Description string `json:"description" yaml:"description"`
	URL         string `json:"url" yaml:"url"`
}
