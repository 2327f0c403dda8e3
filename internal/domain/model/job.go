package model

import "time"

// Job describes a single civil-service exam posting.
type Job struct {
	ID          int64
	Title       string
	Department  string
	Region      string
	Category    string
	Education   string
	Vacancies   int
	Deadline    time.Time
	PublishedAt time.Time
}

// JobFilter narrows a posting listing.
type JobFilter struct {
	Region    string
	Category  string
	Education string
	Keyword   string
	Limit     int
	Offset    int
}

// ComparisonRow is one attribute compared across postings.
type ComparisonRow struct {
	Label  string
	Values []string
}

// Comparison is a side-by-side view of several postings.
type Comparison struct {
	Titles []string
	Rows   []ComparisonRow
}
