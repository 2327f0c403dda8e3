package dto

import "time"

// JobListQuery binds listing filter parameters.
type JobListQuery struct {
	Region    string `form:"region"`
	Category  string `form:"category"`
	Education string `form:"education"`
	Keyword   string `form:"keyword"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}

// JobResponse describes a single posting.
type JobResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Department  string    `json:"department"`
	Region      string    `json:"region"`
	Category    string    `json:"category"`
	Education   string    `json:"education"`
	Vacancies   int       `json:"vacancies"`
	Deadline    time.Time `json:"deadline"`
	PublishedAt time.Time `json:"published_at"`
}

// CompareRequest names the postings to compare.
type CompareRequest struct {
	JobIDs []int64 `json:"job_ids"`
}

// CompareRowResponse is one attribute row of the comparison table.
type CompareRowResponse struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// CompareResponse is the side-by-side comparison table.
type CompareResponse struct {
	Titles []string             `json:"titles"`
	Rows   []CompareRowResponse `json:"rows"`
}
