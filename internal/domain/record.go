package domain

// Ignore flag values for a stored job.
const (
	Track  = 0
	Ignore = 1
)

// Record is a cleaned, validated posting in storage shape.
// All string fields are trimmed; Title, Company and Location are never empty.
type Record struct {
	ID           int64  `json:"id,omitempty"`
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	Link         string `json:"link"`
	Description  string `json:"description"`
	Compensation string `json:"compensation"`
	Site         string `json:"site"`
	SearchTerm   string `json:"search_term"`
	Ignore       int    `json:"ignore"`
}

func (r Record) IsIgnored() bool { return r.Ignore == Ignore }
