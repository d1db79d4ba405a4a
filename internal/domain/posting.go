package domain

// Posting is one scraped job listing exactly as a source returned it.
// It only lives in memory between the scrape and the processing pipeline.
type Posting struct {
	Title       string
	Company     string
	Location    string
	JobURL      string
	Description string

	// Compensation as reported by the source; nil when not present.
	MinAmount *float64
	MaxAmount *float64
	Currency  string
	Interval  string // yearly/monthly/hourly

	Site       string // source identifier (indeed, linkedin, ...)
	SearchTerm string
}
