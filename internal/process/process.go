package process

import (
	"log"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"jobscout-engine/internal/domain"
)

// Stats counts what each pipeline step did to one batch.
type Stats struct {
	Raw        int `json:"raw"`
	Duplicates int `json:"duplicates"`
	Invalid    int `json:"invalid"`
	Valid      int `json:"valid"`
}

// Process runs the full pipeline over the flattened postings of a run:
// deduplicate, clean, validate, transform. Order is fixed; dedup happens on
// the raw postings so a cleaned field never changes which duplicate wins.
func Process(postings []domain.Posting) ([]domain.Record, Stats) {
	stats := Stats{Raw: len(postings)}
	log.Printf("[process] processing %d raw postings", len(postings))

	unique := Deduplicate(postings)
	stats.Duplicates = len(postings) - len(unique)

	records := make([]domain.Record, 0, len(unique))
	for _, p := range unique {
		rec := Clean(p)
		if !Valid(rec) {
			stats.Invalid++
			continue
		}
		records = append(records, Transform(rec))
	}
	stats.Valid = len(records)

	if stats.Invalid > 0 {
		log.Printf("[process] dropped %d invalid postings (missing required fields)", stats.Invalid)
	}
	log.Printf("[process] %d raw -> %d unique -> %d valid", stats.Raw, len(unique), stats.Valid)
	return records, stats
}

// Deduplicate drops postings whose (title, company, location) key was seen
// before, and postings missing a title or company outright. First
// occurrence wins, input order preserved.
func Deduplicate(postings []domain.Posting) []domain.Posting {
	type key struct{ title, company, location string }

	seen := make(map[key]struct{}, len(postings))
	var unique []domain.Posting

	for _, p := range postings {
		k := key{
			title:    strings.ToLower(strings.TrimSpace(p.Title)),
			company:  strings.ToLower(strings.TrimSpace(p.Company)),
			location: strings.ToLower(strings.TrimSpace(p.Location)),
		}
		if k.title == "" || k.company == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, p)
	}
	return unique
}

// Clean trims every string field and synthesizes the compensation string
// from the salary bounds when the source didn't send one already formed.
func Clean(p domain.Posting) domain.Record {
	desc := strings.TrimSpace(p.Description)
	if strings.Contains(desc, "<") {
		desc = htmlToText(desc)
	}

	return domain.Record{
		Title:        cleanText(p.Title),
		Company:      cleanText(p.Company),
		Location:     cleanText(p.Location),
		Link:         strings.TrimSpace(p.JobURL),
		Description:  desc,
		Compensation: compensation(p),
		Site:         strings.TrimSpace(p.Site),
		SearchTerm:   strings.TrimSpace(p.SearchTerm),
	}
}

// Valid requires title, company and location after cleaning. Failures are
// dropped and counted upstream, never raised.
func Valid(r domain.Record) bool {
	return r.Title != "" && r.Company != "" && r.Location != ""
}

// Transform pins the storage shape: new records start tracked.
func Transform(r domain.Record) domain.Record {
	r.Ignore = domain.Track
	return r
}

// compensation renders "{cur}{min} - {cur}{max} {interval}" with single
// bound and no-interval variants; empty when neither bound is present.
func compensation(p domain.Posting) string {
	if p.MinAmount == nil && p.MaxAmount == nil {
		return ""
	}

	cur := strings.TrimSpace(p.Currency)
	if cur == "" {
		cur = "$"
	}

	var s string
	switch {
	case p.MinAmount != nil && p.MaxAmount != nil:
		s = cur + commas(*p.MinAmount) + " - " + cur + commas(*p.MaxAmount)
	case p.MinAmount != nil:
		s = cur + commas(*p.MinAmount)
	default:
		s = cur + commas(*p.MaxAmount)
	}

	if iv := strings.TrimSpace(p.Interval); iv != "" {
		s += " " + iv
	}
	return s
}

// commas formats an amount with thousands separators and no decimals.
func commas(v float64) string {
	return humanize.Commaf(math.Round(v))
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
