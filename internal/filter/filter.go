package filter

import (
	"log"
	"strings"

	"jobscout-engine/internal/domain"
)

// Config holds the relevance filter. Each inner slice is an OR-group of
// case-insensitive substring patterns; all groups must be satisfied (AND).
// An empty group constrains nothing, and a Config with no groups at all
// keeps everything.
type Config struct {
	TitleGroups   [][]string
	KeywordGroups [][]string
}

func (c Config) Empty() bool {
	return len(c.TitleGroups) == 0 && len(c.KeywordGroups) == 0
}

// Passes reports whether a record survives the filter (true = keep).
func Passes(rec domain.Record, cfg Config) bool {
	if cfg.Empty() {
		return true
	}
	if !matchGroups(strings.ToLower(rec.Title), cfg.TitleGroups) {
		return false
	}
	if !matchGroups(strings.ToLower(rec.Description), cfg.KeywordGroups) {
		return false
	}
	return true
}

// matchGroups requires at least one pattern hit per non-empty group.
func matchGroups(text string, groups [][]string) bool {
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		hit := false
		for _, pat := range group {
			if strings.Contains(text, strings.ToLower(strings.TrimSpace(pat))) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// Partition splits records into kept and ignored without mutating inputs.
func Partition(records []domain.Record, cfg Config) (kept, ignored []domain.Record) {
	for _, rec := range records {
		if Passes(rec, cfg) {
			kept = append(kept, rec)
		} else {
			ignored = append(ignored, rec)
		}
	}
	log.Printf("[filter] partitioned: %d kept, %d ignored", len(kept), len(ignored))
	return kept, ignored
}
