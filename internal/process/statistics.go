package process

import (
	"sort"

	"jobscout-engine/internal/domain"
)

type CountEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Statistics struct {
	Total            int          `json:"total"`
	UniqueCompanies  int          `json:"unique_companies"`
	UniqueLocations  int          `json:"unique_locations"`
	WithCompensation int          `json:"with_compensation"`
	TopCompanies     []CountEntry `json:"top_companies"`
	TopLocations     []CountEntry `json:"top_locations"`
}

const topN = 10

// ComputeStatistics aggregates a batch of records. Top lists hold at most
// ten entries; ties keep first-encounter order (stable sort).
func ComputeStatistics(records []domain.Record) Statistics {
	stats := Statistics{Total: len(records)}
	if len(records) == 0 {
		return stats
	}

	companies := countBy(records, func(r domain.Record) string { return r.Company })
	locations := countBy(records, func(r domain.Record) string { return r.Location })

	stats.UniqueCompanies = len(companies)
	stats.UniqueLocations = len(locations)
	stats.TopCompanies = top(companies, topN)
	stats.TopLocations = top(locations, topN)

	for _, r := range records {
		if r.Compensation != "" {
			stats.WithCompensation++
		}
	}
	return stats
}

func countBy(records []domain.Record, key func(domain.Record) string) []CountEntry {
	index := map[string]int{}
	var entries []CountEntry
	for _, r := range records {
		k := key(r)
		if k == "" {
			k = "Unknown"
		}
		if i, ok := index[k]; ok {
			entries[i].Count++
			continue
		}
		index[k] = len(entries)
		entries = append(entries, CountEntry{Name: k, Count: 1})
	}
	return entries
}

func top(entries []CountEntry, n int) []CountEntry {
	out := append([]CountEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
