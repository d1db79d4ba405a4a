package source

import (
	"fmt"
	"strings"
)

// GoogleSearchTerm composes the natural-language query Google Jobs wants,
// embedding the location and a coarse recency bucket. Pure function so the
// bucket mapping stays testable without any network.
//
// Format: "{term} jobs near {location} in the last {bucket}".
func GoogleSearchTerm(term, location string, hoursOld int) string {
	if strings.TrimSpace(location) == "" {
		return ""
	}

	var bucket string
	switch {
	case hoursOld <= 24:
		bucket = "24 Hours"
	case hoursOld <= 48:
		bucket = "2 Days"
	case hoursOld <= 72:
		bucket = "3 Days"
	case hoursOld <= 168:
		bucket = "Week"
	case hoursOld <= 720:
		bucket = "Month"
	default:
		bucket = fmt.Sprintf("%d Hours", hoursOld)
	}

	return fmt.Sprintf("%s jobs near %s in the last %s", term, location, bucket)
}
