package filter

import (
	"context"
	"log"

	"jobscout-engine/internal/domain"
)

// Store is the slice of the persistence layer MarkIgnored needs.
type Store interface {
	JobsByIDs(ctx context.Context, ids []int64) ([]domain.Record, error)
	SetIgnore(ctx context.Context, id int64, ignore bool) error
}

type MarkSummary struct {
	Processed int `json:"total_processed"`
	Kept      int `json:"kept"`
	Ignored   int `json:"ignored"`
}

// MarkIgnored re-evaluates already-persisted records and flips the ignore
// flag on the ones that no longer pass. Idempotent: a second run with the
// same config leaves the flags unchanged.
func MarkIgnored(ctx context.Context, st Store, ids []int64, cfg Config) (MarkSummary, error) {
	var sum MarkSummary

	records, err := st.JobsByIDs(ctx, ids)
	if err != nil {
		return sum, err
	}
	sum.Processed = len(records)

	for _, rec := range records {
		if Passes(rec, cfg) {
			sum.Kept++
			continue
		}
		if err := st.SetIgnore(ctx, rec.ID, true); err != nil {
			return sum, err
		}
		sum.Ignored++
	}

	log.Printf("[filter] marked: %d kept, %d ignored", sum.Kept, sum.Ignored)
	return sum, nil
}
