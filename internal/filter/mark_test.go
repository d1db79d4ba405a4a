package filter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout-engine/internal/domain"
)

type fakeStore struct {
	records map[int64]domain.Record
}

func (f *fakeStore) JobsByIDs(_ context.Context, ids []int64) ([]domain.Record, error) {
	var out []domain.Record
	for _, id := range ids {
		if r, ok := f.records[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) SetIgnore(_ context.Context, id int64, ignore bool) error {
	r := f.records[id]
	if ignore {
		r.Ignore = domain.Ignore
	} else {
		r.Ignore = domain.Track
	}
	f.records[id] = r
	return nil
}

func TestMarkIgnored(t *testing.T) {
	st := &fakeStore{records: map[int64]domain.Record{
		1: {ID: 1, Title: "Software Engineer"},
		2: {ID: 2, Title: "Product Manager"},
		3: {ID: 3, Title: "Engineer II"},
	}}
	cfg := Config{TitleGroups: [][]string{{"engineer"}}}

	sum, err := MarkIgnored(context.Background(), st, []int64{1, 2, 3}, cfg)
	require.NoError(t, err)
	assert.Equal(t, MarkSummary{Processed: 3, Kept: 2, Ignored: 1}, sum)
	assert.True(t, st.records[2].IsIgnored())
	assert.False(t, st.records[1].IsIgnored())

	// Second pass with the same config changes nothing.
	again, err := MarkIgnored(context.Background(), st, []int64{1, 2, 3}, cfg)
	require.NoError(t, err)
	assert.Equal(t, sum, again)
	assert.True(t, st.records[2].IsIgnored())
}

func TestMarkIgnoredSkipsMissingIDs(t *testing.T) {
	st := &fakeStore{records: map[int64]domain.Record{1: {ID: 1, Title: "Engineer"}}}

	sum, err := MarkIgnored(context.Background(), st, []int64{1, 99}, Config{})
	require.NoError(t, err)
	assert.Equal(t, MarkSummary{Processed: 1, Kept: 1}, sum)
}
