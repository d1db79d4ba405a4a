package process

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout-engine/internal/domain"
)

func TestComputeStatistics(t *testing.T) {
	records := []domain.Record{
		{Company: "Acme", Location: "Remote", Compensation: "$100,000"},
		{Company: "Acme", Location: "NYC"},
		{Company: "Beta", Location: "Remote", Compensation: "$90,000"},
		{Company: "", Location: "Remote"},
	}

	stats := ComputeStatistics(records)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.UniqueCompanies) // Acme, Beta, Unknown
	assert.Equal(t, 2, stats.UniqueLocations)
	assert.Equal(t, 2, stats.WithCompensation)

	require.NotEmpty(t, stats.TopCompanies)
	assert.Equal(t, CountEntry{Name: "Acme", Count: 2}, stats.TopCompanies[0])
	assert.Equal(t, CountEntry{Name: "Remote", Count: 3}, stats.TopLocations[0])
}

func TestComputeStatisticsTiesKeepEncounterOrder(t *testing.T) {
	records := []domain.Record{
		{Company: "Zeta", Location: "A"},
		{Company: "Alpha", Location: "A"},
	}
	stats := ComputeStatistics(records)
	require.Len(t, stats.TopCompanies, 2)
	assert.Equal(t, "Zeta", stats.TopCompanies[0].Name)
	assert.Equal(t, "Alpha", stats.TopCompanies[1].Name)
}

func TestComputeStatisticsTopCap(t *testing.T) {
	var records []domain.Record
	for i := 0; i < 15; i++ {
		records = append(records, domain.Record{Company: fmt.Sprintf("Co %d", i), Location: "Remote"})
	}
	stats := ComputeStatistics(records)
	assert.Len(t, stats.TopCompanies, 10)
	assert.Equal(t, 15, stats.UniqueCompanies)
}

func TestComputeStatisticsEmpty(t *testing.T) {
	stats := ComputeStatistics(nil)
	assert.Equal(t, Statistics{}, stats)
}
