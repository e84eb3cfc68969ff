package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractInsights_MaxAndMin(t *testing.T) {
	aggregates := []QuarterlyAggregate{
		{Quarter: "Q1-2025", TotalUnitsSold: 2, TotalRevenue: 553000, AveragePrice: 276500},
		{Quarter: "Q2-2025", TotalUnitsSold: 3, TotalRevenue: 853000, AveragePrice: 284333.33},
	}

	got := ExtractInsights(aggregates)

	assert.Equal(t, "Q2-2025", got.MaxQuarter)
	assert.Equal(t, 853000.00, got.MaxRevenue)
	assert.Equal(t, "Q1-2025", got.MinQuarter)
	assert.Equal(t, 553000.00, got.MinRevenue)
	assert.Equal(t, aggregates, got.Quarters)
}

func TestExtractInsights_TieGoesToEarliestQuarter(t *testing.T) {
	aggregates := []QuarterlyAggregate{
		{Quarter: "Q1-2025", TotalRevenue: 500000},
		{Quarter: "Q2-2025", TotalRevenue: 500000},
		{Quarter: "Q3-2025", TotalRevenue: 500000},
	}

	got := ExtractInsights(aggregates)

	assert.Equal(t, "Q1-2025", got.MaxQuarter)
	assert.Equal(t, "Q1-2025", got.MinQuarter)
}

func TestExtractInsights_SingleQuarter(t *testing.T) {
	aggregates := []QuarterlyAggregate{
		{Quarter: "Q4-2024", TotalRevenue: 420000},
	}

	got := ExtractInsights(aggregates)

	assert.Equal(t, "Q4-2024", got.MaxQuarter)
	assert.Equal(t, "Q4-2024", got.MinQuarter)
	assert.Equal(t, 420000.00, got.MaxRevenue)
	assert.Equal(t, 420000.00, got.MinRevenue)
}

func TestExtractInsights_EmptyReturnsSentinel(t *testing.T) {
	got := ExtractInsights(nil)

	assert.Equal(t, NoQuarter, got.MaxQuarter)
	assert.Equal(t, NoQuarter, got.MinQuarter)
	assert.Zero(t, got.MaxRevenue)
	assert.Zero(t, got.MinRevenue)
	assert.NotNil(t, got.Quarters)
	assert.Empty(t, got.Quarters)
}
