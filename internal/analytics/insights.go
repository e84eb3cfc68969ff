package analytics

// NoQuarter is the sentinel label returned when there is no data to rank.
const NoQuarter = "N/A"

// Insights names the best and worst quarters by total revenue and carries the
// full aggregate series for comparison.
type Insights struct {
	MaxQuarter string               `json:"max_quarter"`
	MaxRevenue float64              `json:"max_revenue"`
	MinQuarter string               `json:"min_quarter"`
	MinRevenue float64              `json:"min_revenue"`
	Quarters   []QuarterlyAggregate `json:"quarters"`
}

// ExtractInsights selects the quarters with maximum and minimum total revenue.
// Comparison is by revenue only; on a tie the earliest quarter in the
// chronologically ordered input wins, which the strict comparisons below make
// the contract rather than an accident. An empty input yields the N/A sentinel
// with zero revenues and no error.
func ExtractInsights(aggregates []QuarterlyAggregate) Insights {
	if len(aggregates) == 0 {
		return Insights{
			MaxQuarter: NoQuarter,
			MinQuarter: NoQuarter,
			Quarters:   []QuarterlyAggregate{},
		}
	}

	maxIdx, minIdx := 0, 0
	for i := 1; i < len(aggregates); i++ {
		if aggregates[i].TotalRevenue > aggregates[maxIdx].TotalRevenue {
			maxIdx = i
		}
		if aggregates[i].TotalRevenue < aggregates[minIdx].TotalRevenue {
			minIdx = i
		}
	}

	return Insights{
		MaxQuarter: aggregates[maxIdx].Quarter,
		MaxRevenue: aggregates[maxIdx].TotalRevenue,
		MinQuarter: aggregates[minIdx].Quarter,
		MinRevenue: aggregates[minIdx].TotalRevenue,
		Quarters:   aggregates,
	}
}
