package analytics

import (
	"fmt"
	"math"
	"sort"

	"api_dealership/internal/sales"
)

// QuarterlyAggregate is the derived revenue summary for one calendar quarter.
// It is recomputed from the sale log on every read and never persisted.
type QuarterlyAggregate struct {
	Quarter        string  `json:"quarter"`
	TotalUnitsSold int     `json:"total_units_sold"`
	TotalRevenue   float64 `json:"total_revenue"`
	AveragePrice   float64 `json:"average_price"`
}

type bucketKey struct {
	year    int
	quarter int
}

func (k bucketKey) label() string {
	return fmt.Sprintf("Q%d-%d", k.quarter, k.year)
}

// BucketSales groups sales into calendar quarters and aggregates units,
// revenue and average price per bucket. Months 1-3 fall into Q1, 4-6 into Q2,
// 7-9 into Q3 and 10-12 into Q4. The result is ordered ascending by
// (year, quarter); quarters with no sales do not appear.
func BucketSales(log []*sales.Sale) []QuarterlyAggregate {
	type bucket struct {
		units   int
		revenue float64
	}
	buckets := make(map[bucketKey]*bucket)
	for _, s := range log {
		d := s.Date()
		key := bucketKey{year: d.Year(), quarter: (int(d.Month()) + 2) / 3}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.units++
		b.revenue += s.SalePrice
	}

	keys := make([]bucketKey, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].quarter < keys[j].quarter
	})

	result := make([]QuarterlyAggregate, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		result = append(result, QuarterlyAggregate{
			Quarter:        k.label(),
			TotalUnitsSold: b.units,
			TotalRevenue:   round2(b.revenue),
			AveragePrice:   round2(b.revenue / float64(b.units)),
		})
	}
	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
