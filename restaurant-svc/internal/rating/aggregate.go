// Package rating maintains a dish's running mean and distinct-rater count
// without rescanning individual ratings.
package rating

import "github.com/shopspring/decimal"

const (
	MinValue = 1
	MaxValue = 5
)

// Aggregate is the stored state of a dish rating. Average keeps full
// precision; only Rounded is meant for responses.
type Aggregate struct {
	Average float64
	Count   int
}

func Valid(value int) bool {
	return value >= MinValue && value <= MaxValue
}

// Add folds in the first rating of a new rater.
func (a Aggregate) Add(value int) Aggregate {
	if a.Count == 0 {
		return Aggregate{Average: float64(value), Count: 1}
	}
	n := float64(a.Count)
	return Aggregate{
		Average: (a.Average*n + float64(value)) / (n + 1),
		Count:   a.Count + 1,
	}
}

// Replace swaps a rater's previous value for a new one; the count is unchanged.
func (a Aggregate) Replace(previous, value int) Aggregate {
	if a.Count <= 0 {
		return a
	}
	n := float64(a.Count)
	return Aggregate{
		Average: (a.Average*n - float64(previous) + float64(value)) / n,
		Count:   a.Count,
	}
}

// Rounded returns the average rounded half away from zero to 2 places.
func (a Aggregate) Rounded() float64 {
	return decimal.NewFromFloat(a.Average).Round(2).InexactFloat64()
}
