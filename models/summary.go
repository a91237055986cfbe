package models

// PriceSummary holds the statistics computed over qualifying listing prices.
type PriceSummary struct {
	Average      float64
	Minimum      float64
	Maximum      float64
	Median       float64
	SpecialCount int
	Count        int
}
