package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"rental-analyzer/models"
	"rental-analyzer/utils"
)

const (
	DefaultMinPrice         = 600
	DefaultSpecialSubstring = "123"
)

var (
	ErrNoQualifyingData = errors.New("no valid prices found")
	ErrComputation      = errors.New("statistics computation failed")
)

// PriceAggregator extracts, filters and summarizes listing prices.
type PriceAggregator struct {
	logger    *utils.Logger
	minPrice  float64
	substring string
}

// AggregatorOption customizes a PriceAggregator.
type AggregatorOption func(*PriceAggregator)

// WithMinPrice sets the threshold below which prices are ignored.
func WithMinPrice(min float64) AggregatorOption {
	return func(a *PriceAggregator) { a.minPrice = min }
}

// WithSpecialSubstring sets the substring counted in qualifying price strings.
func WithSpecialSubstring(s string) AggregatorOption {
	return func(a *PriceAggregator) { a.substring = s }
}

// NewPriceAggregator creates a PriceAggregator with the given logger.
func NewPriceAggregator(logger *utils.Logger, opts ...AggregatorOption) *PriceAggregator {
	a := &PriceAggregator{
		logger:    logger,
		minPrice:  DefaultMinPrice,
		substring: DefaultSpecialSubstring,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Summarize computes price statistics over every listing whose price parses
// and is at least the minimum. Listings with a missing or malformed price are
// skipped with a warning. The substring count is taken on the original price
// string, after the threshold filter.
func (a *PriceAggregator) Summarize(listings []models.Listing) (models.PriceSummary, error) {
	prices := make([]float64, 0, len(listings))
	special := 0

	for _, l := range listings {
		raw, price, err := l.Price()
		if err != nil {
			a.logger.Warn("Skipping listing due to missing or invalid price data: %s", l.ID())
			a.logger.Debug("[aggregator] listing %s: %v", l.ID(), err)
			continue
		}

		if price < a.minPrice {
			continue
		}

		if a.substring != "" && strings.Contains(raw, a.substring) {
			special++
		}

		prices = append(prices, price)
	}

	if len(prices) == 0 {
		a.logger.Debug("[aggregator] No price at or above %.2f among %d listings", a.minPrice, len(listings))
		return models.PriceSummary{}, ErrNoQualifyingData
	}

	summary, err := describe(prices)
	if err != nil {
		return models.PriceSummary{}, err
	}
	summary.SpecialCount = special

	a.logger.Info("[aggregator] Summarized %d of %d listings (min price %.2f)",
		summary.Count, len(listings), a.minPrice)
	return summary, nil
}

// describe computes mean, extrema and median of a non-empty slice.
// The input slice is not modified.
func describe(prices []float64) (models.PriceSummary, error) {
	if len(prices) == 0 {
		return models.PriceSummary{}, fmt.Errorf("%w: empty price list", ErrComputation)
	}

	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	s := models.PriceSummary{
		Average: mean(sorted),
		Minimum: sorted[0],
		Maximum: sorted[len(sorted)-1],
		Median:  median(sorted),
		Count:   len(sorted),
	}

	if math.IsInf(s.Average, 0) || math.IsNaN(s.Average) {
		return models.PriceSummary{}, fmt.Errorf("%w: average of %d prices is not finite", ErrComputation, len(sorted))
	}
	if math.IsInf(s.Median, 0) {
		return models.PriceSummary{}, fmt.Errorf("%w: median of %d prices is not finite", ErrComputation, len(sorted))
	}
	return s, nil
}

// median expects sorted input.
func median(sorted []float64) float64 {
	n := len(sorted)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1]/2 + sorted[mid]/2
}

// mean sums directly and falls back to a running mean when the sum of
// large but finite prices overflows.
func mean(prices []float64) float64 {
	var total float64
	for _, p := range prices {
		total += p
	}
	if !math.IsInf(total, 0) {
		return total / float64(len(prices))
	}

	var m float64
	for i, p := range prices {
		m += (p - m) / float64(i+1)
	}
	return m
}
