package services

import (
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"rental-analyzer/models"
)

var (
	headingColor = color.New(color.FgMagenta, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// Reporter prints the human-readable price analysis.
type Reporter struct {
	w         io.Writer
	minPrice  float64
	substring string
}

// NewReporter creates a Reporter for summaries computed with the given price
// threshold and special substring.
func NewReporter(w io.Writer, minPrice float64, substring string) *Reporter {
	return &Reporter{w: w, minPrice: minPrice, substring: substring}
}

// PrintSummary writes the statistics block for source.
func (r *Reporter) PrintSummary(source string, s models.PriceSummary) {
	headingColor.Fprintf(r.w, "Price Analysis for %s:\n", source)
	fmt.Fprintf(r.w, "  Average Price: %.2f\n", s.Average)
	fmt.Fprintf(r.w, "  Minimum Price: %.2f\n", s.Minimum)
	fmt.Fprintf(r.w, "  Maximum Price: %.2f\n", s.Maximum)
	fmt.Fprintf(r.w, "  Median Price: %.2f\n", s.Median)
	fmt.Fprintf(r.w, "  Number of prices containing '%s': %s\n", r.substring, humanize.Comma(int64(s.SpecialCount)))
	fmt.Fprintf(r.w, "  Total listings (filtered ≥ $%s): %s\n",
		humanize.Ftoa(r.minPrice), humanize.Comma(int64(s.Count)))
}

// PrintPromptWritten announces the prompt file location.
func (r *Reporter) PrintPromptWritten(path string) {
	fmt.Fprintf(r.w, "\nCategorization prompt has been written to %s\n", path)
}

// PrintError reports a run-level failure for source.
func (r *Reporter) PrintError(source string, err error) {
	switch {
	case errors.Is(err, models.ErrInputNotFound):
		errorColor.Fprintf(r.w, "Error: File not found: %s\n", source)
	case errors.Is(err, models.ErrInputMalformed):
		errorColor.Fprintf(r.w, "Error: Invalid JSON format in file: %s\n", source)
	case errors.Is(err, ErrNoQualifyingData):
		fmt.Fprintln(r.w, "No valid prices found in the data.")
	case errors.Is(err, ErrComputation):
		errorColor.Fprintf(r.w, "Error during statistics: %v\n", err)
	default:
		errorColor.Fprintf(r.w, "An unexpected error occurred: %v\n", err)
	}
}
