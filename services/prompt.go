package services

import (
	"fmt"
	"io"
	"strings"

	"rental-analyzer/models"
	"rental-analyzer/utils"
)

// DefaultPromptLimit is the number of listings enumerated in a prompt.
const DefaultPromptLimit = 120

const promptHeader = `Please categorize each of the following rental listings as one of:
- airbnb (or other short term rental, for rent by the night)
if it's not an airbnb/short term rental, then:
- studio apartment (full apartment/suite)
- 1bdr apartment (full apartment/suite)
- 2bdr apartment (full apartment/suite)
- 3bdr apartment (full apartment/suite)
- 4bdr apartment (full apartment/suite)
- bedroom (room in shared apartment)
- bed (sharing a room with someone else)
- other
- unknown (if cannot determine)

Respond with just the category name for each numbered listing, excluding the part in parentheses.

`

// SinkOpener opens the destination for per-listing prompt diagnostics.
type SinkOpener func() (io.WriteCloser, error)

// PromptBuilder renders the categorization prompt sent to the AI step.
type PromptBuilder struct {
	logger   *utils.Logger
	openSink SinkOpener
}

// NewPromptBuilder creates a PromptBuilder. A nil opener discards diagnostics.
func NewPromptBuilder(logger *utils.Logger, openSink SinkOpener) *PromptBuilder {
	return &PromptBuilder{logger: logger, openSink: openSink}
}

// BuildPrompt enumerates the descriptions of the first limit listings in
// input order. Listings are numbered by position, so a listing without a
// description leaves a gap in the numbering; the skip is recorded in the
// diagnostic sink. Construction always succeeds.
func (p *PromptBuilder) BuildPrompt(listings []models.Listing, limit int) string {
	sink := p.acquireSink()
	defer func() {
		if err := sink.Close(); err != nil {
			p.logger.Warn("[prompt] Closing diagnostic log failed: %v", err)
		}
	}()

	if limit < 0 {
		limit = 0
	}
	if len(listings) > limit {
		listings = listings[:limit]
	}

	var b strings.Builder
	b.WriteString(promptHeader)

	skipped := 0
	for idx, l := range listings {
		n := idx + 1
		desc, ok := l.Description()
		if !ok {
			skipped++
			if _, err := fmt.Fprintf(sink, "Skipping listing %d due to missing description\n", n); err != nil {
				p.logger.Debug("[prompt] Diagnostic write failed: %v", err)
			}
			continue
		}
		fmt.Fprintf(&b, "Listing %d:\n%s\n\n", n, desc)
	}

	p.logger.Debug("[prompt] Enumerated %d listings (%d without description)",
		len(listings)-skipped, skipped)
	return b.String()
}

func (p *PromptBuilder) acquireSink() io.WriteCloser {
	if p.openSink == nil {
		return nopCloser{io.Discard}
	}
	sink, err := p.openSink()
	if err != nil {
		p.logger.Warn("[prompt] Diagnostic log unavailable, discarding skips: %v", err)
		return nopCloser{io.Discard}
	}
	return sink
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
