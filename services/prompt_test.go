package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-analyzer/models"
	"rental-analyzer/utils"
)

type memorySink struct {
	bytes.Buffer
	closed int
}

func (s *memorySink) Close() error {
	s.closed++
	return nil
}

func newMemoryBuilder() (*PromptBuilder, *memorySink) {
	sink := &memorySink{}
	b := NewPromptBuilder(utils.NewNopLogger(), func() (io.WriteCloser, error) { return sink, nil })
	return b, sink
}

func described(texts ...string) []models.Listing {
	listings := make([]models.Listing, 0, len(texts))
	for _, text := range texts {
		raw := fmt.Sprintf(`{"listing_details":{"redacted_description":{"text":%q}}}`, text)
		listings = append(listings, models.ParseListing([]byte(raw)))
	}
	return listings
}

func TestBuildPromptHeaderAndBlocks(t *testing.T) {
	b, sink := newMemoryBuilder()

	prompt := b.BuildPrompt(described("Cozy studio", "Room in shared flat"), DefaultPromptLimit)

	want := promptHeader +
		"Listing 1:\nCozy studio\n\n" +
		"Listing 2:\nRoom in shared flat\n\n"
	assert.Equal(t, want, prompt)
	assert.Empty(t, sink.String())
	assert.Equal(t, 1, sink.closed)
}

func TestBuildPromptHeaderTaxonomy(t *testing.T) {
	for _, category := range []string{
		"- airbnb (or other short term rental, for rent by the night)",
		"- studio apartment (full apartment/suite)",
		"- 4bdr apartment (full apartment/suite)",
		"- bedroom (room in shared apartment)",
		"- bed (sharing a room with someone else)",
		"- other",
		"- unknown (if cannot determine)",
	} {
		assert.Contains(t, promptHeader, category)
	}
	assert.True(t, strings.HasSuffix(promptHeader, "excluding the part in parentheses.\n\n"))
}

func TestBuildPromptKeepsPositionNumbering(t *testing.T) {
	b, sink := newMemoryBuilder()

	listings := []models.Listing{
		described("first")[0],
		models.ParseListing([]byte(`{"listing_details":{}}`)),
		models.ParseListing([]byte(`"not an object"`)),
		described("fourth")[0],
	}

	prompt := b.BuildPrompt(listings, DefaultPromptLimit)

	assert.Contains(t, prompt, "Listing 1:\nfirst\n\n")
	assert.Contains(t, prompt, "Listing 4:\nfourth\n\n")
	assert.NotContains(t, prompt, "Listing 2:")
	assert.NotContains(t, prompt, "Listing 3:")
	assert.Equal(t,
		"Skipping listing 2 due to missing description\n"+
			"Skipping listing 3 due to missing description\n",
		sink.String())
}

func TestBuildPromptRespectsLimit(t *testing.T) {
	texts := make([]string, 150)
	for i := range texts {
		texts[i] = fmt.Sprintf("description %d", i+1)
	}
	b, _ := newMemoryBuilder()

	prompt := b.BuildPrompt(described(texts...), DefaultPromptLimit)

	assert.Equal(t, DefaultPromptLimit, strings.Count(prompt, "Listing "))
	assert.Contains(t, prompt, "Listing 120:\ndescription 120\n\n")
	assert.NotContains(t, prompt, "Listing 121:")
}

func TestBuildPromptLimitCountsSkippedListings(t *testing.T) {
	listings := append([]models.Listing{models.ParseListing([]byte(`{}`))}, described("a", "b", "c")...)
	b, sink := newMemoryBuilder()

	prompt := b.BuildPrompt(listings, 2)

	assert.Equal(t, promptHeader+"Listing 2:\na\n\n", prompt)
	assert.Equal(t, "Skipping listing 1 due to missing description\n", sink.String())
}

func TestBuildPromptNonPositiveLimit(t *testing.T) {
	b, _ := newMemoryBuilder()
	assert.Equal(t, promptHeader, b.BuildPrompt(described("x"), 0))
	assert.Equal(t, promptHeader, b.BuildPrompt(described("x"), -5))
}

func TestBuildPromptClosesSinkOnEmptyInput(t *testing.T) {
	b, sink := newMemoryBuilder()

	prompt := b.BuildPrompt(nil, DefaultPromptLimit)

	assert.Equal(t, promptHeader, prompt)
	assert.Equal(t, 1, sink.closed)
}

func TestBuildPromptSinkUnavailable(t *testing.T) {
	var logs bytes.Buffer
	b := NewPromptBuilder(utils.NewLoggerTo(&logs), func() (io.WriteCloser, error) {
		return nil, errors.New("permission denied")
	})

	prompt := b.BuildPrompt([]models.Listing{models.ParseListing([]byte(`{}`))}, DefaultPromptLimit)

	assert.Equal(t, promptHeader, prompt)
	assert.Contains(t, logs.String(), "permission denied")
}

func TestBuildPromptIsDeterministic(t *testing.T) {
	listings := append(described("one", "two"), models.ParseListing([]byte(`{}`)))
	b := NewPromptBuilder(utils.NewNopLogger(), nil)

	first := b.BuildPrompt(listings, DefaultPromptLimit)
	second := b.BuildPrompt(listings, DefaultPromptLimit)
	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}
