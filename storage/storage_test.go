package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-analyzer/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestJSONFileSourceLoad(t *testing.T) {
	path := writeFile(t, "listings.json", `[
		{"id":"1","listing_price":{"amount":"650"}},
		"garbage",
		{"id":"3","listing_price":{"amount":"700"}}
	]`)

	src := NewJSONFileSource(path)
	defer src.Close()

	listings, err := src.Load()
	require.NoError(t, err)
	require.Len(t, listings, 3)
	assert.Equal(t, "1", listings[0].ID())
	assert.Equal(t, "3", listings[2].ID())
	assert.Equal(t, path, src.Name())
}

func TestJSONFileSourceMissingFile(t *testing.T) {
	src := NewJSONFileSource(filepath.Join(t.TempDir(), "nope.json"))
	_, err := src.Load()
	assert.ErrorIs(t, err, models.ErrInputNotFound)
}

func TestParseListingsMalformed(t *testing.T) {
	tests := []string{
		``,
		`{"id":`,
		`{"id":"1"}`,
		`"listings"`,
		"[{\"listing_details\":{\"redacted_description\":{\"text\":\"bad \xff byte\"}}}]",
	}

	for _, raw := range tests {
		_, err := ParseListings([]byte(raw))
		assert.ErrorIs(t, err, models.ErrInputMalformed, "ParseListings(%q)", raw)
	}
}

func TestParseListingsEmptyArray(t *testing.T) {
	listings, err := ParseListings([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestWritePromptOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "prompt.txt")

	_, err := WritePrompt(path, "first run, longer content")
	require.NoError(t, err)
	n, err := WritePrompt(path, "second")
	require.NoError(t, err)
	assert.Equal(t, len("second"), n)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestFileSinkTruncates(t *testing.T) {
	path := writeFile(t, "prompt_errors.log", "stale line\n")
	open := FileSink(path)

	sink, err := open()
	require.NoError(t, err)
	_, err = sink.Write([]byte("Skipping listing 2 due to missing description\n"))
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Skipping listing 2 due to missing description\n", string(got))
}

func TestListingsQueryQuotesTable(t *testing.T) {
	assert.Equal(t, `SELECT payload FROM "listings_raw" ORDER BY id`, listingsQuery("listings_raw"))
	assert.Equal(t, `SELECT payload FROM "a""b" ORDER BY id`, listingsQuery(`a"b`))
}
