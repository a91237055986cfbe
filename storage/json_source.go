package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"rental-analyzer/models"
)

// JSONFileSource reads listings from a scraped dataset: a UTF-8 JSON file
// whose root is an array of listing objects.
type JSONFileSource struct {
	path string
}

// NewJSONFileSource returns a source for the dataset at path.
func NewJSONFileSource(path string) *JSONFileSource {
	return &JSONFileSource{path: path}
}

// Name returns the dataset path.
func (s *JSONFileSource) Name() string { return s.path }

// Load reads and parses the whole dataset.
func (s *JSONFileSource) Load() ([]models.Listing, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("json: read %q: %w", s.path, models.ErrInputNotFound)
		}
		return nil, fmt.Errorf("json: read %q: %w", s.path, err)
	}
	return ParseListings(data)
}

// Close is a no-op; the file is read in one call.
func (s *JSONFileSource) Close() error { return nil }

// ParseListings splits a JSON array document into listings, keeping order.
func ParseListings(data []byte) ([]models.Listing, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("json: document is not valid UTF-8: %w", models.ErrInputMalformed)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("json: invalid document: %w", models.ErrInputMalformed)
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("json: root is %s, want array: %w", root.Type, models.ErrInputMalformed)
	}

	elems := root.Array()
	listings := make([]models.Listing, 0, len(elems))
	for _, e := range elems {
		listings = append(listings, models.NewListing(e))
	}
	return listings, nil
}
