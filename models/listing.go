package models

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

const (
	idPath          = "id"
	pricePath       = "listing_price.amount"
	descriptionPath = "listing_details.redacted_description.text"

	// UnknownID is reported for listings that carry no usable id.
	UnknownID = "Unknown ID"
)

var (
	ErrPriceMissing   = errors.New("price field missing")
	ErrPriceNotString = errors.New("price field is not a string")
	ErrPriceInvalid   = errors.New("price is not a finite number")
)

// Listing is one rental record from the scraped dataset. The payload is kept
// as a raw JSON tree because scraped records are frequently partial; fields
// are read through accessors that report absence instead of failing.
type Listing struct {
	data gjson.Result
}

// NewListing wraps an already parsed JSON value.
func NewListing(data gjson.Result) Listing {
	return Listing{data: data}
}

// ParseListing parses a single JSON document into a Listing.
// Invalid JSON or UTF-8 yields an empty listing whose accessors all report
// absence.
func ParseListing(raw []byte) Listing {
	if !utf8.Valid(raw) || !gjson.ValidBytes(raw) {
		return Listing{}
	}
	return Listing{data: gjson.ParseBytes(raw)}
}

// ID returns the listing id as text, or UnknownID.
func (l Listing) ID() string {
	id, ok := l.lookup(idPath)
	if !ok || id.Type == gjson.Null {
		return UnknownID
	}
	if id.Type == gjson.String {
		return id.Str
	}
	return id.Raw
}

// PriceString returns listing_price.amount exactly as it appears in the data.
func (l Listing) PriceString() (string, error) {
	v, ok := l.lookup(pricePath)
	if !ok {
		return "", ErrPriceMissing
	}
	if v.Type != gjson.String {
		return "", ErrPriceNotString
	}
	return v.Str, nil
}

// Price returns the raw price string together with its numeric value.
func (l Listing) Price() (string, float64, error) {
	raw, err := l.PriceString()
	if err != nil {
		return "", 0, err
	}
	trimmed := strings.TrimSpace(raw)
	if isHexLiteral(trimmed) {
		return raw, 0, ErrPriceInvalid
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return raw, 0, ErrPriceInvalid
	}
	return raw, f, nil
}

// Description returns listing_details.redacted_description.text.
// Strings are returned verbatim, numbers and booleans as their JSON text;
// null, objects and arrays count as absent.
func (l Listing) Description() (string, bool) {
	v, ok := l.lookup(descriptionPath)
	if !ok {
		return "", false
	}
	switch v.Type {
	case gjson.String:
		return v.Str, true
	case gjson.Number, gjson.True, gjson.False:
		return v.Raw, true
	default:
		return "", false
	}
}

// isHexLiteral reports whether s is a hexadecimal float such as "0x400p0",
// which strconv accepts but a decimal price string never is.
func isHexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// lookup walks a dotted path one object level at a time, so that a non-object
// anywhere along the way is reported as absent. When a key repeats within an
// object the last occurrence wins.
func (l Listing) lookup(path string) (gjson.Result, bool) {
	cur := l.data
	for _, key := range strings.Split(path, ".") {
		if !cur.IsObject() {
			return gjson.Result{}, false
		}
		next, found := lastMember(cur, key)
		if !found {
			return gjson.Result{}, false
		}
		cur = next
	}
	return cur, true
}

func lastMember(obj gjson.Result, key string) (gjson.Result, bool) {
	var (
		val   gjson.Result
		found bool
	)
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.Str == key {
			val, found = v, true
		}
		return true
	})
	return val, found
}
