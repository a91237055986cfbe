package models

import "errors"

// Input errors returned by listing sources.
var (
	ErrInputNotFound  = errors.New("input not found")
	ErrInputMalformed = errors.New("input is not a JSON array of listings")
)
