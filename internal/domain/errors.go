package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyLedger     = errors.New("ledger has no line items")
	ErrSessionNotFound = errors.New("session not found")
	ErrNegativeValue   = errors.New("negative value rejected")
)

const (
	FieldPrice    = "price"
	FieldQuantity = "quantity"
)

// ParseError reports which line-item field failed to parse and the raw input
// that was rejected.
type ParseError struct {
	Field string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
