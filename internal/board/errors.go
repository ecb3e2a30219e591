package board

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the board package. Errors carrying more
// context wrap one of these, so callers should match with errors.Is.
var (
	ErrInvalidFEN    = errors.New("invalid FEN")
	ErrInvalidSquare = errors.New("invalid square")
	ErrIllegalMove   = errors.New("illegal move")
)

// FENError reports which FEN field was rejected and why.
type FENError struct {
	Field  string // placement, active, castling, enpassant, halfmove, fullmove or fen
	Value  string
	Reason string
}

func (e *FENError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%v: %s: %s", ErrInvalidFEN, e.Field, e.Reason)
	}
	return fmt.Sprintf("%v: %s %q: %s", ErrInvalidFEN, e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidFEN.
func (e *FENError) Unwrap() error {
	return ErrInvalidFEN
}

func fenError(field, value, format string, args ...any) *FENError {
	return &FENError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)}
}
