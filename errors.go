package main

import "errors"

// Error kinds reported by the grid, codec and gadget operations. Callers
// match them with errors.Is; the returned errors carry extra context.
var (
	ErrInvalidUTF8      = errors.New("data is not valid UTF-8 text")
	ErrDelimiterInText  = errors.New("text contains a tab or line break")
	ErrInvalidHex       = errors.New("invalid hex")
	ErrInvalidEncoding  = errors.New("invalid encoding")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrLengthMismatch   = errors.New("length mismatch")
	ErrNoKnownPlaintext = errors.New("no known plaintext cell")
	ErrUnknownBytes     = errors.New("grid contains unknown bytes")
)
