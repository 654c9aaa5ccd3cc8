package parser

import "errors"

var (
	// ErrNoLines is returned for a block without any lines.
	ErrNoLines = errors.New("block has no lines")
	// ErrBlankLine marks a whitespace-only line inside a block.
	ErrBlankLine = errors.New("blank line")
	// ErrNoSymbol is returned when a block holds nothing but whitespace.
	ErrNoSymbol = errors.New("block has no symbol")
	// ErrMixedSymbols marks a line containing a symbol other than the block's first one.
	ErrMixedSymbols = errors.New("mixed symbols")
	// ErrSourceNotFound is returned when a file or directory source does not exist.
	ErrSourceNotFound = errors.New("source not found")
	// ErrUnreadable is returned when the source text cannot be split into lines.
	ErrUnreadable = errors.New("unreadable parcel text")
)
