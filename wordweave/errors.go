package wordweave

import "errors"

var (
	// ErrEmptyInput signals text with no words in it.
	ErrEmptyInput = errors.New("wordweave: no words in input")

	// ErrUnknownStrategy signals a strategy name nothing is registered under.
	ErrUnknownStrategy = errors.New("wordweave: unknown strategy")

	// ErrNoTables signals an n-gram strategy built without a table source.
	ErrNoTables = errors.New("wordweave: no frequency tables configured")
)
