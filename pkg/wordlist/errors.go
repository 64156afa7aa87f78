package wordlist

import "errors"

var (
	// ErrUnreadable reports a word list that is missing, a directory or
	// cannot be opened.
	ErrUnreadable = errors.New("wordlist: unreadable source")

	// ErrLineTooLong reports a line longer than MaxLineSize.
	ErrLineTooLong = errors.New("wordlist: line too long")
)
