package crack

import (
	"strconv"
	"time"
	"unicode"
	"unicode/utf8"
)

// Status is the outcome of a run.
type Status uint8

const (
	// Found means a candidate reproduced the signature.
	Found Status = iota + 1
	// Exhausted means every candidate was tried without a match.
	Exhausted
	// Interrupted means the caller's context was cancelled first.
	Interrupted
	// DeadlineExceeded means the run's deadline passed first.
	DeadlineExceeded
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case Exhausted:
		return "exhausted"
	case Interrupted:
		return "interrupted"
	case DeadlineExceeded:
		return "deadline_exceeded"
	default:
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
}

// Result describes a finished run. Key and Line are set only when Status is
// Found; Line is the 1-based position of the key in the candidate stream.
// With several workers and a key on several lines, Line is whichever
// matching line a worker reached first.
type Result struct {
	Status  Status
	Key     []byte
	Line    int64
	Tried   int64
	Total   int64
	Elapsed time.Duration
	RunID   string
}

// Found reports whether the run recovered a key.
func (r Result) Found() bool { return r.Status == Found }

// KeyString renders the key as text when it is valid UTF-8 made of printable
// characters, and as a Go-quoted string otherwise (including the empty key).
func (r Result) KeyString() string {
	if len(r.Key) > 0 && printable(r.Key) {
		return string(r.Key)
	}
	return strconv.Quote(string(r.Key))
}

func printable(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if !unicode.IsPrint(r) {
			return false
		}
		b = b[size:]
	}
	return true
}

// Progress is a snapshot of a running scan. Total is zero when unknown.
type Progress struct {
	Tried int64
	Total int64
}

// Fraction returns Tried/Total in [0, 1], or false when Total is unknown.
func (p Progress) Fraction() (float64, bool) {
	if p.Total <= 0 {
		return 0, false
	}
	f := float64(p.Tried) / float64(p.Total)
	if f > 1 {
		f = 1
	}
	return f, true
}
