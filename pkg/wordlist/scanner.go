package wordlist

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
)

// trailingSpace is stripped from the end of every line.
const trailingSpace = " \t\r\n\v\f"

// Scanner yields one candidate per line. The slice returned by Candidate is
// only valid until the next call to Next.
type Scanner struct {
	sc     *bufio.Scanner
	cur    []byte
	line   int64
	err    error
	closer io.Closer
}

// NewScanner scans an in-memory or already opened reader. Only WithLatin1 is
// meaningful here. Reads stop with ctx.Err() once ctx is done.
func NewScanner(ctx context.Context, r io.Reader, opts ...Option) *Scanner {
	return newScanner(ctx, r, newOptions(opts))
}

func newScanner(ctx context.Context, r io.Reader, o options) *Scanner {
	r = &ctxReader{ctx: ctx, r: r}
	if o.latin1 {
		r = latin1Reader(r)
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), MaxLineSize)
	sc.Split(scanRawLines)
	return &Scanner{sc: sc}
}

// Next advances to the next line.
func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				err = errors.Join(ErrLineTooLong, err)
			}
			s.err = err
		}
		return false
	}
	s.line++
	s.cur = bytes.TrimRight(s.sc.Bytes(), trailingSpace)
	return true
}

// Candidate returns the current line without trailing whitespace.
func (s *Scanner) Candidate() []byte { return s.cur }

// Line is the 1-based number of the current line.
func (s *Scanner) Line() int64 { return s.line }

// Err returns the first non-EOF error. A cancelled context surfaces as
// ctx.Err().
func (s *Scanner) Err() error { return s.err }

// Close releases the underlying file, if any.
func (s *Scanner) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

// scanRawLines splits on '\n' and keeps everything else, including '\r',
// for the caller to trim.
func scanRawLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
