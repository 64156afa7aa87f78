package wordlist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/dmitrymomot/jwtlab/pkg/logger"
)

// MaxLineSize bounds a single candidate line.
const MaxLineSize = 1 << 20

const readChunk = 64 << 10

// Option configures a Source or Scanner.
type Option func(*options)

type options struct {
	fs     afero.Fs
	latin1 bool
	logger *slog.Logger
}

// WithFs reads the word list from fs instead of the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		if fs != nil {
			o.fs = fs
		}
	}
}

// WithLatin1 treats the input as ISO-8859-1 and transcodes every line to
// UTF-8, so that any byte sequence yields a candidate.
func WithLatin1() Option {
	return func(o *options) { o.latin1 = true }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{fs: afero.NewOsFs(), logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Source is a word list on a filesystem. It holds no open handle: Count and
// Scan each open the file afresh, which is the only way to restart a scan.
type Source struct {
	path string
	opts options
}

// Open checks that path names a readable regular file.
func Open(path string, opts ...Option) (*Source, error) {
	o := newOptions(opts)

	info, err := o.fs.Stat(path)
	if err != nil {
		return nil, errors.Join(ErrUnreadable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnreadable, path)
	}

	f, err := o.fs.Open(path)
	if err != nil {
		return nil, errors.Join(ErrUnreadable, err)
	}
	_ = f.Close()

	o.logger.Debug("word list opened",
		logger.Component("wordlist"),
		logger.Path(path),
		slog.Int64("size", info.Size()),
	)
	return &Source{path: path, opts: o}, nil
}

// Path returns the path the source was opened with.
func (s *Source) Path() string { return s.path }

// Count reads the whole list once and returns the number of lines. A final
// line without a terminating newline is counted. Cancellation is checked
// between reads; on cancellation the partial count is returned with ctx.Err().
func (s *Source) Count(ctx context.Context) (int64, error) {
	f, err := s.opts.fs.Open(s.path)
	if err != nil {
		return 0, errors.Join(ErrUnreadable, err)
	}
	defer f.Close()

	return CountLines(ctx, f)
}

// CountLines counts lines in r the same way Source.Count does.
func CountLines(ctx context.Context, r io.Reader) (int64, error) {
	var (
		count int64
		last  byte = '\n'
		buf        = make([]byte, readChunk)
	)
	for {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		n, err := r.Read(buf)
		if n > 0 {
			count += int64(bytes.Count(buf[:n], []byte{'\n'}))
			last = buf[n-1]
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, errors.Join(ErrUnreadable, err)
		}
	}
	if last != '\n' {
		count++
	}
	return count, nil
}

// Scan opens the list and returns a Scanner positioned before the first
// line. The caller must Close it.
func (s *Source) Scan(ctx context.Context) (*Scanner, error) {
	f, err := s.opts.fs.Open(s.path)
	if err != nil {
		return nil, errors.Join(ErrUnreadable, err)
	}
	sc := newScanner(ctx, f, s.opts)
	sc.closer = f
	return sc, nil
}

// latin1Reader transcodes ISO-8859-1 bytes to UTF-8.
func latin1Reader(r io.Reader) io.Reader {
	return transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
}
