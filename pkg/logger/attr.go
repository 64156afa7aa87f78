package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Algorithm records a signing algorithm name under the key "algorithm".
func Algorithm(name string) slog.Attr {
	return slog.String("algorithm", name)
}

// RunID records a scan run identifier under the key "run_id".
func RunID(id string) slog.Attr {
	return slog.String("run_id", id)
}

// Tried records how many candidates were evaluated.
func Tried(n int64) slog.Attr {
	return slog.Int64("tried", n)
}

// Total records the candidate count of a source. Unknown totals (<= 0) yield
// an empty Attr.
func Total(n int64) slog.Attr {
	if n <= 0 {
		return slog.Attr{}
	}
	return slog.Int64("total", n)
}

// Workers records the size of a worker pool.
func Workers(n int) slog.Attr {
	return slog.Int("workers", n)
}

// Status records an outcome under the key "status".
func Status(s string) slog.Attr {
	return slog.String("status", s)
}

// Path records a filesystem path under the key "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
