package crack

import (
	"log/slog"
	"time"
)

const (
	DefaultBatchSize   = 512
	DefaultReportEvery = 4096
	DefaultCheckEvery  = 1024
)

// Option configures a Cracker.
type Option func(*Cracker)

// WithWorkers sets the number of hashing goroutines. One or less scans
// sequentially on the calling goroutine.
func WithWorkers(n int) Option {
	return func(c *Cracker) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithBatchSize sets how many candidates the reader hands a worker at once.
func WithBatchSize(n int) Option {
	return func(c *Cracker) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithTotal sets the candidate count reported in Progress and Result.
func WithTotal(n int64) Option {
	return func(c *Cracker) {
		if n > 0 {
			c.total = n
		}
	}
}

// WithProgress registers a callback invoked every ReportEvery candidates and
// once when the run ends. Calls are serialized.
func WithProgress(fn func(Progress)) Option {
	return func(c *Cracker) { c.progress = fn }
}

func WithReportEvery(n int64) Option {
	return func(c *Cracker) {
		if n > 0 {
			c.reportEvery = n
		}
	}
}

// WithTimeout bounds the run. Zero means no deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Cracker) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithCheckEvery sets how many candidates pass between cancellation and
// deadline checks.
func WithCheckEvery(n int64) Option {
	return func(c *Cracker) {
		if n > 0 {
			c.checkEvery = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Cracker) {
		if l != nil {
			c.logger = l
		}
	}
}
