package crack

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/jwtlab/pkg/logger"
)

// Candidates is a forward-only stream of keys. The slice returned by
// Candidate may be overwritten by the next call to Next.
// *wordlist.Scanner satisfies it.
type Candidates interface {
	Next() bool
	Candidate() []byte
	Err() error
}

// Cracker runs dictionary scans against a Target. A Cracker may be reused
// for several runs, including concurrent ones.
type Cracker struct {
	workers     int
	batchSize   int
	total       int64
	progress    func(Progress)
	reportEvery int64
	timeout     time.Duration
	checkEvery  int64
	logger      *slog.Logger

	progressMu sync.Mutex
}

// New creates a sequential Cracker unless WithWorkers says otherwise.
func New(opts ...Option) *Cracker {
	c := &Cracker{
		workers:     1,
		batchSize:   DefaultBatchSize,
		reportEvery: DefaultReportEvery,
		checkEvery:  DefaultCheckEvery,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run tests candidates from src against target until one matches, src is
// exhausted, ctx is done or the configured timeout passes. Only the first
// match is reported; a failing source returns an error wrapping ErrSource.
// Exhaustion, interruption and deadline are statuses, not errors.
func (c *Cracker) Run(ctx context.Context, target *Target, src Candidates) (Result, error) {
	if target == nil {
		return Result{}, ErrNilTarget
	}

	runID := uuid.NewString()
	start := time.Now()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	log := c.logger.With(logger.Component("crack"), logger.RunID(runID))
	log.Info("scan started",
		logger.Algorithm(target.Algorithm().String()),
		logger.Workers(c.workers),
		logger.Total(c.total),
	)

	var (
		res Result
		err error
	)
	if c.workers <= 1 {
		res, err = c.runSequential(ctx, target, src)
	} else {
		res, err = c.runSharded(ctx, target, src)
	}
	res.RunID = runID
	res.Total = c.total
	res.Elapsed = time.Since(start)
	c.report(Progress{Tried: res.Tried, Total: c.total})

	if err != nil {
		log.Error("scan failed", logger.Tried(res.Tried), logger.Error(err))
		return res, err
	}

	attrs := []any{
		logger.Status(res.Status.String()),
		logger.Tried(res.Tried),
		logger.Duration(res.Elapsed),
	}
	if res.Found() {
		attrs = append(attrs, slog.Int64("line", res.Line))
	}
	log.Info("scan finished", attrs...)
	return res, nil
}

func (c *Cracker) runSequential(ctx context.Context, target *Target, src Candidates) (Result, error) {
	var tried int64
	for {
		if tried%c.checkEvery == 0 && ctx.Err() != nil {
			return Result{Status: stopStatus(ctx), Tried: tried}, nil
		}
		if !src.Next() {
			break
		}
		tried++

		key := src.Candidate()
		if target.Matches(key) {
			return Result{Status: Found, Key: bytes.Clone(key), Line: tried, Tried: tried}, nil
		}
		if tried%c.reportEvery == 0 {
			c.report(Progress{Tried: tried, Total: c.total})
		}
	}

	if err := src.Err(); err != nil {
		if stopped(ctx, err) {
			return Result{Status: stopStatus(ctx), Tried: tried}, nil
		}
		return Result{Tried: tried}, fmt.Errorf("%w: %w", ErrSource, err)
	}
	return Result{Status: Exhausted, Tried: tried}, nil
}

// batch is a run of consecutive candidates starting at line start. Keys are
// copies owned by the worker that receives the batch.
type batch struct {
	start int64
	keys  [][]byte
}

// runSharded feeds batches from a single reader goroutine to a fixed pool of
// workers. Workers share only the found flag, the write-once result slot and
// the run context; each checks the flag before every candidate, so at most
// one in-flight comparison per worker happens after a match.
func (c *Cracker) runSharded(ctx context.Context, target *Target, src Candidates) (Result, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	var (
		found   atomic.Bool
		once    sync.Once
		hit     Result
		tried   atomic.Int64
		batches = make(chan batch, c.workers)
	)

	g.Go(func() error {
		defer close(batches)

		var line int64
		for !found.Load() && gctx.Err() == nil {
			b := batch{start: line + 1, keys: make([][]byte, 0, c.batchSize)}
			for len(b.keys) < c.batchSize && src.Next() {
				b.keys = append(b.keys, bytes.Clone(src.Candidate()))
			}
			line += int64(len(b.keys))

			if len(b.keys) > 0 {
				select {
				case batches <- b:
				case <-gctx.Done():
					return nil
				}
			}
			if len(b.keys) < c.batchSize {
				break
			}
		}

		if err := src.Err(); err != nil && !found.Load() && !stopped(ctx, err) {
			return fmt.Errorf("%w: %w", ErrSource, err)
		}
		return nil
	})

	for range c.workers {
		g.Go(func() error {
			for b := range batches {
				for i, key := range b.keys {
					if found.Load() {
						return nil
					}
					if int64(i)%c.checkEvery == 0 && gctx.Err() != nil {
						return nil
					}

					n := tried.Add(1)
					if target.Matches(key) {
						once.Do(func() {
							hit = Result{Status: Found, Key: key, Line: b.start + int64(i)}
							found.Store(true)
						})
						cancel()
						return nil
					}
					if n%c.reportEvery == 0 {
						c.report(Progress{Tried: n, Total: c.total})
					}
				}
			}
			return nil
		})
	}

	err := g.Wait()
	n := tried.Load()

	if found.Load() {
		hit.Tried = n
		return hit, nil
	}
	if err != nil {
		return Result{Tried: n}, err
	}
	if ctx.Err() != nil {
		return Result{Status: stopStatus(ctx), Tried: n}, nil
	}
	return Result{Status: Exhausted, Tried: n}, nil
}

func (c *Cracker) report(p Progress) {
	if c.progress == nil {
		return
	}
	c.progressMu.Lock()
	defer c.progressMu.Unlock()
	c.progress(p)
}

func stopStatus(ctx context.Context) Status {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return DeadlineExceeded
	}
	return Interrupted
}

// stopped reports whether err is the source observing ctx's own cancellation.
func stopped(ctx context.Context, err error) bool {
	return ctx.Err() != nil &&
		(errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded))
}
