package main

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/jwtlab/pkg/crack"
	"github.com/dmitrymomot/jwtlab/pkg/forge"
	"github.com/dmitrymomot/jwtlab/pkg/jwt"
	"github.com/dmitrymomot/jwtlab/pkg/logger"
	"github.com/dmitrymomot/jwtlab/pkg/wordlist"
)

type crackOptions struct {
	token      string
	wordlist   string
	newPayload string
	alg        string
	workers    int
	latin1     bool
	timeout    time.Duration
	noCount    bool
	quiet      bool
}

func newCrackCmd(a *app) *cobra.Command {
	var opts crackOptions

	cmd := &cobra.Command{
		Use:   "crack",
		Short: "Recover a token's secret from a word list",
		Long: `Try every line of a word list as the HMAC secret of a captured token.
On success the secret is printed and, with --new-payload, a token carrying
that payload is forged with the recovered secret.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("workers") {
				opts.workers = a.cfg.Workers
			}
			return a.crack(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.token, "token", "t", "", "captured token")
	f.StringVarP(&opts.wordlist, "wordlist", "w", "", "path to the word list, one candidate per line")
	f.StringVarP(&opts.newPayload, "new-payload", "p", "", "JSON object to forge a token with once the secret is found")
	f.StringVar(&opts.alg, "alg", "", "algorithm to test (default: the one declared in the token header)")
	f.IntVar(&opts.workers, "workers", 1, "hashing goroutines (default from JWTLAB_WORKERS)")
	f.BoolVar(&opts.latin1, "latin1", false, "decode the word list as ISO-8859-1")
	f.DurationVar(&opts.timeout, "timeout", 0, "give up after this long (0 means no limit)")
	f.BoolVar(&opts.noCount, "no-count", false, "skip the counting pass; progress shows no total")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "hide the progress bar")
	return cmd
}

// crack validates every input before reading the word list, so a bad token
// or payload fails without scanning anything.
func (a *app) crack(cmd *cobra.Command, opts crackOptions) error {
	ctx := cmd.Context()

	if opts.token == "" {
		return usageError("--token is required")
	}
	if opts.wordlist == "" {
		return usageError("--wordlist is required")
	}

	var alg jwt.Algorithm
	if opts.alg != "" {
		parsed, err := jwt.ParseAlgorithm(opts.alg)
		if err != nil {
			return usageError("--alg: %v", err)
		}
		alg = parsed
	}

	target, err := crack.NewTarget(opts.token, alg)
	if err != nil {
		return err
	}
	if target.Algorithm().Weak() {
		a.log.Debug("target uses a weak digest", logger.Algorithm(target.Algorithm().String()))
	}

	var payload jwt.Payload
	if opts.newPayload != "" {
		if payload, err = forge.ParsePayload(opts.newPayload); err != nil {
			return err
		}
		// A pinned --alg skips header decoding in NewTarget, but forging
		// reuses the captured header.
		if _, err := jwt.ParseHeader(target.HeaderSegment()); err != nil {
			return &forge.ValidationError{Field: "header", Message: err.Error(), Err: err}
		}
	}

	var wlOpts []wordlist.Option
	wlOpts = append(wlOpts, wordlist.WithLogger(a.log))
	if opts.latin1 {
		wlOpts = append(wlOpts, wordlist.WithLatin1())
	}
	src, err := wordlist.Open(opts.wordlist, wlOpts...)
	if err != nil {
		return err
	}

	var total int64
	if !opts.noCount {
		if total, err = src.Count(ctx); err != nil {
			return err
		}
	}

	bar := a.newProgressBar(total, opts.quiet)
	crackOpts := []crack.Option{
		crack.WithLogger(a.log),
		crack.WithWorkers(opts.workers),
		crack.WithTotal(total),
		crack.WithTimeout(opts.timeout),
	}
	if bar != nil {
		crackOpts = append(crackOpts, crack.WithProgress(func(p crack.Progress) {
			_ = bar.Set64(p.Tried)
		}))
	}

	sc, err := src.Scan(ctx)
	if err != nil {
		return err
	}
	defer sc.Close()

	res, err := crack.New(crackOpts...).Run(ctx, target, sc)
	if bar != nil {
		_ = bar.Exit()
		fmt.Fprintln(a.stderr)
	}
	if err != nil {
		return err
	}

	switch res.Status {
	case crack.Found:
		fmt.Fprintf(a.stdout, "Found secret key: %s\n", res.KeyString())
		if opts.newPayload == "" {
			return nil
		}
		token, err := forge.Forge(res.Key, target.HeaderSegment(), payload)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Forged JWT: %s\n", token)
		return nil
	case crack.Exhausted:
		fmt.Fprintln(a.stdout, "No matching key found.")
		return errNotFound
	default:
		return &exitError{
			code: exitInterrupted,
			err:  fmt.Errorf("scan %s after %d candidates; no key found yet", res.Status, res.Tried),
		}
	}
}

// newProgressBar draws on stderr. Without a total it runs as a spinner.
func (a *app) newProgressBar(total int64, quiet bool) *progressbar.ProgressBar {
	if quiet {
		return nil
	}
	size := total
	if size <= 0 {
		size = -1
	}
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(a.stderr),
		progressbar.OptionSetDescription("cracking"),
		progressbar.OptionSetItsString("keys"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetPredictTime(true),
	)
}
