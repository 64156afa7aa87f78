package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/jwtlab/pkg/config"
	"github.com/dmitrymomot/jwtlab/pkg/crack"
	"github.com/dmitrymomot/jwtlab/pkg/forge"
	"github.com/dmitrymomot/jwtlab/pkg/jwt"
	"github.com/dmitrymomot/jwtlab/pkg/wordlist"
)

// Exit statuses. Each fatal input error has its own status so that scripts
// can tell them apart.
const (
	exitOK               = 0
	exitNotFound         = 1
	exitMalformedToken   = 2
	exitUnreadable       = 3
	exitInvalidPayload   = 4
	exitEncoding         = 5
	exitInvalidSignature = 6
	exitConfig           = 7
	exitUsage            = 64
	exitInternal         = 70
	exitInterrupted      = 130
)

// exitError pins an exit status on err. Silent errors have already been
// reported on stdout.
type exitError struct {
	code   int
	err    error
	silent bool
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

var errNotFound = &exitError{code: exitNotFound, err: errors.New("no matching key found"), silent: true}

func usageError(format string, args ...any) error {
	return &exitError{code: exitUsage, err: fmt.Errorf(format, args...)}
}

func isSilent(err error) bool {
	var ee *exitError
	return errors.As(err, &ee) && ee.silent
}

// exitCode maps an error onto an exit status. Explicit exitError codes win;
// otherwise the error's kind decides, token format problems before payload
// validation.
func exitCode(err error) int {
	var ee *exitError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &ee):
		return ee.code
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return exitInterrupted
	case errors.Is(err, config.ErrParsingConfig),
		errors.Is(err, config.ErrLoadingEnvFile),
		errors.Is(err, jwt.ErrMissingSigningKey):
		return exitConfig
	case errors.Is(err, jwt.ErrEncoding):
		return exitEncoding
	case errors.Is(err, jwt.ErrMalformedToken),
		errors.Is(err, jwt.ErrInvalidHeader),
		errors.Is(err, jwt.ErrUnsupportedAlgorithm):
		return exitMalformedToken
	case errors.Is(err, jwt.ErrInvalidSignature), errors.Is(err, jwt.ErrUnexpectedAlgorithm):
		return exitInvalidSignature
	case errors.Is(err, forge.ErrValidation), errors.Is(err, jwt.ErrInvalidPayload):
		return exitInvalidPayload
	case errors.Is(err, wordlist.ErrUnreadable), errors.Is(err, crack.ErrSource):
		return exitUnreadable
	default:
		return exitInternal
	}
}
