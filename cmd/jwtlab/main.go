// Command jwtlab signs, verifies, cracks and forges HMAC-signed tokens.
//
//	jwtlab crack -t <token> -w <wordlist> [-p '{"admin":true}']
//	jwtlab forge -t <token> -k <secret> -p '{"admin":true}'
//	JWT_SECRET=... jwtlab sign -p '{"username":"alice"}'
//	JWT_SECRET=... jwtlab verify <token>
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit status.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdin, stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	if !isSilent(err) {
		fmt.Fprintf(stderr, "jwtlab: %v\n", err)
	}
	return exitCode(err)
}
