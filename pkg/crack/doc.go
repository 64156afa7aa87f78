// Package crack recovers the shared secret of an HMAC-signed token by
// dictionary search.
//
// A Target holds a captured token's signing input and decoded signature.
// Cracker.Run feeds it keys from any Candidates stream (typically a
// *wordlist.Scanner) and stops at the first key that reproduces the
// signature:
//
//	target, err := crack.NewTarget(token, 0) // algorithm from the header
//	sc, err := src.Scan(ctx)
//	defer sc.Close()
//	res, err := crack.New(crack.WithWorkers(runtime.NumCPU())).Run(ctx, target, sc)
//	if res.Found() {
//		fmt.Println(res.KeyString())
//	}
//
// With one worker the scan runs on the calling goroutine in source order.
// With more, a reader goroutine hands copied batches to a worker pool via
// golang.org/x/sync/errgroup; the first match cancels the rest.
//
// Cancellation and the optional timeout are checked every CheckEvery
// candidates and end the run with Interrupted or DeadlineExceeded rather
// than an error. Each run is tagged with a random run id for log
// correlation. Recovered keys are never logged.
package crack
