// Package wordlist streams candidate keys from a line-oriented word list.
//
// A Source is opened once and read in two independent passes: Count for the
// total used by progress reporting, and Scan for the candidates themselves.
// Each candidate is one line with trailing whitespace removed; leading
// whitespace is part of the candidate. Files are read through an afero.Fs so
// that tests and embedded lists can use an in-memory filesystem.
//
//	src, err := wordlist.Open("rockyou.txt", wordlist.WithLatin1())
//	if err != nil {
//		// errors.Is(err, wordlist.ErrUnreadable)
//	}
//	total, _ := src.Count(ctx)
//	sc, err := src.Scan(ctx)
//	defer sc.Close()
//	for sc.Next() {
//		try(sc.Candidate())
//	}
//	if err := sc.Err(); err != nil { ... }
package wordlist
