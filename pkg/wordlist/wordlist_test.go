package wordlist_test

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jwtlab/pkg/wordlist"
)

func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

func collect(t *testing.T, sc *wordlist.Scanner) []string {
	t.Helper()
	var out []string
	for sc.Next() {
		out = append(out, string(sc.Candidate()))
	}
	require.NoError(t, sc.Err())
	return out
}

func TestOpen(t *testing.T) {
	t.Parallel()
	fs := memFs(t, map[string]string{"/lists/words.txt": "a\n"})
	require.NoError(t, fs.MkdirAll("/lists/dir", 0o755))

	src, err := wordlist.Open("/lists/words.txt", wordlist.WithFs(fs))
	require.NoError(t, err)
	assert.Equal(t, "/lists/words.txt", src.Path())

	_, err = wordlist.Open("/lists/missing.txt", wordlist.WithFs(fs))
	require.ErrorIs(t, err, wordlist.ErrUnreadable)

	_, err = wordlist.Open("/lists/dir", wordlist.WithFs(fs))
	require.ErrorIs(t, err, wordlist.ErrUnreadable)
}

func TestCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    int64
	}{
		{"empty", "", 0},
		{"single unterminated", "secret", 1},
		{"single terminated", "secret\n", 1},
		{"final line unterminated", "a\nb\nc", 3},
		{"blank lines count", "a\n\n\nb\n", 4},
		{"crlf", "a\r\nb\r\n", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := memFs(t, map[string]string{"words": tt.content})
			src, err := wordlist.Open("words", wordlist.WithFs(fs))
			require.NoError(t, err)

			n, err := src.Count(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)

			sc, err := src.Scan(context.Background())
			require.NoError(t, err)
			defer sc.Close()
			assert.Len(t, collect(t, sc), int(tt.want), "count and scan agree")
		})
	}
}

func TestCountCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := wordlist.CountLines(ctx, strings.NewReader("a\nb\n"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestScanTrimsTrailingWhitespace(t *testing.T) {
	t.Parallel()
	fs := memFs(t, map[string]string{
		"words": "password\r\n  leading\n" + "tabs\t \t\n" + "inner space \n\n" + "s3cr3t",
	})
	src, err := wordlist.Open("words", wordlist.WithFs(fs))
	require.NoError(t, err)

	sc, err := src.Scan(context.Background())
	require.NoError(t, err)
	defer sc.Close()

	assert.Equal(t, []string{"password", "  leading", "tabs", "inner space", "", "s3cr3t"}, collect(t, sc))
	assert.Equal(t, int64(6), sc.Line())
}

func TestScanIsRestartable(t *testing.T) {
	t.Parallel()
	fs := memFs(t, map[string]string{"words": "one\ntwo\n"})
	src, err := wordlist.Open("words", wordlist.WithFs(fs))
	require.NoError(t, err)

	for range 2 {
		sc, err := src.Scan(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two"}, collect(t, sc))
		require.NoError(t, sc.Close())
	}
}

func TestScanLatin1(t *testing.T) {
	t.Parallel()
	fs := memFs(t, map[string]string{"words": "caf\xe9\n\xff\xfe\n"})

	src, err := wordlist.Open("words", wordlist.WithFs(fs), wordlist.WithLatin1())
	require.NoError(t, err)
	sc, err := src.Scan(context.Background())
	require.NoError(t, err)
	defer sc.Close()
	assert.Equal(t, []string{"café", "ÿþ"}, collect(t, sc))

	raw, err := wordlist.Open("words", wordlist.WithFs(fs))
	require.NoError(t, err)
	sc2, err := raw.Scan(context.Background())
	require.NoError(t, err)
	defer sc2.Close()
	assert.Equal(t, []string{"caf\xe9", "\xff\xfe"}, collect(t, sc2))
}

func TestScanLineTooLong(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("x", wordlist.MaxLineSize+1)
	sc := wordlist.NewScanner(context.Background(), strings.NewReader("ok\n"+long+"\n"))

	require.True(t, sc.Next())
	assert.Equal(t, "ok", string(sc.Candidate()))
	assert.False(t, sc.Next())
	require.ErrorIs(t, sc.Err(), wordlist.ErrLineTooLong)
	assert.NoError(t, sc.Close())
}

func TestScanCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sc := wordlist.NewScanner(ctx, strings.NewReader("a\nb\n"))
	assert.False(t, sc.Next())
	require.ErrorIs(t, sc.Err(), context.Canceled)
}
