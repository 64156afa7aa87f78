package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jwtlab/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("run", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "run", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestScanAttrs(t *testing.T) {
	assert.Equal(t, "run_id", logger.RunID("abc").Key)
	assert.Equal(t, "SHA256-HMAC", logger.Algorithm("SHA256-HMAC").Value.String())
	assert.Equal(t, int64(7), logger.Tried(7).Value.Int64())
	assert.Equal(t, 4, int(logger.Workers(4).Value.Int64()))
	assert.Equal(t, "exhausted", logger.Status("exhausted").Value.String())
	assert.Equal(t, "/tmp/words", logger.Path("/tmp/words").Value.String())
	assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())

	assert.Equal(t, int64(10), logger.Total(10).Value.Int64())
	assert.True(t, logger.Total(0).Equal(slog.Attr{}))
}
