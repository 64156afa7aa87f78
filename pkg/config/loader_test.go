package config_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jwtlab/pkg/config"
)

type scanConfig struct {
	Workers int           `env:"TEST_SCAN_WORKERS" envDefault:"1"`
	Timeout time.Duration `env:"TEST_SCAN_TIMEOUT" envDefault:"0s"`
	Latin1  bool          `env:"TEST_SCAN_LATIN1" envDefault:"false"`
}

type cachedConfig struct {
	Value string `env:"TEST_CACHED_VALUE" envDefault:"default"`
}

type requiredConfig struct {
	Secret string `env:"TEST_REQUIRED_SECRET,required"`
}

type fileConfig struct {
	Secret    string `env:"TEST_FILE_SECRET"`
	Algorithm string `env:"TEST_FILE_ALGORITHM" envDefault:"SHA256-HMAC"`
}

func TestLoad(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	t.Setenv("TEST_SCAN_WORKERS", "8")
	t.Setenv("TEST_SCAN_TIMEOUT", "1m30s")

	var cfg scanConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.False(t, cfg.Latin1)
}

func TestLoadCachesPerType(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	t.Setenv("TEST_CACHED_VALUE", "first")
	var first cachedConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("TEST_CACHED_VALUE", "second")
	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)

	var fresh cachedConfig
	require.NoError(t, config.Parse(&fresh))
	assert.Equal(t, "second", fresh.Value)

	config.Reset()
	var reloaded cachedConfig
	require.NoError(t, config.Load(&reloaded))
	assert.Equal(t, "second", reloaded.Value)
}

func TestLoadConcurrent(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)
	t.Setenv("TEST_CACHED_VALUE", "shared")

	var wg sync.WaitGroup
	results := make([]cachedConfig, 16)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = config.Load(&results[i])
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, "shared", results[i].Value)
	}
}

func TestLoadRequired(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	os.Unsetenv("TEST_REQUIRED_SECRET")
	var cfg requiredConfig
	err := config.Load(&cfg)
	require.ErrorIs(t, err, config.ErrParsingConfig)

	// A failed parse is not cached.
	t.Setenv("TEST_REQUIRED_SECRET", "s3cr3t")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "s3cr3t", cfg.Secret)
}

func TestLoadConcurrentFailure(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	t.Setenv("TEST_REQUIRED_SECRET", "")
	os.Unsetenv("TEST_REQUIRED_SECRET")

	var wg sync.WaitGroup
	errs := make([]error, 32)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var cfg requiredConfig
			errs[i] = config.Load(&cfg)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.ErrorIs(t, err, config.ErrParsingConfig)
		assert.NotErrorIs(t, err, config.ErrConfigNotLoaded)
	}
}

func TestMustLoad(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	os.Unsetenv("TEST_REQUIRED_SECRET")
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})

	t.Setenv("TEST_CACHED_VALUE", "ok")
	assert.NotPanics(t, func() {
		var cfg cachedConfig
		config.MustLoad(&cfg)
	})
}

func TestNilPointer(t *testing.T) {
	require.ErrorIs(t, config.Load[scanConfig](nil), config.ErrNilPointer)
	require.ErrorIs(t, config.Parse[scanConfig](nil), config.ErrNilPointer)
}

func TestLoadEnv(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	dir := t.TempDir()
	path := filepath.Join(dir, ".env.test")
	require.NoError(t, os.WriteFile(path, []byte("TEST_FILE_SECRET=from-file\nTEST_FILE_ALGORITHM=MD5-HMAC\n"), 0o600))

	os.Unsetenv("TEST_FILE_SECRET")
	t.Setenv("TEST_FILE_ALGORITHM", "SHA512-HMAC")
	t.Cleanup(func() { os.Unsetenv("TEST_FILE_SECRET") })

	require.NoError(t, config.LoadEnv(path))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-file", cfg.Secret)
	assert.Equal(t, "SHA512-HMAC", cfg.Algorithm, "environment wins over the file")

	require.ErrorIs(t, config.LoadEnv(filepath.Join(dir, "missing")), config.ErrLoadingEnvFile)
	require.NoError(t, config.LoadEnv())
}
