package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// cache holds one parsed value per configuration type.
type cache struct {
	mu     sync.RWMutex
	values map[string]any
	onces  map[string]*loadOnce
}

// loadOnce keeps the parse error next to the once so that every caller
// waiting on the same parse sees it.
type loadOnce struct {
	once sync.Once
	err  error
}

var (
	globalCache = newCache()

	dotenvMu     sync.Mutex
	dotenvLoaded bool
)

func newCache() *cache {
	return &cache{
		values: make(map[string]any),
		onces:  make(map[string]*loadOnce),
	}
}

// Load fills v from the environment, parsing each configuration type at most
// once per process. The first call also loads ./.env when present; variables
// already set in the environment win over the file.
//
// Example:
//
//	type ScanConfig struct {
//		Workers int           `env:"JWTLAB_WORKERS" envDefault:"1"`
//		Timeout time.Duration `env:"JWTLAB_TIMEOUT"`
//	}
//
//	var cfg ScanConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	loadDefaultEnv()

	typeName := getTypeName[T]()

	if cached, ok := globalCache.get(typeName); ok {
		*v = cached.(T)
		return nil
	}

	globalCache.mu.Lock()
	lo, exists := globalCache.onces[typeName]
	if !exists {
		lo = new(loadOnce)
		globalCache.onces[typeName] = lo
	}
	globalCache.mu.Unlock()

	lo.once.Do(func() {
		var parsed T
		if parseErr := env.Parse(&parsed); parseErr != nil {
			lo.err = errors.Join(ErrParsingConfig, parseErr)
			// A failed parse may be retried after the environment changes.
			globalCache.mu.Lock()
			delete(globalCache.onces, typeName)
			globalCache.mu.Unlock()
			return
		}
		globalCache.mu.Lock()
		globalCache.values[typeName] = parsed
		globalCache.mu.Unlock()
	})
	if lo.err != nil {
		return lo.err
	}

	if cached, ok := globalCache.get(typeName); ok {
		*v = cached.(T)
		return nil
	}
	return ErrConfigNotLoaded
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Parse fills v from the environment without consulting or updating the cache.
func Parse[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	loadDefaultEnv()
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// LoadEnv loads the given dotenv files into the process environment. Values
// already present are kept. Later calls to Load still hit the cache, so call
// Reset when the files change configuration that was already loaded.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Reset drops every cached configuration and allows ./.env to be read again.
func Reset() {
	globalCache.mu.Lock()
	globalCache.values = make(map[string]any)
	globalCache.onces = make(map[string]*loadOnce)
	globalCache.mu.Unlock()

	dotenvMu.Lock()
	dotenvLoaded = false
	dotenvMu.Unlock()
}

func loadDefaultEnv() {
	dotenvMu.Lock()
	defer dotenvMu.Unlock()
	if dotenvLoaded {
		return
	}
	dotenvLoaded = true
	// A missing .env is normal.
	_ = godotenv.Load()
}

func (c *cache) get(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[name]
	return v, ok
}

// getTypeName returns a string identifier for the generic type T
func getTypeName[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return fmt.Sprintf("%T", new(T))
	}
	return t.PkgPath() + "." + t.String()
}
