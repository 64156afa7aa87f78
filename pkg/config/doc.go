// Package config loads typed configuration from environment variables.
//
// It combines github.com/joho/godotenv (dotenv files) with
// github.com/caarlos0/env/v11 (struct tags):
//
//	type Config struct {
//		Secret    string `env:"JWT_SECRET,required"`
//		Algorithm string `env:"JWT_ALGORITHM" envDefault:"SHA256-HMAC"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		// errors.Is(err, config.ErrParsingConfig)
//	}
//
// Load parses each configuration type once and caches a copy keyed by the
// type's fully-qualified name; concurrent first calls share one parse. Parse
// skips the cache. The first Load or Parse call reads ./.env if it exists;
// LoadEnv reads explicit files. Neither overrides variables already present
// in the environment.
//
// Reset clears the cache, which tests and long-lived processes use after the
// environment changes.
package config
