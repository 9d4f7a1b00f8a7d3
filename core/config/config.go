package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// loadEnvOnce guards the one-time .env autoload. A missing .env file is
	// not an error: real environments provide variables directly.
	loadEnvOnce sync.Once

	cacheMu sync.RWMutex
	cache   = make(map[reflect.Type]any)
)

// Load populates cfg from environment variables. Each configuration type is
// parsed once per process; subsequent calls for the same type return the
// cached value. cfg must be a non-nil pointer to a struct.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return fmt.Errorf("config: nil pointer passed to Load")
	}

	loadEnvOnce.Do(func() {
		_ = godotenv.Load()
	})

	t := reflect.TypeOf(*cfg)

	cacheMu.RLock()
	cached, ok := cache[t]
	cacheMu.RUnlock()
	if ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", t, err)
	}

	cacheMu.Lock()
	// First writer wins so concurrent loaders observe one value.
	if cached, ok := cache[t]; ok {
		*cfg = cached.(T)
	} else {
		cache[t] = *cfg
	}
	cacheMu.Unlock()

	return nil
}

// MustLoad is Load that panics on failure. Intended for application startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
