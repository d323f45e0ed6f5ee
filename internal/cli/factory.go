package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aretw0/tracetm"
	"github.com/aretw0/tracetm/internal/config"
	"github.com/aretw0/tracetm/pkg/adapters/file"
	"github.com/aretw0/tracetm/pkg/adapters/loam"
	"github.com/aretw0/tracetm/pkg/adapters/memory"
	"github.com/aretw0/tracetm/pkg/adapters/redis"
	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/aretw0/tracetm/pkg/persistence/middleware"
	"github.com/aretw0/tracetm/pkg/ports"
)

// OpenStore builds the report store selected by cfg. A nil store means
// records are not kept. The returned func releases its resources.
func OpenStore(cfg config.StoreConfig) (ports.ReportStore, func() error, error) {
	store, closeStore, err := openBackend(cfg)
	if err != nil || store == nil || cfg.EncryptionKey == "" {
		return store, closeStore, err
	}

	mw, err := encryption(cfg)
	if err != nil {
		closeStore()
		return nil, func() error { return nil }, err
	}
	return middleware.Chain(store, mw), closeStore, nil
}

func encryption(cfg config.StoreConfig) (middleware.Middleware, error) {
	active, err := middleware.ParseKey(cfg.EncryptionKey)
	if err != nil {
		return nil, err
	}
	ec := middleware.EncryptionConfig{ActiveKey: active}
	for _, k := range cfg.FallbackKeys {
		key, err := middleware.ParseKey(k)
		if err != nil {
			return nil, fmt.Errorf("fallback key: %w", err)
		}
		ec.FallbackKeys = append(ec.FallbackKeys, key)
	}
	return middleware.NewEncryptionMiddleware(ec)
}

func openBackend(cfg config.StoreConfig) (ports.ReportStore, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(cfg.Kind) {
	case "", "none":
		return nil, noop, nil
	case "memory":
		return memory.NewStore(), noop, nil
	case "file":
		return file.NewStore(cfg.Path), noop, nil
	case "redis":
		var opts []redis.Option
		if cfg.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.TTL))
		}
		s := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, opts...)
		return s, s.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown store %q (want memory, file or redis)", cfg.Kind)
}

// LoadMachine initializes a machine with standard CLI conventions: ref is a
// file path, or a machine id when a library directory is configured.
func LoadMachine(ctx context.Context, ref string, cfg config.Config, logger *slog.Logger, hooks domain.TraceHooks) (*tracetm.Machine, func() error, error) {
	store, closeStore, err := OpenStore(cfg.Store)
	if err != nil {
		return nil, closeStore, err
	}

	opts := []tracetm.Option{
		tracetm.WithLogger(logger),
		tracetm.WithLifecycleHooks(hooks),
	}
	if store != nil {
		opts = append(opts, tracetm.WithStore(store))
	}

	if cfg.Library != "" {
		lib, err := openLibrary(cfg.Library)
		if err != nil {
			closeStore()
			return nil, func() error { return nil }, err
		}
		opts = append(opts, tracetm.WithLoader(lib))
	}

	m, err := tracetm.New(ctx, ref, opts...)
	if err != nil {
		closeStore()
		return nil, func() error { return nil }, fmt.Errorf("error initializing machine: %w", err)
	}
	return m, closeStore, nil
}

// OutputPath names the report file for a machine reference:
// output-<file stem>.txt in the working directory.
func OutputPath(ref string) string {
	stem := strings.TrimSuffix(filepath.Base(ref), filepath.Ext(ref))
	return "output-" + stem + ".txt"
}

func openLibrary(dir string) (*loam.Library, error) {
	lib, err := loam.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open machine library: %w", err)
	}
	return lib, nil
}
