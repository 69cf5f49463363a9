package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/cocteler/cocteler/internal/catalog"
	"github.com/cocteler/cocteler/internal/community"
	"github.com/cocteler/cocteler/internal/config"
	"github.com/cocteler/cocteler/internal/kv"
	"github.com/cocteler/cocteler/internal/logging"
	"github.com/cocteler/cocteler/internal/onboarding"
	"github.com/cocteler/cocteler/internal/prefs"
	"github.com/cocteler/cocteler/internal/state"
	"github.com/cocteler/cocteler/internal/ui"
)

// Options configure the cocteler application.
type Options struct {
	ConfigPath string // empty uses ~/.config/cocteler/config.toml
	Overrides  config.Overrides
}

// Env holds every long-lived component of a running session.
type Env struct {
	Config     config.Config
	Logger     *zap.Logger
	Adapter    kv.Adapter
	Writer     *kv.Writer
	Catalogs   map[string]*catalog.Catalog
	Store      *state.Store
	Onboarding *onboarding.Service
	Community  *community.Board
	Prefs      prefs.Prefs
}

// Open loads configuration and builds the components. Nothing is read from
// storage until Load.
func Open(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg = cfg.WithOverrides(opts.Overrides)

	if !cfg.Ephemeral {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	var adapter kv.Adapter
	if cfg.Ephemeral {
		adapter = kv.NewMemory()
	} else {
		db, err := kv.OpenSQLite(cfg.DBPath())
		if err != nil {
			logging.Sync(logger)
			return nil, fmt.Errorf("open storage: %w", err)
		}
		adapter = db
	}

	catalogs := make(map[string]*catalog.Catalog, len(catalog.Languages()))
	for _, lang := range catalog.Languages() {
		c, err := catalog.Load(lang)
		if err != nil {
			_ = adapter.Close()
			logging.Sync(logger)
			return nil, fmt.Errorf("load %s catalog: %w", lang, err)
		}
		catalogs[lang] = c
	}

	writer := kv.NewWriter(adapter, kv.WriterOptions{
		Debounce: cfg.WriteDebounce,
		Logger:   logger,
	})

	logger.Info("session opened",
		zap.String("data_dir", cfg.DataDir),
		zap.Bool("ephemeral", cfg.Ephemeral),
		zap.Duration("write_debounce", cfg.WriteDebounce))

	return &Env{
		Config:     cfg,
		Logger:     logger,
		Adapter:    adapter,
		Writer:     writer,
		Catalogs:   catalogs,
		Store:      state.New(adapter, writer, logger),
		Onboarding: onboarding.New(adapter, logger),
		Community:  community.NewBoard(adapter, writer, logger),
		Prefs:      prefs.Prefs{Language: cfg.Language, Theme: cfg.Theme}.WithDefaults(prefs.Defaults()),
	}, nil
}

// Catalog returns the bundled catalog for lang, English when unknown.
func (e *Env) Catalog(lang string) *catalog.Catalog {
	if c, ok := e.Catalogs[prefs.NormalizeLanguage(lang)]; ok {
		return c
	}
	return e.Catalogs[catalog.English]
}

// Close drains pending writes within the configured flush timeout, then
// releases storage and flushes the log.
func (e *Env) Close(ctx context.Context) error {
	flushCtx, cancel := context.WithTimeout(ctx, e.Config.FlushTimeout)
	defer cancel()

	var errs []error
	if err := e.Writer.Close(flushCtx); err != nil {
		e.Logger.Warn("pending writes lost", zap.Error(err))
		errs = append(errs, err)
	}
	stats := e.Writer.Stats()
	e.Logger.Info("session closed",
		zap.Uint64("writes", stats.Written),
		zap.Uint64("failed", stats.Failed),
		zap.Uint64("coalesced", stats.Coalesced),
		zap.Uint64("dropped", stats.Dropped))

	if err := e.Adapter.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}
	logging.Sync(e.Logger)
	return errors.Join(errs...)
}

// Run boots the cocteler TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) (err error) {
	env, err := Open(opts)
	if err != nil {
		return err
	}
	defer func() {
		// ctx may already be cancelled; pending writes still get their timeout.
		if closeErr := env.Close(context.WithoutCancel(ctx)); err == nil {
			err = closeErr
		}
	}()

	env.Load(ctx)

	return ui.Run(ui.Options{
		Context:    ctx,
		Catalogs:   env.Catalogs,
		Store:      env.Store,
		Onboarding: env.Onboarding,
		Community:  env.Community,
		Writer:     env.Writer,
		Prefs:      env.Prefs,
		LogPath:    env.Config.LogFile,
		Logger:     env.Logger,
	})
}
