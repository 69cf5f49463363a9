package app

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cocteler/cocteler/internal/prefs"
)

const defaultLoadTimeout = 5 * time.Second

// Load reads every persisted component concurrently and returns once all
// reads have finished. Read failures are logged; the affected component
// keeps its defaults.
func (e *Env) Load(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, defaultLoadTimeout)
	defer cancel()

	started := time.Now()
	defaults := e.Prefs

	var g errgroup.Group
	g.Go(func() error {
		e.Store.Initialize(ctx)
		return nil
	})
	g.Go(func() error {
		if err := e.Onboarding.Load(ctx); err != nil {
			e.Logger.Warn("onboarding load failed, using defaults", zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		if err := e.Community.Load(ctx); err != nil {
			e.Logger.Warn("community load failed, showing examples", zap.Error(err))
		}
		return nil
	})

	var loaded prefs.Prefs
	g.Go(func() error {
		p, err := prefs.Load(ctx, e.Adapter, defaults)
		if err != nil {
			e.Logger.Warn("display preferences load failed", zap.Error(err))
		}
		loaded = p
		return nil
	})
	_ = g.Wait()

	e.Prefs = loaded
	e.Logger.Debug("state loaded",
		zap.Duration("elapsed", time.Since(started)),
		zap.String("language", loaded.Language),
		zap.Bool("onboarded", e.Onboarding.Completed()))
}
