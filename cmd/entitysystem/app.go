package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/exploringlines/entitysystem/internal/config"
	"github.com/exploringlines/entitysystem/internal/core/ecs"
	"github.com/exploringlines/entitysystem/internal/core/event"
	coresys "github.com/exploringlines/entitysystem/internal/core/system"
	"github.com/exploringlines/entitysystem/internal/data"
	"github.com/exploringlines/entitysystem/internal/scripting"
	"github.com/exploringlines/entitysystem/internal/system"
)

type app struct {
	cfg       *config.Config
	log       *zap.Logger
	bus       *event.Bus
	reg       *ecs.Registry
	catalog   *data.Catalog
	templates *data.TemplateTable
	runner    *coresys.Runner
	scripts   *scripting.Engine
	watcher   *scripting.Watcher
	ticks     int
}

func newApp(cfg *config.Config, log *zap.Logger) (*app, error) {
	bus := event.NewBus()
	a := &app{
		cfg:     cfg,
		log:     log,
		bus:     bus,
		reg:     ecs.NewRegistry(ecs.WithLogger(log), ecs.WithObserver(event.NewBridge(bus))),
		catalog: data.NewDefaultCatalog(),
		runner:  coresys.NewRunner(),
	}

	event.Subscribe(bus, func(ev event.EntityCreated) {
		log.Debug("entity created", zap.Stringer("entity", ev.Entity))
	})
	event.Subscribe(bus, func(ev event.EntityRemoved) {
		log.Debug("entity removed", zap.Stringer("entity", ev.Entity))
	})

	if cfg.Data.Templates != "" {
		t, err := data.LoadTemplateTable(cfg.Data.Templates, a.catalog)
		if err != nil {
			return nil, fmt.Errorf("load templates: %w", err)
		}
		a.templates = t
	}
	if err := a.spawnConfigured(); err != nil {
		return nil, err
	}

	a.runner.Register(system.NewEventDispatchSystem(bus))
	a.runner.Register(system.NewMovementSystem(a.reg))
	a.runner.Register(system.NewRegenSystem(a.reg))
	a.runner.Register(system.NewFlushSystem(a.reg))

	if cfg.Scripting.Enabled {
		var opts []scripting.Option
		if a.templates != nil {
			opts = append(opts, scripting.WithTemplates(a.templates))
		}
		eng, err := scripting.NewEngine(cfg.Scripting.Dir, a.reg, a.catalog, log, opts...)
		if err != nil {
			return nil, fmt.Errorf("lua engine: %w", err)
		}
		a.scripts = eng
		a.runner.Register(eng)

		if cfg.Scripting.HotReload {
			w, err := scripting.NewWatcher(cfg.Scripting.Dir, log)
			if err != nil {
				eng.Close()
				return nil, fmt.Errorf("script watcher: %w", err)
			}
			a.watcher = w
		}
	}
	return a, nil
}

func (a *app) spawnConfigured() error {
	if len(a.cfg.Data.Spawn) > 0 && a.templates == nil {
		return fmt.Errorf("spawn entries need data.templates")
	}
	for _, sp := range a.cfg.Data.Spawn {
		for i := 0; i < sp.Count; i++ {
			if _, err := a.templates.Spawn(a.reg, sp.Template, sp.Name); err != nil {
				return fmt.Errorf("spawn %q: %w", sp.Template, err)
			}
		}
	}
	return nil
}

func (a *app) templateCount() int {
	if a.templates == nil {
		return 0
	}
	return a.templates.Count()
}

// run drives the tick loop until ctx is cancelled or max_ticks is reached,
// then shuts every subsystem down.
func (a *app) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.runner.Shutdown()

	g, ctx := errgroup.WithContext(ctx)
	var reloads <-chan string
	if a.watcher != nil {
		reloads = a.watcher.Reloads()
		g.Go(func() error { return a.watcher.Run(ctx) })
	}
	g.Go(func() error {
		// loop exit stops the watcher too
		defer cancel()
		return a.loop(ctx, reloads)
	})
	return g.Wait()
}

func (a *app) loop(ctx context.Context, reloads <-chan string) error {
	rate := a.cfg.Loop.TickRate
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown requested", zap.Int("ticks", a.ticks))
			return nil
		case path := <-reloads:
			if err := a.scripts.Reload(); err != nil {
				a.log.Error("script reload failed", zap.String("file", path), zap.Error(err))
			}
		case <-ticker.C:
			a.runner.Tick(rate)
			a.ticks++
			if limit := a.cfg.Loop.MaxTicks; limit > 0 && a.ticks >= limit {
				a.log.Info("max ticks reached", zap.Int("ticks", a.ticks))
				return nil
			}
		}
	}
}
