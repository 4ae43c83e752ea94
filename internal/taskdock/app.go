package taskdock

import (
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/taskdock/taskdock/internal/core/config"
	"github.com/taskdock/taskdock/internal/core/eventbus"
	"github.com/taskdock/taskdock/internal/core/kv"
	"github.com/taskdock/taskdock/internal/host"
	"github.com/taskdock/taskdock/internal/store/jsonfile"
	"github.com/taskdock/taskdock/internal/store/sqlite"
)

// App is the central entry point for all taskdock operations.
// Commands and the TUI consume App instead of cherry-picking raw
// dependencies.
type App struct {
	Orchestrator *Orchestrator
	Repo         *Repository
	Bus          *eventbus.EventBus
	UI           *host.MessageBus

	// Behind a pointer so the pre-allocated App in main can be populated
	// by assignment.
	cfg        *atomic.Pointer[config.Config]
	closeStore func() error
}

// OpenStore opens the configured storage backend and returns the key-value
// interface plus a closer. SQLite owns a database handle; the JSON backend
// has nothing to close.
func OpenStore(cfg *config.Config) (kv.KV, func() error, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		db, err := sqlite.Open(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return sqlite.NewKVStore(db), db.Close, nil
	case config.StorageJSONFile:
		store, err := jsonfile.New(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open jsonfile store: %w", err)
		}
		return store, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}

// NewApp assembles the full mutation stack on top of an open store.
func NewApp(
	cfg *config.Config,
	store kv.KV,
	closeStore func() error,
	prompter host.Prompter,
	workspaces host.Workspaces,
	log zerolog.Logger,
) *App {
	bus := eventbus.New(eventbus.DefaultBuffer)
	ui := host.NewMessageBus()
	repo := NewRepository(store, log)

	app := &App{
		Repo:       repo,
		Bus:        bus,
		UI:         ui,
		cfg:        &atomic.Pointer[config.Config]{},
		closeStore: closeStore,
	}
	app.cfg.Store(cfg)
	app.Orchestrator = NewOrchestrator(repo, app.Config, prompter, ui, workspaces, bus, log)
	return app
}

// Config returns the current configuration. A hot reload swaps the pointer;
// in-flight operations keep the snapshot they started with.
func (a *App) Config() *config.Config {
	return a.cfg.Load()
}

// SetConfig installs a reloaded configuration and announces it on the bus.
func (a *App) SetConfig(cfg *config.Config) {
	a.cfg.Store(cfg)
	a.Bus.PublishConfigReloaded(eventbus.ConfigReloadedPayload{})
}

// Close tears down timers and the storage backend. The event bus stops when
// its Start context is cancelled by the caller.
func (a *App) Close() error {
	a.Orchestrator.Close()
	if a.closeStore != nil {
		return a.closeStore()
	}
	return nil
}
