package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	cataloginadapter "niamverse/internal/modules/catalog/adapter/in"
	catalogoutadapter "niamverse/internal/modules/catalog/adapter/out"
	catalogdto "niamverse/internal/modules/catalog/dto"
	catalogout "niamverse/internal/modules/catalog/port/out"
	catalogservice "niamverse/internal/modules/catalog/service"
	catalogusecase "niamverse/internal/modules/catalog/usecase"
	sessioninadapter "niamverse/internal/modules/session/adapter/in"
	sessionoutadapter "niamverse/internal/modules/session/adapter/out"
	sessionout "niamverse/internal/modules/session/port/out"
	sessionservice "niamverse/internal/modules/session/service"
	sessionusecase "niamverse/internal/modules/session/usecase"
	userstateinadapter "niamverse/internal/modules/userstate/adapter/in"
	userstateoutadapter "niamverse/internal/modules/userstate/adapter/out"
	userstateout "niamverse/internal/modules/userstate/port/out"
	userstateservice "niamverse/internal/modules/userstate/service"
	userstateusecase "niamverse/internal/modules/userstate/usecase"
	"niamverse/internal/platform/clock"
	"niamverse/internal/platform/config"
	"niamverse/internal/platform/id"
	"niamverse/internal/platform/logging"
	uiapp "niamverse/internal/ui/app"
)

type App struct {
	Config     config.Config
	Logger     *zap.Logger
	CatalogCLI cataloginadapter.CLIHandler
	StateCLI   userstateinadapter.CLIHandler
	SessionCLI sessioninadapter.CLIHandler
	SessionTUI sessioninadapter.TUIHandler

	closers []func() error
}

// Option adjusts how New wires the application.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	store    userstateout.KVStore
	launcher sessionout.Launcher
}

// WithLogger replaces the file logger built from the config.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithStore replaces the SQLite-backed user state store.
func WithStore(store userstateout.KVStore) Option {
	return func(o *options) { o.store = store }
}

func WithLauncher(launcher sessionout.Launcher) Option {
	return func(o *options) { o.launcher = launcher }
}

// New wires every module and loads the catalog once. A catalog that cannot be
// fetched or parsed leaves the app running with an empty list.
func New(cfg config.Config, opts ...Option) (*App, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	app := &App{Config: cfg}

	logger := o.logger
	if logger == nil {
		fileLogger, closeLog, err := logging.New(cfg.LogPath, cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("new logger: %w", err)
		}
		logger = fileLogger
		app.closers = append(app.closers, closeLog)
	}
	app.Logger = logger

	store := o.store
	if store == nil {
		sqliteStore, err := userstateoutadapter.NewSQLiteKVStore(cfg.DBPath)
		if err != nil {
			// State still works for this run; it just won't survive a restart.
			logger.Warn("user state store unavailable, using memory", zap.String("db", cfg.DBPath), zap.Error(err))
			store = userstateoutadapter.NewMemoryKVStore()
		} else {
			store = sqliteStore
			app.closers = append(app.closers, sqliteStore.Close)
		}
	}
	stateUC := userstateusecase.NewInteractor(userstateservice.NewStateService(store, logger.Named("userstate")))

	source := catalogoutadapter.NewSource(cfg.CatalogSource)
	catalogSvc := catalogservice.NewCatalogService(source, catalogoutadapter.NewSchemaDecoder(), logger.Named("catalog"))
	catalogUC := catalogusecase.NewInteractor(catalogSvc, stateUC, newWatcher(cfg, source, logger))
	if _, err := catalogUC.Load(context.Background()); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	launcher := o.launcher
	if launcher == nil {
		launcher = defaultLauncher()
	}
	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(
			clock.SystemClock{},
			id.UUID{},
			sessionoutadapter.NewLogRatingSink(logger),
			launcher,
			logger.Named("session"),
		),
		catalogUC,
		stateUC,
	)

	app.CatalogCLI = cataloginadapter.NewCLIHandler(catalogUC)
	app.StateCLI = userstateinadapter.NewCLIHandler(stateUC)
	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC)
	app.SessionTUI = sessioninadapter.NewTUIHandler(sessionUC)
	return app, nil
}

// Close releases the store and flushes the log.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RunTUI runs the terminal UI until the user quits. Catalog changes on disk are
// pushed into the running program.
func RunTUI(ctx context.Context, app *App) error {
	state, err := app.StateCLI.Snapshot(ctx)
	if err != nil {
		return err
	}
	model := uiapp.NewModel(app.CatalogCLI, app.SessionTUI, app.StateCLI, state.Theme)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	stop, err := app.CatalogCLI.Watch(ctx, func(out catalogdto.LoadOutput) {
		program.Send(uiapp.CatalogReloadedMsg{Out: out})
	})
	if err != nil {
		app.Logger.Warn("catalog watch disabled", zap.Error(err))
	} else {
		defer stop()
	}

	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func newWatcher(cfg config.Config, source catalogout.Source, logger *zap.Logger) catalogout.Watcher {
	if !cfg.Watch {
		return nil
	}
	file, ok := source.(*catalogoutadapter.FileSource)
	if !ok {
		return nil
	}
	w, err := catalogoutadapter.NewFileWatcher(file.Location(), 0, logger.Named("watcher"))
	if err != nil {
		logger.Warn("catalog watcher unavailable", zap.String("path", file.Location()), zap.Error(err))
		return nil
	}
	return w
}

// defaultLauncher falls back to recording targets when there is no desktop to
// open them on.
func defaultLauncher() sessionout.Launcher {
	if runtime.GOOS == "linux" && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return sessionoutadapter.NewNoopLauncher()
	}
	return sessionoutadapter.NewOSLauncher()
}
