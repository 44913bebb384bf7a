package app

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"stickynotes/internal/board"
	"stickynotes/internal/gui"
	"stickynotes/internal/logger"
	"stickynotes/internal/notes"
	"stickynotes/internal/shutdown"
)

const (
	AppName    = "Sticky Notes"
	AppID      = "io.github.stickynotes"
	AppVersion = "1.0.0"
)

type Application struct {
	fyneApp    fyne.App
	logger     logger.Logger
	store      *notes.Store
	board      *board.Board
	controller *gui.Controller
	watcher    *notes.Watcher
	shutdown   *shutdown.Manager
	lifecycle  *Lifecycle
	opts       Options

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApplication loads the configuration and builds the GUI. A configuration
// that cannot be read is returned as an error before any window exists.
func NewApplication(opts Options, log logger.Logger) (*Application, error) {
	if log == nil {
		log = opts.NewLogger()
	}

	store := notes.NewStore(opts.ConfigPath, log)
	cfg, err := store.Load()
	if err != nil {
		return nil, err
	}

	return newApplication(fyneapp.NewWithID(AppID), store, cfg, opts, log)
}

func newApplication(fyneApp fyne.App, store *notes.Store, cfg *notes.Config, opts Options, log logger.Logger) (*Application, error) {
	ctx, cancel := context.WithCancel(context.Background())

	b := board.New(cfg, store, log)
	controller := gui.NewController(fyneApp, b, log)
	shutdownMgr := shutdown.NewManager(log)

	a := &Application{
		fyneApp:    fyneApp,
		logger:     log,
		store:      store,
		board:      b,
		controller: controller,
		shutdown:   shutdownMgr,
		opts:       opts,
		ctx:        ctx,
		cancel:     cancel,
	}

	if opts.Watch {
		watcher, err := notes.NewWatcher(store, log)
		if err != nil {
			// The app works without live reload.
			log.Warning("Application", "configuration watcher disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			a.watcher = watcher
		}
	}

	a.lifecycle = NewLifecycle(fyneApp, controller, shutdownMgr, cancel, log)
	if err := a.setupHandlers(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to set up handlers: %w", err)
	}

	log.Info("Application", "initialization complete", map[string]interface{}{
		"version": AppVersion,
		"config":  store.Path(),
		"notes":   len(cfg.Notes),
		"watch":   a.watcher != nil,
	})
	return a, nil
}

// Run shows the notes and blocks in the GUI event loop until the app quits.
func (a *Application) Run() error {
	a.controller.Start()

	if a.watcher != nil {
		a.watcher.Start(a.ctx, a.handleExternalChange)
	}
	a.shutdown.Listen()

	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	// Covers quits that bypass the controller, e.g. the OS ending the session.
	a.lifecycle.Shutdown()
	return nil
}

// Shutdown performs the final save and quits the event loop.
func (a *Application) Shutdown() {
	a.lifecycle.Shutdown()
}
