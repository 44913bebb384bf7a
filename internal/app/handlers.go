package app

import (
	"fyne.io/fyne/v2"

	"stickynotes/internal/notes"
	"stickynotes/internal/shutdown"
)

func (a *Application) setupHandlers() error {
	a.controller.SetQuitHandler(a.lifecycle.Shutdown)

	a.fyneApp.Lifecycle().SetOnStopped(func() {
		a.logger.Debug("Application", "event loop stopped", nil)
		a.lifecycle.Shutdown()
	})

	// Registered first so it runs last.
	if a.watcher != nil {
		a.shutdown.Register(shutdown.Func(func() {
			if err := a.watcher.Close(); err != nil {
				a.logger.Error("Application", err, map[string]interface{}{"stage": "watcher close"})
			}
		}))
	}
	// A signal arrives off the GUI thread; the quit is handed over to it.
	a.shutdown.Register(shutdown.Func(func() {
		fyne.Do(a.controller.Quit)
	}))

	return nil
}

// handleExternalChange runs on the watcher goroutine.
func (a *Application) handleExternalChange(s notes.Settings) {
	fyne.Do(func() {
		a.controller.ApplyExternal(s)
	})
}
