package app

import (
	"context"

	"fyne.io/fyne/v2"

	"stickynotes/internal/gui"
	"stickynotes/internal/logger"
	"stickynotes/internal/shutdown"
)

// Lifecycle runs the shutdown sequence exactly once, whichever path asks for
// it first: a note menu, the last note going away, a signal, or the event
// loop stopping.
type Lifecycle struct {
	fyneApp     fyne.App
	controller  *gui.Controller
	shutdownMgr *shutdown.Manager
	cancel      context.CancelFunc
	logger      logger.Logger
	isShutdown  bool
}

func NewLifecycle(a fyne.App, c *gui.Controller, sm *shutdown.Manager, cancel context.CancelFunc, log logger.Logger) *Lifecycle {
	return &Lifecycle{
		fyneApp:     a,
		controller:  c,
		shutdownMgr: sm,
		cancel:      cancel,
		logger:      log,
	}
}

// Shutdown must be called on the GUI thread.
func (l *Lifecycle) Shutdown() {
	if l.isShutdown {
		return
	}
	l.isShutdown = true
	l.logger.Info("Lifecycle", "shutdown sequence initiated", nil)

	// Final save first, while every window still holds its text.
	l.controller.Shutdown()
	l.logger.Debug("Lifecycle", "controller shutdown completed", nil)

	l.cancel()
	l.shutdownMgr.Shutdown()

	l.fyneApp.Quit()
	l.logger.Info("Lifecycle", "shutdown sequence completed", nil)
}
