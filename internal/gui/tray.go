package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const trayTitle = "Sticky Notes"

// installTrayMenu puts "New note" and "Quit" in the system tray. Drivers
// without tray support only get the per-note menus.
func (c *Controller) installTrayMenu() {
	desk, ok := c.app.(desktop.App)
	if !ok {
		c.logger.Debug("Controller", "system tray unavailable", nil)
		return
	}

	quit := fyne.NewMenuItem("Quit", c.Quit)
	quit.IsQuit = true
	desk.SetSystemTrayMenu(fyne.NewMenu(trayTitle,
		fyne.NewMenuItem("New note", c.NewNote),
		fyne.NewMenuItemSeparator(),
		quit,
	))
}
