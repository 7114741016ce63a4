package textpaint

// Decoration that paints on a viewer widget, driven by a PaintManager.
type Painter interface {
	Paint(reason Reason)
	// Stops painting. If redraw is true the areas painted so far are redrawn without the decoration.
	Deactivate(redraw bool)
	Dispose()
	SetPositionManager(pm *PositionManager)
}
