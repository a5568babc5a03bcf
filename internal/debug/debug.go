package debug

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"polyline-engine/internal/graphics"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh overlay text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug draws optional overlays: an FPS counter (top-right) and ribbon mesh
// statistics (top-left). All overlays are off by default.
type Debug struct {
	ShowFPS   bool
	ShowStats bool
	// Stats, when set, is polled for the statistics overlay.
	Stats func() graphics.Stats

	frameCount  uint32
	lastFpsText string
	statLines   []string
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the FPS counter is drawn.
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowStats sets whether mesh statistics are drawn.
func (d *Debug) SetShowStats(show bool) {
	d.ShowStats = show
}

// Invalidate forces the overlay text to refresh on the next Draw (e.g. after a rebuild).
func (d *Debug) Invalidate() {
	d.lastFpsText = ""
	d.statLines = nil
}

// statText formats the statistics overlay.
func statText(st graphics.Stats) []string {
	material := st.Material
	if material == "" {
		material = "(unshaded)"
	}
	return []string{
		fmt.Sprintf("vertices: %d", st.Vertices),
		fmt.Sprintf("triangles: %d", st.Triangles),
		"material: " + material,
	}
}

// Draw renders any enabled overlays. Call after the scene in the draw loop.
func (d *Debug) Draw() {
	d.frameCount++
	update := d.frameCount%updateInterval == 0

	if d.ShowFPS {
		if update || d.lastFpsText == "" {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		w := rl.MeasureText(d.lastFpsText, fontSize)
		rl.DrawText(d.lastFpsText, int32(rl.GetScreenWidth())-w-padding, padding, fontSize, rl.Green)
	}

	if d.ShowStats && d.Stats != nil {
		if update || d.statLines == nil {
			d.statLines = statText(d.Stats())
		}
		y := int32(padding)
		for _, line := range d.statLines {
			rl.DrawText(line, padding, y, fontSize, rl.RayWhite)
			y += lineHeight
		}
	}
}
