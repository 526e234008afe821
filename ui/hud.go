package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds the values shown in the heads-up display.
type HUDData struct {
	FPS       int32
	AverageKE float32
	Damping   float32
	Particles int
	Tick      int32
	SimTime   float32
	Kernel    string
	Paused    bool
}

// HUD renders the main heads-up display. Displayed values are refreshed at a
// fixed interval so they stay readable.
type HUD struct {
	renderer *Renderer
	interval float32
	elapsed  float32
	shown    HUDData
	primed   bool
}

// NewHUD creates a HUD refreshing every interval seconds.
func NewHUD(interval float32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		interval: interval,
	}
}

// Update advances the refresh timer by dt and latches data when it elapses.
// Paused state is always current.
func (h *HUD) Update(dt float32, data HUDData) {
	h.elapsed += dt
	if !h.primed || h.elapsed >= h.interval {
		h.shown = data
		h.elapsed = 0
		h.primed = true
	}
	h.shown.Paused = data.Paused
}

// Draw renders the HUD panel in the top-left corner.
func (h *HUD) Draw() {
	r := h.renderer
	const width = int32(250)
	x, y := int32(10), int32(10)
	height := r.Theme.LineHeight*6 + r.Theme.Padding*2 + 4
	r.DrawPanel(x, y, width, height)

	d := h.shown
	x += r.Theme.Padding
	y += r.Theme.Padding
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", d.FPS))
	y = r.DrawLabelValue(x, y, "Avg KE", fmt.Sprintf("%.6f", d.AverageKE))
	y = r.DrawLabelValue(x, y, "Particles", fmt.Sprintf("%d", d.Particles))
	y = r.DrawLabelValue(x, y, "Time", fmt.Sprintf("%.1fs (tick %d)", d.SimTime, d.Tick))
	y = r.DrawLabelValue(x, y, "Kernel", d.Kernel)
	y = r.DrawBar(x, y, "Damping", d.Damping, width-2*r.Theme.Padding)

	if d.Paused {
		rl.DrawText("PAUSED", x, y+4, 16, rl.Yellow)
	}
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
