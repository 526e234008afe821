// Package inspector shows the state of one selected particle.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fluidbox/components"
)

// Panel dimensions
const (
	PanelWidth   = 260
	PanelHeight  = 210
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSelection   = rl.Color{R: 255, G: 220, B: 80, A: 255}
)

// Inspector tracks the selected particle index. Indices stay valid across
// respawns because the particle set never changes size.
type Inspector struct {
	selected    int
	hasSelected bool
	panelX      int32
	panelY      int32
}

// NewInspector places the panel in the bottom-left corner.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	ins := &Inspector{}
	ins.Resize(screenWidth, screenHeight)
	return ins
}

// Resize keeps the panel anchored after a window resize.
func (ins *Inspector) Resize(screenWidth, screenHeight int32) {
	ins.panelX = 10
	ins.panelY = screenHeight - PanelHeight - 40
}

// Contains reports whether a screen point is over the open panel.
func (ins *Inspector) Contains(x, y float32) bool {
	if !ins.hasSelected {
		return false
	}
	return int32(x) >= ins.panelX && int32(x) <= ins.panelX+PanelWidth &&
		int32(y) >= ins.panelY && int32(y) <= ins.panelY+PanelHeight
}

// HandleClick selects the particle under a left click. mouse is in screen
// space, world is the same point in physical units. Clicking empty space
// clears the selection.
func (ins *Inspector) HandleClick(mouse rl.Vector2, world components.Vec2, ps []components.Particle, pickRadius float32) {
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if int32(mouse.X) >= closeX && int32(mouse.X) <= closeX+20 &&
			int32(mouse.Y) >= closeY && int32(mouse.Y) <= closeY+20 {
			ins.Deselect()
			return
		}
		if ins.Contains(mouse.X, mouse.Y) {
			return
		}
	}

	ins.selected, ins.hasSelected = Pick(ps, world, pickRadius)
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the selected particle index.
func (ins *Inspector) Selected() (int, bool) {
	return ins.selected, ins.hasSelected
}

// Draw renders the panel for the selected particle.
func (ins *Inspector) Draw(ps []components.Particle, targetDensity float32) {
	if !ins.hasSelected {
		return
	}
	if ins.selected >= len(ps) {
		ins.Deselect()
		return
	}
	p := &ps[ins.selected]

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, PanelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: PanelHeight},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(fmt.Sprintf("PARTICLE #%d", ins.selected), ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding

	y += DrawLabel(x, y, "Position", fmt.Sprintf("(%.3f, %.3f)", p.Position.X, p.Position.Y))
	y += DrawLabel(x, y, "Velocity", fmt.Sprintf("(%.3f, %.3f)", p.Velocity.X, p.Velocity.Y))
	y += DrawLabel(x, y, "Speed", fmt.Sprintf("%.4f", p.Velocity.Length()))
	y += DrawLabel(x, y, "Accel", fmt.Sprintf("(%.2f, %.2f)", p.Acceleration.X, p.Acceleration.Y))
	y += DrawLabel(x, y, "Pressure", fmt.Sprintf("%.3f", p.Pressure))
	y += 4
	y += DrawRatioBar(x, y, "Density", p.Density, targetDensity)

	state := "first step"
	if p.Integrating() {
		state = "integrating"
	}
	DrawLabel(x, y+4, "State", state)
}

// DrawSelection rings the selected particle at the given screen position.
func (ins *Inspector) DrawSelection(screen rl.Vector2, radius float32) {
	if !ins.hasSelected {
		return
	}
	rl.DrawCircleLines(int32(screen.X), int32(screen.Y), radius+4, ColorSelection)
}
