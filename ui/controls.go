package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is the editable run configuration shown in the panel. Edits
// take effect on the next respawn.
type ControlsState struct {
	Gravity   float32
	Viscosity float32
	Heatmap   bool
	Paused    bool
}

// ControlsAction reports what the user pressed this frame.
type ControlsAction struct {
	Respawn     bool
	TogglePause bool
}

// ControlsPanel renders the right-side controls panel.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool

	MaxGravity   float32
	MaxViscosity float32
}

// NewControlsPanel creates a visible controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer:     NewRenderer(),
		x:            x,
		y:            y,
		width:        width,
		visible:      true,
		MaxGravity:   20,
		MaxViscosity: 1,
	}
}

// SetPosition moves the panel.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x, c.y = x, y
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether the screen point lies on the visible panel.
func (c *ControlsPanel) Contains(p rl.Vector2) bool {
	if !c.visible {
		return false
	}
	return rl.CheckCollisionPointRec(p, c.bounds())
}

func (c *ControlsPanel) bounds() rl.Rectangle {
	return rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: 200}
}

// Draw renders the panel, applying slider and checkbox edits to state.
func (c *ControlsPanel) Draw(state *ControlsState) ControlsAction {
	var action ControlsAction
	if !c.visible {
		return action
	}

	r := c.renderer
	b := c.bounds()
	r.DrawPanel(c.x, c.y, c.width, int32(b.Height))

	pad := float32(r.Theme.Padding)
	x := b.X + pad
	y := b.Y + pad
	inner := b.Width - 2*pad

	rl.DrawText("Controls", int32(x), int32(y), 16, rl.White)
	y += 24

	rl.DrawText(fmt.Sprintf("Gravity %.2f", state.Gravity), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += 16
	state.Gravity = gui.SliderBar(rl.Rectangle{X: x, Y: y, Width: inner, Height: 16}, "", "", state.Gravity, 0, c.MaxGravity)
	y += 24

	rl.DrawText(fmt.Sprintf("Viscosity %.3f", state.Viscosity), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += 16
	state.Viscosity = gui.SliderBar(rl.Rectangle{X: x, Y: y, Width: inner, Height: 16}, "", "", state.Viscosity, 0, c.MaxViscosity)
	y += 26

	state.Heatmap = gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 16, Height: 16}, "Density heat-map", state.Heatmap)
	y += 28

	half := (inner - pad) / 2
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 28}, "Respawn") {
		action.Respawn = true
	}
	if gui.Button(rl.Rectangle{X: x + half + pad, Y: y, Width: half, Height: 28}, toggleText(state.Paused, "Resume", "Pause")) {
		action.TogglePause = true
	}
	return action
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
