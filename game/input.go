package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fluidbox/components"
)

// pickPixels is the minimum click tolerance around a particle, in screen pixels.
const pickPixels = 6

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.respawn()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.state.Paused = !g.state.Paused
	}
	if rl.IsKeyPressed(rl.KeyH) {
		g.state.Heatmap = !g.state.Heatmap
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}

	g.handleCameraInput()
	g.handleSelection()
}

// handleSelection forwards clicks outside the controls panel to the inspector.
func (g *Game) handleSelection() {
	mouse := rl.GetMousePosition()
	if g.controls.Contains(mouse) {
		return
	}
	wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
	radius := max(g.sim.Params().ParticleRadius, pickPixels/g.camera.PixelsPerUnit())
	g.inspector.HandleClick(mouse, components.Vec2{X: wx, Y: wy}, g.sim.Particles(), radius)
}

// handleResize propagates new window dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.camera.Resize(w, h)
	g.controls.SetPosition(int32(w)-230, 10)
	g.inspector.Resize(int32(w), int32(h))
}

// handleCameraInput processes pan and zoom. Drags that start on the
// controls panel belong to its sliders.
func (g *Game) handleCameraInput() {
	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonDown(rl.MouseButtonRight) && !g.controls.Contains(mouse) {
		d := rl.GetMouseDelta()
		g.camera.Pan(d.X, d.Y)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
