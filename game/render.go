package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fluidbox/telemetry"
)

var (
	backgroundColor = rl.Color{R: 15, G: 18, B: 24, A: 255}
	boxColor        = rl.Color{R: 200, G: 200, B: 200, A: 255}
)

// Draw renders the frame and closes the perf frame opened in Update.
func (g *Game) Draw() {
	g.sim.StartPhase(telemetry.PhaseRender)
	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	box := g.boxRect()
	if g.state.Heatmap {
		g.heatmap.update(g.sim.DensityAt)
		g.heatmap.draw(box)
	}
	rl.DrawRectangleLinesEx(box, 2, boxColor)

	g.drawParticles()
	g.drawUI()

	rl.EndDrawing()
	g.sim.EndFrame()
}

// boxRect returns the box outline in screen space.
func (g *Game) boxRect() rl.Rectangle {
	half := g.sim.Params().HalfExtents
	x0, y0 := g.camera.WorldToScreen(-half.X, half.Y)
	x1, y1 := g.camera.WorldToScreen(half.X, -half.Y)
	return rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

func (g *Game) drawParticles() {
	radius := g.camera.WorldLength(g.sim.Params().ParticleRadius)
	ps := g.sim.Particles()
	for i := range ps {
		p := &ps[i]
		if !g.camera.IsVisible(p.Position.X, p.Position.Y, radius) {
			continue
		}
		sx, sy := g.camera.WorldToScreen(p.Position.X, p.Position.Y)
		c := g.velocity.ForSpeed(p.Velocity.Length())
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius, rl.Color{R: c.R, G: c.G, B: c.B, A: c.A})
	}

	if i, ok := g.inspector.Selected(); ok && i < len(ps) {
		sx, sy := g.camera.WorldToScreen(ps[i].Position.X, ps[i].Position.Y)
		g.inspector.DrawSelection(rl.Vector2{X: sx, Y: sy}, radius)
	}
}

func (g *Game) drawUI() {
	g.hud.Draw()
	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)
	g.inspector.Draw(g.sim.Particles(), g.sim.Params().TargetDensity)

	action := g.controls.Draw(&g.state)
	if action.TogglePause {
		g.state.Paused = !g.state.Paused
	}
	if action.Respawn {
		g.respawn()
	}
}
