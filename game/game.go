// Package game is the raylib front end: it steps a sim.Simulation once per
// frame and draws the box, the particles, the density heat-map and the UI.
package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fluidbox/camera"
	"github.com/pthm-cable/fluidbox/components"
	"github.com/pthm-cable/fluidbox/config"
	"github.com/pthm-cable/fluidbox/inspector"
	"github.com/pthm-cable/fluidbox/renderer"
	"github.com/pthm-cable/fluidbox/sim"
	"github.com/pthm-cable/fluidbox/ui"
)

const controlsLegend = "Space: respawn | P: pause | H: heat-map | Tab: panel | Wheel: zoom | Home: reset view | Click: inspect | F11: fullscreen"

// Options configures a Game.
type Options struct {
	sim.Options
}

// Game holds the window state around a running simulation.
type Game struct {
	sim *sim.Simulation
	cfg *config.Config

	camera    *camera.Camera
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	inspector *inspector.Inspector
	state     ui.ControlsState

	velocity renderer.VelocityPalette
	heatmap  *heatmapLayer

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates the game. The raylib window must already be open.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	s, err := sim.New(cfg, opts.Options)
	if err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}

	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	p := s.Params()

	g := &Game{
		sim:          s,
		cfg:          cfg,
		camera:       camera.New(w, h, float32(cfg.Screen.Scale)),
		hud:          ui.NewHUD(float32(cfg.Render.HUDInterval)),
		controls:     ui.NewControlsPanel(int32(w)-230, 10, 220),
		inspector:    inspector.NewInspector(int32(w), int32(h)),
		velocity:     renderer.NewVelocityPalette(s.MaxInitialSpeed()),
		screenWidth:  w,
		screenHeight: h,
		state: ui.ControlsState{
			Gravity:   p.Gravity,
			Viscosity: p.Viscosity,
			Heatmap:   cfg.Render.Heatmap,
		},
	}
	g.heatmap = newHeatmapLayer(cfg, s.Solver().SelfDensity())

	slog.Info("game started",
		"particles", len(s.Particles()),
		"screen", fmt.Sprintf("%dx%d", int(w), int(h)),
		"heatmap", fmt.Sprintf("%dx%d", cfg.Derived.HeatmapW, cfg.Derived.HeatmapH),
	)
	return g, nil
}

// Update processes input and advances the simulation by the frame time.
func (g *Game) Update() {
	g.handleInput()

	g.sim.BeginFrame()
	if !g.state.Paused {
		g.sim.Step(rl.GetFrameTime())
	}

	stats := g.sim.LastStats()
	g.hud.Update(rl.GetFrameTime(), ui.HUDData{
		FPS:       rl.GetFPS(),
		AverageKE: stats.AverageKE,
		Damping:   stats.Damping,
		Particles: len(g.sim.Particles()),
		Tick:      g.sim.Tick(),
		SimTime:   g.sim.Elapsed(),
		Kernel:    g.sim.Params().Kernel.String(),
		Paused:    g.state.Paused,
	})
}

// respawn applies pending control edits and scatters the particles.
func (g *Game) respawn() {
	p := g.sim.Params()
	if p.Gravity == g.state.Gravity && p.Viscosity == g.state.Viscosity {
		g.sim.Respawn()
		return
	}
	p.Gravity = g.state.Gravity
	p.Viscosity = g.state.Viscosity
	if err := g.sim.Rebuild(p); err != nil {
		slog.Error("failed to apply controls", "error", err)
		return
	}
	g.heatmap.setSelfDensity(g.cfg, g.sim.Solver().SelfDensity())
}

// Particles exposes the live particle slice.
func (g *Game) Particles() []components.Particle {
	return g.sim.Particles()
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.sim.Tick()
}

// Unload frees GPU resources and closes the simulation.
func (g *Game) Unload() {
	g.heatmap.unload()
	if err := g.sim.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
