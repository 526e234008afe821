package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fluidbox/components"
	"github.com/pthm-cable/fluidbox/config"
	"github.com/pthm-cable/fluidbox/renderer"
)

// heatmapLayer owns the density image and its GPU texture.
type heatmapLayer struct {
	image *renderer.HeatMap
	half  components.Vec2

	tex         rl.Texture2D
	initialized bool
}

func newHeatmapLayer(cfg *config.Config, selfDensity float32) *heatmapLayer {
	l := &heatmapLayer{
		half: components.Vec2{X: float32(cfg.Box.HalfWidth), Y: float32(cfg.Box.HalfHeight)},
	}
	l.setSelfDensity(cfg, selfDensity)
	return l
}

// setSelfDensity rebuilds the palette, which depends on the kernel.
func (l *heatmapLayer) setSelfDensity(cfg *config.Config, selfDensity float32) {
	palette := renderer.NewDensityPalette(
		float32(cfg.Physics.TargetDensity),
		selfDensity,
		float32(cfg.Render.HeatmapMargin),
		float32(cfg.Render.HeatmapSpan),
	)
	l.image = renderer.NewHeatMap(cfg.Derived.HeatmapW, cfg.Derived.HeatmapH, l.half, palette)
}

// init creates the texture (must be called after the raylib window exists).
func (l *heatmapLayer) init() {
	if l.initialized {
		return
	}
	img := rl.GenImageColor(l.image.W, l.image.H, rl.Black)
	l.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(l.tex, rl.FilterPoint)
	rl.UnloadImage(img)
	l.initialized = true
}

// update resamples the density field and uploads it.
func (l *heatmapLayer) update(sample renderer.DensitySampler) {
	l.init()
	l.image.Update(sample)
	rl.UpdateTexture(l.tex, l.image.Pixels)
}

// draw stretches the texture over the box rectangle in screen space.
func (l *heatmapLayer) draw(dst rl.Rectangle) {
	if !l.initialized {
		return
	}
	src := rl.Rectangle{Width: float32(l.image.W), Height: float32(l.image.H)}
	rl.DrawTexturePro(l.tex, src, dst, rl.Vector2{}, 0, rl.White)
}

func (l *heatmapLayer) unload() {
	if !l.initialized {
		return
	}
	rl.UnloadTexture(l.tex)
	l.initialized = false
}
