package renderer

import (
	"image/color"
	"runtime"
	"sync"

	"github.com/pthm-cable/fluidbox/components"
)

// DensitySampler probes the density field at a physical point. It must be
// safe for concurrent use.
type DensitySampler func(p components.Vec2) float32

// HeatMap is a width x height image of the density field covering the box.
// Row 0 is the top of the box.
type HeatMap struct {
	W, H    int
	Pixels  []color.RGBA
	half    components.Vec2
	cell    components.Vec2
	palette DensityPalette
}

// NewHeatMap allocates a heat-map spanning [-half, half] on both axes.
func NewHeatMap(w, h int, half components.Vec2, palette DensityPalette) *HeatMap {
	w, h = max(w, 1), max(h, 1)
	return &HeatMap{
		W:      w,
		H:      h,
		Pixels: make([]color.RGBA, w*h),
		half:   half,
		cell: components.Vec2{
			X: 2 * half.X / float32(w),
			Y: 2 * half.Y / float32(h),
		},
		palette: palette,
	}
}

// SamplePoint returns the physical centre of pixel (i, j).
func (m *HeatMap) SamplePoint(i, j int) components.Vec2 {
	return components.Vec2{
		X: -m.half.X + (float32(i)+0.5)*m.cell.X,
		Y: m.half.Y - (float32(j)+0.5)*m.cell.Y,
	}
}

// Update resamples every pixel. Rows are split across GOMAXPROCS goroutines.
func (m *HeatMap) Update(sample DensitySampler) {
	workers := min(runtime.GOMAXPROCS(0), m.H)
	rowsPer := (m.H + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		j0 := w * rowsPer
		j1 := min(j0+rowsPer, m.H)
		if j0 >= j1 {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.fillRows(sample, j0, j1)
		}()
	}
	wg.Wait()
}

func (m *HeatMap) fillRows(sample DensitySampler, j0, j1 int) {
	for j := j0; j < j1; j++ {
		row := m.Pixels[j*m.W : (j+1)*m.W]
		for i := range row {
			row[i] = m.palette.ForDensity(sample(m.SamplePoint(i, j)))
		}
	}
}
