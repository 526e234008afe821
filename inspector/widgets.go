package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Widget colors
var (
	ColorBarBg   = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarLow  = rl.Color{R: 32, G: 110, B: 214, A: 255}
	ColorBarHigh = rl.Color{R: 214, G: 32, B: 32, A: 255}
	ColorText    = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim = rl.Color{R: 150, G: 150, B: 150, A: 255}
)

// DrawLabel renders a text value.
func DrawLabel(x, y int32, name, value string) int32 {
	rl.DrawText(fmt.Sprintf("%s: %s", name, value), x, y, 16, ColorText)
	return 20
}

// DrawRatioBar renders value/ref as a bar that is half full at ratio 1.
// Below-reference values fade toward ColorBarLow, above toward ColorBarHigh.
func DrawRatioBar(x, y int32, name string, value, ref float32) int32 {
	barWidth := int32(120)
	barHeight := int32(14)

	rl.DrawText(name, x, y, 14, ColorTextDim)

	barX := x + 80
	rl.DrawRectangle(barX, y, barWidth, barHeight, ColorBarBg)

	fill := barFill(value, ref)
	fillColor := lerpColor(ColorBarLow, ColorBarHigh, fill)
	rl.DrawRectangle(barX, y, int32(float32(barWidth)*fill), barHeight, fillColor)
	rl.DrawLine(barX+barWidth/2, y-2, barX+barWidth/2, y+barHeight+2, ColorText)

	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barWidth+5, y, 14, ColorTextDim)
	return 18
}

// barFill maps value/ref onto [0, 1] with ratio 1 at the midpoint.
func barFill(value, ref float32) float32 {
	if ref <= 0 {
		return 0
	}
	return min(max(value/ref/2, 0), 1)
}

// lerpColor interpolates between two colors.
func lerpColor(a, b rl.Color, t float32) rl.Color {
	return rl.Color{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: 255,
	}
}
