// Package renderer computes the colours of the fluid view: particle tints by
// speed and the density heat-map behind them. It has no graphics dependency;
// the game and terminal front ends upload or print the results.
package renderer

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	slowParticle = rgb8(32, 166, 214)
	fastParticle = rgb8(214, 32, 32)

	lowDensity    = rgb8(0, 0, 255)
	targetDensity = rgb8(255, 255, 255)
	highDensity   = rgb8(255, 0, 0)
)

// maxSigmoidInput scales density errors into the visible part of the curve.
const maxSigmoidInput = 3.0

func rgb8(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// sigmoid maps [0, inf) onto [0, 1) with sigmoid(0) = 0.
func sigmoid(x float64) float64 {
	return 2/(1+math.Exp(-x)) - 1
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// VelocityPalette tints particles from slow blue to fast red.
type VelocityPalette struct {
	factor float64
}

// NewVelocityPalette scales the tint so that a particle at maxInitialSpeed
// sits well into the fast end.
func NewVelocityPalette(maxInitialSpeed float32) VelocityPalette {
	if maxInitialSpeed <= 0 {
		return VelocityPalette{factor: 1}
	}
	return VelocityPalette{factor: 2 / float64(maxInitialSpeed)}
}

// ForSpeed returns the tint for a particle moving at speed.
func (p VelocityPalette) ForSpeed(speed float32) color.RGBA {
	t := sigmoid(math.Abs(float64(speed)) * p.factor)
	return toRGBA(slowParticle.BlendRgb(fastParticle, t))
}

// DensityPalette colours sampled densities relative to the target: white
// within the margin, blending to blue below it and red above it.
type DensityPalette struct {
	lower      float64 // below this is low density
	upper      float64 // above this is high density
	upperRange float64
}

// NewDensityPalette builds the heat-map palette. The expected density range
// is [0, span * selfDensity]; margin is the fraction of each side coloured as
// on-target.
func NewDensityPalette(target, selfDensity, margin, span float32) DensityPalette {
	t := float64(target)
	top := float64(span) * float64(selfDensity)
	upper := t + (top-t)*float64(margin)
	return DensityPalette{
		lower:      t * (1 - float64(margin)),
		upper:      upper,
		upperRange: top - upper,
	}
}

// ForDensity returns the heat-map colour for density.
func (p DensityPalette) ForDensity(density float32) color.RGBA {
	d := float64(density)
	switch {
	case d < p.lower:
		e := (p.lower - d) * maxSigmoidInput / p.lower
		return toRGBA(targetDensity.BlendRgb(lowDensity, sigmoid(e)))
	case d < p.upper || p.upperRange <= 0:
		return toRGBA(targetDensity)
	default:
		e := (d - p.upper) * maxSigmoidInput / p.upperRange
		return toRGBA(targetDensity.BlendRgb(highDensity, sigmoid(e)))
	}
}
