package systems

import (
	"fmt"
	"math"

	"github.com/pthm-cable/fluidbox/components"
)

// KernelKind selects a smoothing kernel. The set is closed; every use switches
// over it exhaustively.
type KernelKind uint8

const (
	// Smooth6 is a poly6-style kernel: A(1 - d²/h²)³.
	Smooth6 KernelKind = iota
	// Spiky2 is a sharper kernel: C(1 - d/h)².
	Spiky2
)

func (k KernelKind) String() string {
	switch k {
	case Smooth6:
		return "smooth6"
	case Spiky2:
		return "spiky2"
	default:
		return fmt.Sprintf("KernelKind(%d)", uint8(k))
	}
}

// ParseKernelKind converts a configuration name into a KernelKind.
func ParseKernelKind(s string) (KernelKind, error) {
	switch s {
	case "smooth6":
		return Smooth6, nil
	case "spiky2":
		return Spiky2, nil
	default:
		return 0, fmt.Errorf("unknown kernel %q", s)
	}
}

// Kernel evaluates a smoothing kernel with compact support radius h.
// Normalisation constants are computed once at construction.
type Kernel struct {
	Kind KernelKind

	h2    float32
	invH  float32
	invH2 float32

	valueScale float32 // A for Smooth6, C for Spiky2
	gradScale  float32 // B for Smooth6, D for Spiky2
}

// NewKernel builds a kernel of the given kind for smoothing radius h.
func NewKernel(kind KernelKind, h float32) Kernel {
	h2 := h * h
	k := Kernel{
		Kind:  kind,
		h2:    h2,
		invH:  1 / h,
		invH2: 1 / h2,
	}
	switch kind {
	case Smooth6:
		k.valueScale = 4 / (math.Pi * h2)
		k.gradScale = 24 / (math.Pi * h2 * h2)
	case Spiky2:
		k.valueScale = 6 / (math.Pi * h2)
		k.gradScale = 12 / (math.Pi * h2 * h)
	default:
		panic(fmt.Sprintf("systems: unknown kernel kind %d", kind))
	}
	return k
}

// Influence returns the kernel value for a squared displacement d2.
func (k Kernel) Influence(d2 float32) float32 {
	if d2 > k.h2 {
		return 0
	}
	switch k.Kind {
	case Smooth6:
		v := 1 - d2*k.invH2
		if v <= 0 {
			return 0
		}
		return k.valueScale * v * v * v
	case Spiky2:
		v := 1 - sqrtf(d2)*k.invH
		if v <= 0 {
			return 0
		}
		return k.valueScale * v * v
	default:
		panic(fmt.Sprintf("systems: unknown kernel kind %d", k.Kind))
	}
}

// Gradient returns the kernel gradient for displacement delta. The result
// points along delta, away from the source sample.
//
// Coincident samples have no defined direction; a random unit vector scaled by
// the gradient coefficient is returned instead of dividing by zero.
func (k Kernel) Gradient(delta components.Vec2) components.Vec2 {
	d2 := delta.LengthSquared()
	if d2 > k.h2 {
		return components.Zero
	}
	if sqrtf(d2) < epsilon {
		return randomUnit().Scale(k.gradScale)
	}
	switch k.Kind {
	case Smooth6:
		v := 1 - d2*k.invH2
		if v <= 0 {
			return components.Zero
		}
		return delta.Scale(k.gradScale * v * v)
	case Spiky2:
		f := 1/sqrtf(d2) - k.invH
		if f <= 0 {
			return components.Zero
		}
		return delta.Scale(k.gradScale * f)
	default:
		panic(fmt.Sprintf("systems: unknown kernel kind %d", k.Kind))
	}
}

// SelfDensity is the kernel value at zero displacement: the density a
// particle contributes to itself.
func (k Kernel) SelfDensity() float32 {
	return k.Influence(0)
}
