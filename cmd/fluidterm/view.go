package main

import "github.com/pthm-cable/fluidbox/components"

// grid maps the box onto a w x h character grid. Row 0 is the top wall.
type grid struct {
	w, h int
	half components.Vec2
}

// cell returns the grid cell holding p. Points on or past a wall land in the
// edge cell.
func (g grid) cell(p components.Vec2) (x, y int) {
	fx := (p.X + g.half.X) / (2 * g.half.X)
	fy := (g.half.Y - p.Y) / (2 * g.half.Y)
	x = min(max(int(fx*float32(g.w)), 0), g.w-1)
	y = min(max(int(fy*float32(g.h)), 0), g.h-1)
	return x, y
}

// occupancy counts particles per cell, row-major.
func (g grid) occupancy(ps []components.Particle, counts []int) []int {
	n := g.w * g.h
	if cap(counts) < n {
		counts = make([]int, n)
	}
	counts = counts[:n]
	clear(counts)
	for i := range ps {
		x, y := g.cell(ps[i].Position)
		counts[y*g.w+x]++
	}
	return counts
}

// glyph picks a rune for a cell holding n particles.
func glyph(n int) rune {
	switch {
	case n <= 0:
		return ' '
	case n == 1:
		return '•'
	case n == 2:
		return 'o'
	default:
		return '●'
	}
}
