package inspector

import "github.com/pthm-cable/fluidbox/components"

// Pick returns the index of the particle nearest to p within radius.
func Pick(ps []components.Particle, p components.Vec2, radius float32) (int, bool) {
	best := -1
	bestDist := radius * radius
	for i := range ps {
		d := ps[i].Position.Sub(p).LengthSquared()
		if d <= bestDist {
			best = i
			bestDist = d
		}
	}
	return best, best >= 0
}
