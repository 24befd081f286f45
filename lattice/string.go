package lattice

import "math"

// StepString advances every string oscillator by dt seconds. The constants
// are tuned for a 60Hz tick; variable dt is folded in by scaling both the
// force application and the damping exponent, so a 30Hz host decays the
// same amount per second as a 60Hz one. Neighbor pulls are computed from a
// snapshot of the current displacements to keep the coupling symmetric.
func (l *Lattice) StepString(dt float64) {
	s := tickScale(dt)
	if s == 0 {
		return
	}
	cfg := l.cfg.String
	damp := math.Pow(cfg.Damping, s)

	for i := range l.String {
		l.scratch[i] = l.String[i].Y
	}

	n := len(l.String)
	for i := range l.String {
		p := &l.String[i]

		// Anchored ends: a missing neighbor reads as rest.
		var left, right float64
		if i > 0 {
			left = l.scratch[i-1]
		}
		if i < n-1 {
			right = l.scratch[i+1]
		}
		coupling := cfg.Coupling * ((left - p.Y) + (right - p.Y))

		p.VY += (-cfg.Stiffness*p.Y + coupling) * s
		p.VY *= damp
		p.Y += p.VY * s
	}
}

// Pluck injects a velocity impulse around the normalized position [0, 1]
// with linear falloff over the configured window. dir is +1 or -1.
func (l *Lattice) Pluck(normX float64, dir int) {
	n := len(l.String)
	if n == 0 {
		return
	}
	if normX < 0 {
		normX = 0
	} else if normX > 1 {
		normX = 1
	}
	d := float64(1)
	if dir < 0 {
		d = -1
	}

	center := int(normX * float64(n-1))
	w := l.cfg.String.PluckWindow
	for i := center - w; i <= center+w; i++ {
		if i < 0 || i >= n {
			continue
		}
		falloff := 1 - math.Abs(float64(i-center))/float64(w+1)
		l.String[i].VY += d * l.cfg.String.PluckStrength * falloff
	}
}

// StringEnergy returns the total kinetic energy of the string, the quantity
// the engine's idle detector watches.
func (l *Lattice) StringEnergy() float64 {
	e := 0.0
	for i := range l.String {
		e += l.String[i].VY * l.String[i].VY
	}
	return e
}

// tickScale converts a dt in seconds to multiples of the nominal 60Hz tick,
// clamped so a stalled host cannot blow up the integration.
func tickScale(dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	s := dt * 60
	if s > 2 {
		s = 2
	}
	return s
}
