package lattice

import "math"

// StepGrid advances every grid point one step toward its target with a
// critically damped spring. Deterministic: identical state and dt sequences
// produce identical positions.
func (l *Lattice) StepGrid(dt float64) {
	s := tickScale(dt)
	if s == 0 {
		return
	}
	k := l.cfg.Spring.Stiffness * s
	fric := math.Pow(l.cfg.Spring.Friction, s)

	for li := range l.Lines {
		pts := l.Lines[li].Points
		for i := range pts {
			p := &pts[i]
			p.VX = (p.VX + (p.TX-p.X)*k) * fric
			p.VY = (p.VY + (p.TY-p.Y)*k) * fric
			p.X += p.VX * s
			p.Y += p.VY * s
		}
	}
}

// SettleError returns the largest distance between any grid point and its
// target, in pixels. Zero means the grid has fully settled.
func (l *Lattice) SettleError() float64 {
	worst := 0.0
	for li := range l.Lines {
		pts := l.Lines[li].Points
		for i := range pts {
			d := math.Hypot(pts[i].TX-pts[i].X, pts[i].TY-pts[i].Y)
			if d > worst {
				worst = d
			}
		}
	}
	return worst
}
