// Package engine owns the animation engine shell: lifecycle, the per-frame
// tick ordering (phase eval, target resolve, integration, sparks), and idle
// detection. It has no rendering dependency; the host draws from a View
// snapshot, so the whole engine runs headless under a test harness or the
// parameter tuner exactly as it runs under the graphical loop.
package engine

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/rmorrow/smithfold/components"
	"github.com/rmorrow/smithfold/config"
	"github.com/rmorrow/smithfold/lattice"
	"github.com/rmorrow/smithfold/phase"
	"github.com/rmorrow/smithfold/telemetry"
)

// Engine is one animation engine instance bound to a single drawing surface.
// Lifecycle is one-way: New -> (Resize | SetProgress | Pluck | Tick)* ->
// Unload. Behavior after Unload is the host's problem, not the engine's.
type Engine struct {
	cfg    *config.Config
	lat    *lattice.Lattice
	phases *phase.Controller

	progress     float64
	lastProgress float64 // Progress seen by the previous tick
	frame        phase.Frame

	width, height float32
	elapsed       float64
	tick          int64

	idle         bool
	skipCounter  int
	renderNeeded bool
	destroyed    bool

	// Spark burst entities
	world       *ecs.World
	sparkMapper *ecs.Map3[components.Position, components.Velocity, components.Life]
	sparkFilter *ecs.Filter3[components.Position, components.Velocity, components.Life]
	rng         *rand.Rand
	sparkCount  int

	perf *telemetry.PerfCollector
}

// New creates an engine from configuration. seed drives only the decorative
// spark burst; the lattice simulation itself is deterministic.
func New(cfg *config.Config, seed int64) *Engine {
	world := ecs.NewWorld()
	e := &Engine{
		cfg:    cfg,
		lat:    lattice.New(cfg),
		phases: phase.NewController(cfg.Phases),
		world:  world,
		rng:    rand.New(rand.NewSource(seed)),
		sparkMapper: ecs.NewMap3[
			components.Position,
			components.Velocity,
			components.Life,
		](world),
		sparkFilter: ecs.NewFilter3[
			components.Position,
			components.Velocity,
			components.Life,
		](world),
	}
	e.frame = e.phases.Eval(0)
	return e
}

// Resize binds the engine to a surface of the given size. Idempotent: a
// repeat call with the same dimensions changes nothing. A real size change
// retargets the lattice without resetting any simulated motion.
func (e *Engine) Resize(width, height float32) {
	if e.destroyed || width < 0 || height < 0 {
		return
	}
	changed := width != e.width || height != e.height
	e.width, e.height = width, height
	if width == 0 || height == 0 {
		return
	}
	if e.lat.SetGeometry(float64(width), float64(height)) || changed {
		e.idle = false
	}
}

// SetProgress pushes the host's scroll accumulator into the engine. Values
// outside [0, 1] are clamped, never rejected. Last write between ticks wins.
func (e *Engine) SetProgress(p float64) {
	if e.destroyed {
		return
	}
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	if p != e.progress {
		e.progress = p
		e.idle = false
	}
}

// Pluck injects an impulse into the string at the normalized position with
// the given direction. No-op once progress has left the string phase.
func (e *Engine) Pluck(normX float64, dir int) {
	if e.destroyed || e.progress > e.cfg.Input.PluckLimit {
		return
	}
	e.lat.Pluck(normX, dir)
	e.idle = false
}

// Tick advances the engine by dt seconds: phase evaluation, target
// resolution (memoized on progress), spring integration for string and
// grid, spark update, then idle detection. Physics always advances; only
// rendering is skipped while idle. Before the first non-zero Resize the
// tick is a no-op, which is the expected state during initial mount.
func (e *Engine) Tick(dt float64) {
	if e.destroyed || dt <= 0 {
		return
	}
	if e.width == 0 || e.height == 0 || !e.lat.Placed() {
		e.renderNeeded = false
		return
	}

	e.startPhase(telemetry.PhaseTargets)
	e.frame = e.phases.Eval(e.progress)
	if e.phases.Reveal(e.progress) {
		e.burstSparks()
	}
	e.lat.UpdateTargets(e.progress, e.frame)

	e.startPhase(telemetry.PhaseString)
	e.lat.StepString(dt)

	e.startPhase(telemetry.PhaseGrid)
	e.lat.StepGrid(dt)

	e.startPhase(telemetry.PhaseSparks)
	e.stepSparks(dt)

	e.elapsed += dt
	e.tick++

	settled := e.progress == e.lastProgress &&
		e.sparkCount == 0 &&
		e.lat.StringEnergy() < e.cfg.Idle.EnergyThreshold &&
		e.lat.SettleError() < 0.05
	if settled {
		if !e.idle {
			e.idle = true
			e.skipCounter = 0
		}
		e.skipCounter++
		e.renderNeeded = e.skipCounter%e.cfg.Idle.SkipCadence == 0
	} else {
		e.idle = false
		e.renderNeeded = true
	}
	e.lastProgress = e.progress
}

// SetPerfCollector attaches a collector that times the tick phases. Pass
// nil to detach.
func (e *Engine) SetPerfCollector(p *telemetry.PerfCollector) {
	e.perf = p
}

func (e *Engine) startPhase(name string) {
	if e.perf != nil {
		e.perf.StartPhase(name)
	}
}

// RenderNeeded reports whether the last tick produced state worth painting.
// While idle only one tick in the configured cadence does.
func (e *Engine) RenderNeeded() bool {
	return e.renderNeeded
}

// Idle reports whether the engine has settled.
func (e *Engine) Idle() bool {
	return e.idle
}

// Progress returns the current clamped progress value.
func (e *Engine) Progress() float64 {
	return e.progress
}

// Frame returns the phase frame from the last tick.
func (e *Engine) Frame() phase.Frame {
	return e.frame
}

// Lattice exposes the simulated point set for telemetry and tests.
func (e *Engine) Lattice() *lattice.Lattice {
	return e.lat
}

// Ticks returns the number of ticks processed.
func (e *Engine) Ticks() int64 {
	return e.tick
}

// Unload destroys the engine. The instance must not be used afterwards; the
// host is responsible for dropping its animation scheduling first.
func (e *Engine) Unload() {
	e.destroyed = true
	e.renderNeeded = false
	e.world = nil
	e.sparkMapper = nil
	e.sparkFilter = nil
}

// View is the read-only snapshot the renderer consumes. Slices alias live
// engine state and are only valid until the next Tick.
type View struct {
	Width, Height float32
	Progress      float64
	Frame         phase.Frame
	Geometry      lattice.Geometry
	String        []lattice.StringPoint
	Lines         []lattice.Line
	Sparks        []SparkView
}

// View snapshots the current engine state for rendering.
func (e *Engine) View() View {
	return View{
		Width:    e.width,
		Height:   e.height,
		Progress: e.progress,
		Frame:    e.frame,
		Geometry: e.lat.Geometry(),
		String:   e.lat.String,
		Lines:    e.lat.Lines,
		Sparks:   e.collectSparks(),
	}
}
