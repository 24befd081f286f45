// Package app wires the engine, renderer, UI, and telemetry into a running
// application. It owns the scroll accumulator and the per-frame loop for
// both the graphical and headless modes.
package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/rmorrow/smithfold/config"
	"github.com/rmorrow/smithfold/engine"
	"github.com/rmorrow/smithfold/renderer"
	"github.com/rmorrow/smithfold/telemetry"
	"github.com/rmorrow/smithfold/ui"
)

// Frame time is clamped so a stall (tab switch, window drag) cannot inject
// a huge impulse into the integrators.
const maxFrameTime = 1.0 / 30.0

// Rate of progress advance per second in auto-play mode.
const autoPlayRate = 0.08

// Options configures an App.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	AutoPlay       bool
}

// App holds the complete application state.
type App struct {
	cfg  *config.Config
	eng  *engine.Engine
	rend *renderer.Renderer

	hud   *ui.HUD
	panel *ui.DebugPanel

	// Scroll accumulator; the engine sees it through SetProgress
	progress float64
	autoPlay bool

	// Telemetry
	perf          *telemetry.PerfCollector
	motion        *telemetry.MotionCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsWindow   float64
	sinceFlush    float64

	headless      bool
	width, height float32
}

// New creates an application with the given options. In headless mode no
// renderer or UI is constructed and raylib is never touched.
func New(cfg *config.Config, opts Options) (*App, error) {
	a := &App{
		cfg:         cfg,
		eng:         engine.New(cfg, opts.Seed),
		autoPlay:    opts.AutoPlay,
		perf:        telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		motion:      telemetry.NewMotionCollector(),
		logStats:    opts.LogStats,
		statsWindow: opts.StatsWindowSec,
		headless:    opts.Headless,
		width:       float32(cfg.Screen.Width),
		height:      float32(cfg.Screen.Height),
	}
	a.eng.SetPerfCollector(a.perf)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	a.outputManager = om
	if err := a.outputManager.WriteConfig(cfg); err != nil {
		return nil, err
	}

	if !opts.Headless {
		a.rend = renderer.New(cfg)
		a.rend.Resize(int32(a.width), int32(a.height))
		a.hud = ui.NewHUD()
		a.panel = ui.NewDebugPanel(int32(a.width)-270, 10, 260)
	}

	a.eng.Resize(a.width, a.height)
	return a, nil
}

// Update runs one graphical frame: input, engine tick, scene draw, UI.
func (a *App) Update() {
	a.handleInput()

	dt := float64(rl.GetFrameTime())
	if dt > maxFrameTime {
		dt = maxFrameTime
	}

	if a.autoPlay && a.progress < 1 {
		a.setProgress(a.progress + autoPlayRate*dt)
	}

	a.perf.StartTick()
	a.eng.Tick(dt)
	a.draw()
	a.perf.EndTick()
	a.perf.RecordFrame()

	a.recordMotion(dt)
}

// UpdateHeadless runs one tick without rendering. The progress ramp mirrors
// auto-play so a full run sweeps every phase.
func (a *App) UpdateHeadless() {
	const dt = 1.0 / 60.0

	if a.autoPlay && a.progress < 1 {
		a.setProgress(a.progress + autoPlayRate*dt)
	}

	a.perf.StartTick()
	a.eng.Tick(dt)
	a.perf.EndTick()

	a.recordMotion(dt)
}

// SetProgress pushes an externally computed progress value (used by the
// parameter tuner).
func (a *App) SetProgress(p float64) {
	a.setProgress(p)
}

func (a *App) setProgress(p float64) {
	a.progress = math.Min(math.Max(p, 0), 1)
	a.eng.SetProgress(a.progress)
}

// recordMotion samples motion telemetry and flushes the stats window.
func (a *App) recordMotion(dt float64) {
	lat := a.eng.Lattice()
	a.motion.Record(lat.StringEnergy(), lat.SettleError(), a.eng.Idle())

	if a.statsWindow <= 0 {
		return
	}
	a.sinceFlush += dt
	if a.sinceFlush >= a.statsWindow {
		a.flushTelemetry()
		a.sinceFlush = 0
	}
}

// Engine exposes the underlying engine (used by the tuner and tests).
func (a *App) Engine() *engine.Engine {
	return a.eng
}

// Tick returns the engine tick counter.
func (a *App) Tick() int64 {
	return a.eng.Ticks()
}

// Idle reports whether the engine has settled.
func (a *App) Idle() bool {
	return a.eng.Idle()
}

// Unload releases all resources. The app must not be used afterwards.
func (a *App) Unload() {
	a.flushTelemetry()
	if a.outputManager != nil {
		a.outputManager.Close()
	}
	if a.rend != nil {
		a.rend.Unload()
	}
	a.eng.Unload()
}
