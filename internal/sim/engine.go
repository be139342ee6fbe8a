package sim

import (
	"math/rand"
	"time"
)

// Engine generates hypnograms. It holds only the calibration table, so a
// single Engine is safe for concurrent use: every run builds its own random
// source from the supplied (or derived) seed.
type Engine struct {
	calib Calibration
}

// New builds an engine. Zero-valued calibration fields are filled from
// DefaultCalibration, so partial overrides from config are safe.
func New(calib Calibration) *Engine {
	return &Engine{calib: calib.withDefaults()}
}

// Calibration returns the effective constant table.
func (e *Engine) Calibration() Calibration {
	return e.calib
}

// Generate runs one full simulation with a fresh time-derived seed.
func (e *Engine) Generate(cfg Configuration) (*SimulationResult, error) {
	return e.GenerateSeeded(cfg, time.Now().UnixNano())
}

// GenerateSeeded runs one full simulation from an explicit seed. Identical
// configuration and seed produce identical results, WASO placement and
// micro-arousal timing included.
func (e *Engine) GenerateSeeded(cfg Configuration, seed int64) (*SimulationResult, error) {
	cfg = cfg.normalized()
	rng := rand.New(rand.NewSource(seed))

	profile := ResolveProfile(cfg.Age)
	out := e.ApplyModifiers(profile, cfg)
	blocks, timeInBed := e.generateBlocks(rng, out, cfg)
	events := e.generateWakeEvents(rng, cfg, out.LatencyMinutes, timeInBed)

	return finalize(blocks, events, cfg, out, timeInBed)
}
