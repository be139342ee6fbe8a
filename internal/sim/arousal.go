package sim

import "math/rand"

// generateWakeEvents builds the micro-arousal overlay: brief wake markers
// scattered uniformly over the asleep portion of the night, plus one ~10
// minute event per nocturia episode spaced evenly with jitter. The overlay
// is visual only and never feeds back into the sleep or time-in-bed
// accounting.
func (e *Engine) generateWakeEvents(rng *rand.Rand, cfg Configuration, latency, timeInBed float64) []WakeEvent {
	cal := e.calib
	cfg = cfg.normalized()

	asleep := timeInBed - latency
	if asleep <= 0 {
		return nil
	}

	count := 5
	if cfg.Age > 50 {
		count += 5
	}
	count += *cal.MicroArousalsPerSDBPoint * cfg.SDBSeverity

	events := make([]WakeEvent, 0, count+cfg.Nocturia)
	for i := 0; i < count; i++ {
		events = append(events, WakeEvent{
			Time:     latency + rng.Float64()*asleep,
			Duration: 1 + rng.Float64()*(cal.MicroArousalMaxDuration-1),
		})
	}

	if cfg.Nocturia > 0 {
		spacing := asleep / float64(cfg.Nocturia+1)
		for i := 1; i <= cfg.Nocturia; i++ {
			jitter := (rng.Float64() - 0.5) * 30
			t := clampFloat(latency+float64(i)*spacing+jitter, latency, timeInBed-1)
			events = append(events, WakeEvent{Time: t, Duration: 10})
		}
	}
	return events
}
