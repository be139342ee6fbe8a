package sim

// anchorMinutes places time zero of a run at 22:00 on an 18:00 reference
// origin; chronotype and phase shifts move the whole night around it.
const anchorMinutes = 240.0

// chronotypeOffset returns the base bedtime shift for a chronotype.
func chronotypeOffset(c Chronotype) float64 {
	switch c {
	case ChronotypeLark:
		return -120
	case ChronotypeOwl:
		return 180
	default:
		return 0
	}
}

// teenPhaseDelay is the adolescent phase delay: zero until 13, ramping to a
// ~90 minute peak across 17-19 and back to zero by 21.
func teenPhaseDelay(age int) float64 {
	a := float64(age)
	switch {
	case a <= 13 || a >= 21:
		return 0
	case a < 17:
		return 90 * (a - 13) / 4
	case a <= 19:
		return 90
	default:
		return 90 * (21 - a) / 2
	}
}

// startTimeOffset combines every bedtime shift: chronotype, social jet lag,
// the elderly circadian advance and the adolescent delay.
func startTimeOffset(cfg Configuration, out ModifierOutcome) float64 {
	return chronotypeOffset(cfg.Chronotype) + out.BedtimeShift + out.ElderlyShift + teenPhaseDelay(cfg.Age)
}

// finalize shifts the night onto the clock anchor and derives the summary
// statistics from the blocks actually emitted, not from the targets.
func finalize(blocks []StageBlock, events []WakeEvent, cfg Configuration, out ModifierOutcome, timeInBed float64) (*SimulationResult, error) {
	if timeInBed <= 0 {
		return nil, ErrZeroTimeInBed
	}

	offset := startTimeOffset(cfg, out)
	shift := anchorMinutes + offset
	for i := range blocks {
		blocks[i].Start += shift
	}
	for i := range events {
		events[i].Time += shift
	}

	var sleepMinutes, wakeMinutes float64
	minutesByStage := map[Stage]float64{}
	for _, blk := range blocks {
		minutesByStage[blk.Stage] += blk.Duration
		if blk.Stage == StageWake {
			wakeMinutes += blk.Duration
		} else {
			sleepMinutes += blk.Duration
		}
	}

	stats := ResultStats{
		WASOMinutes:            wakeMinutes - out.LatencyMinutes,
		ActualTotalSleep:       sleepMinutes,
		TimeInBed:              timeInBed,
		SleepEfficiencyPercent: 100 * sleepMinutes / timeInBed,
		LatencyMinutes:         out.LatencyMinutes,
	}
	if sleepMinutes > 0 {
		stats.N3Fraction = minutesByStage[StageN3] / sleepMinutes
		stats.REMFraction = minutesByStage[StageREM] / sleepMinutes
		stats.N1Fraction = minutesByStage[StageN1] / sleepMinutes
		stats.N2Fraction = minutesByStage[StageN2] / sleepMinutes
	}

	return &SimulationResult{
		Blocks:     blocks,
		WakeEvents: events,
		Params: ResultParams{
			Chronotype:       cfg.Chronotype,
			StartTimeOffset:  offset,
			ActualTotalSleep: sleepMinutes,
			TimeInBed:        timeInBed,
		},
		Stats: stats,
	}, nil
}
