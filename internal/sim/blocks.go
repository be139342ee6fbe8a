package sim

import (
	"math"
	"math/rand"
	"sort"
)

// wasoChunk is one pre-scheduled slice of the WASO budget, injected after
// the cycle whose index it was assigned.
type wasoChunk struct {
	cycle    int
	duration float64
}

// scheduleWASO partitions the WASO target into roughly chunk-sized pieces
// that sum exactly to the target, assigns each a uniformly-random cycle index
// and sorts the schedule so the main loop can consume it with a single
// forward scan. This is the only random placement in block generation.
func scheduleWASO(rng *rand.Rand, wasoTarget, totalSleepTarget float64, cal Calibration) []wasoChunk {
	if wasoTarget <= 0 {
		return nil
	}
	count := int(math.Floor(wasoTarget / cal.WASOChunkMinutes))
	if count < 1 {
		count = 1
	}
	cycles := int(math.Ceil(totalSleepTarget / cal.CycleMinutes))
	if cycles < 1 {
		cycles = 1
	}
	dur := wasoTarget / float64(count)

	chunks := make([]wasoChunk, count)
	for i := range chunks {
		chunks[i] = wasoChunk{cycle: rng.Intn(cycles), duration: dur}
	}
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].cycle < chunks[j].cycle })
	return chunks
}

// localWeights returns the per-cycle N3 and REM fractions. Early cycles are
// deep-sleep dominant, late cycles REM dominant; N2 absorbs the remainder
// but is never compressed below 10% of the cycle.
func localWeights(adj AdjustedTargets, cfg Configuration, cycleIndex int) (n3, rem float64) {
	n3 = adj.N3Fraction * math.Max(0, 1.8-0.45*float64(cycleIndex))
	rem = adj.REMFraction * (0.4 + 0.35*float64(cycleIndex))

	// Alcohol is biphasic: sedative in the first two cycles, REM rebound and
	// fragmentation afterwards.
	if cfg.Alcohol > 0 {
		drinks := float64(cfg.Alcohol)
		if cycleIndex < 2 {
			n3 *= 1 + 0.1*drinks
			rem *= math.Max(0.2, 1-0.15*drinks)
		} else {
			n3 *= math.Max(0.3, 1-0.1*drinks)
			rem *= 1 + 0.1*drinks
		}
	}

	if spare := 1 - n3 - rem; spare < 0.1 {
		scale := 0.9 / (n3 + rem)
		n3 *= scale
		rem *= scale
	}
	return n3, rem
}

type blockBuilder struct {
	blocks      []StageBlock
	currentTime float64
	accumulated float64
}

// push appends a block at the cursor; zero and negative durations are
// dropped so the contiguity invariant never meets an empty interval.
func (b *blockBuilder) push(stage Stage, duration float64, isSleep bool) {
	if duration <= 0 {
		return
	}
	b.blocks = append(b.blocks, StageBlock{Stage: stage, Start: b.currentTime, Duration: duration})
	b.currentTime += duration
	if isSleep {
		b.accumulated += duration
	}
}

// generateBlocks converts adjusted targets into the ordered, contiguous
// night. The loop is continuous rather than fixed-count: it runs until
// accumulated sleep reaches the target, and the final cycle's budget is
// clipped to the remainder so the total lands on the target instead of
// overshooting by up to a full cycle.
func (e *Engine) generateBlocks(rng *rand.Rand, out ModifierOutcome, cfg Configuration) ([]StageBlock, float64) {
	cal := e.calib
	cfg = cfg.normalized()
	adj := out.Adjusted

	b := &blockBuilder{}

	// Sleep-onset latency, then the descent through N1. The initial N1
	// counts toward accumulated sleep.
	b.push(StageWake, out.LatencyMinutes, false)
	initialN1 := 5.0
	if cfg.Age > 50 {
		initialN1 += 5
	}
	initialN1 += 2 * out.CaffeineDose
	if adj.TotalSleepTarget > 0 {
		initialN1 = math.Min(initialN1, adj.TotalSleepTarget)
	}
	b.push(StageN1, initialN1, true)

	chunks := scheduleWASO(rng, adj.WASOTarget, adj.TotalSleepTarget, cal)
	nextChunk := 0

	const eps = 1e-6
	for cycleIndex := 0; adj.TotalSleepTarget-b.accumulated > eps; cycleIndex++ {
		budget := math.Min(cal.CycleMinutes, adj.TotalSleepTarget-b.accumulated)
		fullCycle := budget == cal.CycleMinutes

		n3w, remw := localWeights(adj, cfg, cycleIndex)
		n3Min := n3w * budget
		remMin := remw * budget

		// Fold a negligible N3 sliver into N2 rather than emitting it.
		if n3Min < 1 {
			n3Min = 0
		}
		n2Min := budget - n3Min - remMin

		b.push(StageN2, 0.4*n2Min, true)
		b.push(StageN3, n3Min, true)
		b.push(StageN2, 0.6*n2Min, true)
		b.push(StageREM, remMin, true)

		// Full cycles get a short post-REM N1 transition, clipped so the
		// night still lands exactly on the target.
		if fullCycle {
			trans := 2.0
			if cfg.Age > 50 {
				trans += 2
			}
			b.push(StageN1, math.Min(trans, adj.TotalSleepTarget-b.accumulated), true)
		}

		for nextChunk < len(chunks) && chunks[nextChunk].cycle <= cycleIndex {
			b.push(StageWake, chunks[nextChunk].duration, false)
			nextChunk++
		}
	}

	// Chunks scheduled past the last realized cycle still owe their wake
	// time; flush them at the end of the night.
	for ; nextChunk < len(chunks); nextChunk++ {
		b.push(StageWake, chunks[nextChunk].duration, false)
	}

	return b.blocks, b.currentTime
}
