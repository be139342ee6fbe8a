package sim

import "math"

// ModifierOutcome carries everything the block generator and post-processing
// need from the lifestyle pipeline.
type ModifierOutcome struct {
	Adjusted         AdjustedTargets
	LatencyMinutes   float64
	BedtimeShift     float64 // social jet lag, minutes (positive = later)
	ElderlyShift     float64 // circadian advance past 65, minutes (negative = earlier)
	CaffeineDose     float64 // pharmacokinetically active dose at bedtime
	BlueLightLatency float64
}

// caffeineHalfLife selects the elimination half-life in hours.
func caffeineHalfLife(m CaffeineMetabolism) float64 {
	switch m {
	case MetabolismFast:
		return 4
	case MetabolismSlow:
		return 8
	default:
		return 6
	}
}

// activeCaffeineDose decays the consumed cups by the elapsed half-lives.
func activeCaffeineDose(cfg Configuration) float64 {
	if cfg.Caffeine == 0 {
		return 0
	}
	return float64(cfg.Caffeine) * math.Pow(0.5, cfg.CaffeineTime/caffeineHalfLife(cfg.CaffeineMetabolism))
}

// ApplyModifiers runs every lifestyle factor over the baseline profile in the
// canonical order: blue light, caffeine, alcohol, social jet lag, gender
// fragmentation, menopause, elderly phase shift, SDB severity, nocturia.
// The order matters: factors are multiplicative on fractions, so reordering
// changes the result.
func (e *Engine) ApplyModifiers(profile AgeProfile, cfg Configuration) ModifierOutcome {
	cal := e.calib
	cfg = cfg.normalized()

	out := ModifierOutcome{
		Adjusted: AdjustedTargets{
			TotalSleepTarget: profile.TotalSleepTarget,
			N3Fraction:       profile.N3Fraction,
			REMFraction:      profile.REMFraction,
			N1Fraction:       profile.N1Fraction,
			WASOTarget:       profile.WASOTarget,
		},
	}
	adj := &out.Adjusted

	// Blue light.
	if cfg.BlueLight {
		out.BlueLightLatency = 45
		adj.TotalSleepTarget -= 30
		adj.N3Fraction *= 0.85
		adj.REMFraction *= 0.9
		adj.N1Fraction += 0.03
	}

	// Caffeine, only while a meaningful dose is still circulating.
	out.CaffeineDose = activeCaffeineDose(cfg)
	if out.CaffeineDose > 0.1 {
		dose := out.CaffeineDose
		adj.N3Fraction *= math.Max(0.5, 1-0.15*dose)
		adj.N1Fraction += 0.03 * dose
		adj.TotalSleepTarget -= 15 * dose
		adj.WASOTarget += 15 * dose
	}

	// Alcohol: heavy WASO penalty plus floored multiplicative N3/REM loss.
	if cfg.Alcohol > 0 {
		drinks := float64(cfg.Alcohol)
		adj.WASOTarget += cal.AlcoholWASOPerDrink * drinks
		adj.N3Fraction *= math.Max(cal.AlcoholN3Floor, 1-0.1*drinks)
		adj.REMFraction *= math.Max(cal.AlcoholREMFloor, 1-0.08*drinks)
	}

	// Social jet lag.
	if cfg.SocialJetLag {
		out.BedtimeShift = 180
		adj.TotalSleepTarget -= 60
		adj.N3Fraction *= cal.SocialJetLagN3Factor
		adj.REMFraction *= 0.8
		adj.WASOTarget += 30
	}

	// Gender fragmentation: men over 30 show more fragmented sleep.
	if cfg.Gender == GenderMale && cfg.Age > 30 {
		adj.WASOTarget *= 1.1
		adj.N3Fraction *= cal.MaleN3Factor
	}

	// Menopause. The UI gates this to women 40-60 but the engine accepts it
	// unconditionally.
	if cfg.IsMenopausal {
		adj.WASOTarget += cal.MenopauseWASO
		adj.N3Fraction *= cal.MenopauseN3Factor
		adj.REMFraction *= 0.9
		adj.N1Fraction += 0.05
	}

	// Elderly circadian advance: linear past 65, -120 min at 85, capped.
	if cfg.Age > 65 {
		out.ElderlyShift = -math.Min(120, float64(cfg.Age-65)*6)
	}

	// Sleep-disordered breathing, scaled by severity/10.
	if cfg.SDBSeverity > 0 {
		f := float64(cfg.SDBSeverity) / 10
		adj.N3Fraction *= 1 - cal.SDBN3ReductionMax*f
		adj.REMFraction *= 1 - cal.SDBREMReductionMax*f
		adj.WASOTarget += cal.SDBWASOMax * f
		adj.N1Fraction += cal.SDBN1Max * f
		adj.TotalSleepTarget -= cal.SDBTotalSleepLossMax * f
	}

	// Nocturia.
	if cfg.Nocturia > 0 {
		adj.WASOTarget += 10 * float64(cfg.Nocturia)
	}

	// Safety nets: fraction ceiling, then N2 as remainder, then clamps.
	sum := adj.N3Fraction + adj.REMFraction + adj.N1Fraction
	if sum > cal.FractionCeiling {
		scale := cal.FractionCeiling / sum
		adj.N3Fraction *= scale
		adj.REMFraction *= scale
		adj.N1Fraction *= scale
		sum = cal.FractionCeiling
	}
	adj.N2Fraction = 1 - sum
	adj.TotalSleepTarget = math.Max(0, adj.TotalSleepTarget)
	adj.WASOTarget = math.Max(0, adj.WASOTarget)

	out.LatencyMinutes = latencyMinutes(cfg, out)
	return out
}

// latencyMinutes derives sleep-onset latency independently of the fraction
// pipeline. Base 15 minutes, slower onset past 50, caffeine and blue light
// delay it, alcohol shortens it down to a 5 minute floor, menopause adds a
// fixed term.
func latencyMinutes(cfg Configuration, out ModifierOutcome) float64 {
	lat := 15.0
	if cfg.Age > 50 {
		lat += 5
	}
	if out.CaffeineDose > 0.1 {
		lat += 5 * out.CaffeineDose
	}
	lat += out.BlueLightLatency
	if cfg.IsMenopausal {
		lat += 15
	}
	if cfg.Alcohol > 0 {
		lat = math.Max(5, lat-5*float64(cfg.Alcohol))
	}
	return lat
}
