package sim

import (
	"math"
	"testing"
)

func baselineConfig() Configuration {
	return Configuration{
		Age:                25,
		Gender:             GenderMale,
		CaffeineMetabolism: MetabolismNormal,
		Chronotype:         ChronotypeNormal,
	}
}

func TestApplyModifiersBaselineIsIdentity(t *testing.T) {
	e := New(DefaultCalibration())
	p := ResolveProfile(25)
	out := e.ApplyModifiers(p, baselineConfig())

	if out.Adjusted.TotalSleepTarget != p.TotalSleepTarget {
		t.Fatalf("total sleep changed with no modifiers: %v", out.Adjusted.TotalSleepTarget)
	}
	if out.Adjusted.N3Fraction != p.N3Fraction || out.Adjusted.REMFraction != p.REMFraction {
		t.Fatalf("fractions changed with no modifiers: %+v", out.Adjusted)
	}
	if out.LatencyMinutes != 15 {
		t.Fatalf("baseline latency = %v, want 15", out.LatencyMinutes)
	}
	if out.BedtimeShift != 0 || out.ElderlyShift != 0 {
		t.Fatalf("unexpected shifts: %+v", out)
	}
}

func TestApplyModifiersBlueLight(t *testing.T) {
	e := New(DefaultCalibration())
	p := ResolveProfile(25)
	cfg := baselineConfig()
	cfg.BlueLight = true
	out := e.ApplyModifiers(p, cfg)

	if out.Adjusted.TotalSleepTarget != p.TotalSleepTarget-30 {
		t.Fatalf("blue light total sleep = %v", out.Adjusted.TotalSleepTarget)
	}
	if math.Abs(out.Adjusted.N3Fraction-p.N3Fraction*0.85) > 1e-9 {
		t.Fatalf("blue light n3 = %v", out.Adjusted.N3Fraction)
	}
	if out.BlueLightLatency != 45 || out.LatencyMinutes != 60 {
		t.Fatalf("blue light latency = %v (extra %v), want 60 (45)", out.LatencyMinutes, out.BlueLightLatency)
	}
}

func TestCaffeineDecayGate(t *testing.T) {
	e := New(DefaultCalibration())
	p := ResolveProfile(25)

	// Two cups twelve hours ago through a normal 6h half-life leave a 0.5
	// active dose; pushed out far enough the dose decays below the 0.1 gate.
	cfg := baselineConfig()
	cfg.Caffeine = 2
	cfg.CaffeineTime = 12
	out := e.ApplyModifiers(p, cfg)
	if math.Abs(out.CaffeineDose-0.5) > 1e-9 {
		t.Fatalf("active dose = %v, want 0.5", out.CaffeineDose)
	}
	if math.Abs(out.Adjusted.WASOTarget-(p.WASOTarget+15*0.5)) > 1e-9 {
		t.Fatalf("caffeine waso = %v", out.Adjusted.WASOTarget)
	}

	cfg.CaffeineTime = 24
	cfg.CaffeineMetabolism = MetabolismFast // six half-lives, dose ~0.03
	stale := e.ApplyModifiers(p, cfg)
	if stale.Adjusted.WASOTarget != p.WASOTarget {
		t.Fatalf("decayed caffeine still modified waso: %v", stale.Adjusted.WASOTarget)
	}
}

func TestCaffeineMetabolismHalfLives(t *testing.T) {
	if hl := caffeineHalfLife(MetabolismFast); hl != 4 {
		t.Fatalf("fast half-life = %v", hl)
	}
	if hl := caffeineHalfLife(MetabolismNormal); hl != 6 {
		t.Fatalf("normal half-life = %v", hl)
	}
	if hl := caffeineHalfLife(MetabolismSlow); hl != 8 {
		t.Fatalf("slow half-life = %v", hl)
	}
}

func TestAlcoholFloorsAndLatencyDiscount(t *testing.T) {
	e := New(DefaultCalibration())
	p := ResolveProfile(25)
	cfg := baselineConfig()
	cfg.Alcohol = 10
	out := e.ApplyModifiers(p, cfg)

	if math.Abs(out.Adjusted.N3Fraction-p.N3Fraction*0.5) > 1e-9 {
		t.Fatalf("alcohol n3 floor not applied: %v", out.Adjusted.N3Fraction)
	}
	if math.Abs(out.Adjusted.REMFraction-p.REMFraction*0.6) > 1e-9 {
		t.Fatalf("alcohol rem floor not applied: %v", out.Adjusted.REMFraction)
	}
	if math.Abs(out.Adjusted.WASOTarget-(p.WASOTarget+200)) > 1e-9 {
		t.Fatalf("alcohol waso = %v", out.Adjusted.WASOTarget)
	}
	if out.LatencyMinutes != 5 {
		t.Fatalf("alcohol latency floor = %v, want 5", out.LatencyMinutes)
	}
}

func TestSocialJetLag(t *testing.T) {
	e := New(DefaultCalibration())
	p := ResolveProfile(25)
	cfg := baselineConfig()
	cfg.SocialJetLag = true
	out := e.ApplyModifiers(p, cfg)

	if out.BedtimeShift != 180 {
		t.Fatalf("bedtime shift = %v, want 180", out.BedtimeShift)
	}
	if out.Adjusted.TotalSleepTarget != p.TotalSleepTarget-60 {
		t.Fatalf("jet lag total sleep = %v", out.Adjusted.TotalSleepTarget)
	}
	if math.Abs(out.Adjusted.WASOTarget-(p.WASOTarget+30)) > 1e-9 {
		t.Fatalf("jet lag waso = %v", out.Adjusted.WASOTarget)
	}
}

func TestMaleFragmentationGatedOnAge(t *testing.T) {
	e := New(DefaultCalibration())

	young := e.ApplyModifiers(ResolveProfile(25), baselineConfig())
	if young.Adjusted.WASOTarget != ResolveProfile(25).WASOTarget {
		t.Fatalf("male fragmentation applied under 30: %v", young.Adjusted.WASOTarget)
	}

	cfg := baselineConfig()
	cfg.Age = 40
	p := ResolveProfile(40)
	older := e.ApplyModifiers(p, cfg)
	if math.Abs(older.Adjusted.WASOTarget-p.WASOTarget*1.1) > 1e-9 {
		t.Fatalf("male over-30 waso = %v, want %v", older.Adjusted.WASOTarget, p.WASOTarget*1.1)
	}
	// The final calibration leaves male N3 untouched.
	if older.Adjusted.N3Fraction != p.N3Fraction {
		t.Fatalf("male n3 changed under default calibration: %v", older.Adjusted.N3Fraction)
	}

	// The earlier calibration is reachable as an override.
	legacy := DefaultCalibration()
	legacy.MaleN3Factor = 0.7
	outLegacy := New(legacy).ApplyModifiers(p, cfg)
	if math.Abs(outLegacy.Adjusted.N3Fraction-p.N3Fraction*0.7) > 1e-9 {
		t.Fatalf("legacy male n3 factor not applied: %v", outLegacy.Adjusted.N3Fraction)
	}
}

func TestMenopauseAcceptedUnconditionally(t *testing.T) {
	e := New(DefaultCalibration())
	p := ResolveProfile(25)
	cfg := baselineConfig() // male, 25: the UI would never send this, the engine accepts it
	cfg.IsMenopausal = true
	out := e.ApplyModifiers(p, cfg)

	if math.Abs(out.Adjusted.WASOTarget-(p.WASOTarget+40)) > 1e-9 {
		t.Fatalf("menopause waso = %v", out.Adjusted.WASOTarget)
	}
	if out.LatencyMinutes != 30 {
		t.Fatalf("menopause latency = %v, want 30", out.LatencyMinutes)
	}
}

func TestElderlyPhaseShiftCapped(t *testing.T) {
	e := New(DefaultCalibration())
	for _, tc := range []struct {
		age  int
		want float64
	}{
		{65, 0}, {70, -30}, {85, -120}, {100, -120},
	} {
		cfg := baselineConfig()
		cfg.Age = tc.age
		out := e.ApplyModifiers(ResolveProfile(tc.age), cfg)
		if out.ElderlyShift != tc.want {
			t.Fatalf("age=%d elderly shift = %v, want %v", tc.age, out.ElderlyShift, tc.want)
		}
	}
}

func TestSDBSeverityEffects(t *testing.T) {
	e := New(DefaultCalibration())
	p := ResolveProfile(25)
	cfg := baselineConfig()
	cfg.SDBSeverity = 10
	out := e.ApplyModifiers(p, cfg)

	if math.Abs(out.Adjusted.N3Fraction-p.N3Fraction*0.2) > 1e-9 {
		t.Fatalf("sdb max n3 = %v, want %v", out.Adjusted.N3Fraction, p.N3Fraction*0.2)
	}
	if math.Abs(out.Adjusted.REMFraction-p.REMFraction*0.7) > 1e-9 {
		t.Fatalf("sdb max rem = %v", out.Adjusted.REMFraction)
	}
	if math.Abs(out.Adjusted.WASOTarget-(p.WASOTarget+70)) > 1e-9 {
		t.Fatalf("sdb max waso = %v", out.Adjusted.WASOTarget)
	}
	if out.Adjusted.TotalSleepTarget != p.TotalSleepTarget-60 {
		t.Fatalf("sdb total sleep = %v", out.Adjusted.TotalSleepTarget)
	}
}

func TestFractionCeilingInvariant(t *testing.T) {
	e := New(DefaultCalibration())
	p := ResolveProfile(0) // infant: N3+REM+N1 already 0.62
	cfg := baselineConfig()
	cfg.Age = 0
	cfg.SDBSeverity = 10 // adds 0.18 to N1
	cfg.BlueLight = true
	out := e.ApplyModifiers(p, cfg)

	sum := out.Adjusted.N3Fraction + out.Adjusted.REMFraction + out.Adjusted.N1Fraction
	if sum > e.Calibration().FractionCeiling+1e-9 {
		t.Fatalf("fraction sum %v exceeds ceiling", sum)
	}
	if out.Adjusted.N2Fraction < 1-e.Calibration().FractionCeiling-1e-9 {
		t.Fatalf("n2 fraction squeezed below floor: %v", out.Adjusted.N2Fraction)
	}
	total := sum + out.Adjusted.N2Fraction
	if math.Abs(total-1.0) > 1e-9 {
		t.Fatalf("adjusted fractions sum to %v", total)
	}
}

func TestAdjustedDurationsNeverNegative(t *testing.T) {
	e := New(DefaultCalibration())
	cfg := Configuration{
		Age: 90, Gender: GenderFemale, Alcohol: 10, Caffeine: 10,
		CaffeineMetabolism: MetabolismSlow, SDBSeverity: 10, Nocturia: 10,
		Chronotype: ChronotypeOwl, SocialJetLag: true, BlueLight: true, IsMenopausal: true,
	}
	out := e.ApplyModifiers(ResolveProfile(cfg.Age), cfg)
	if out.Adjusted.TotalSleepTarget < 0 || out.Adjusted.WASOTarget < 0 {
		t.Fatalf("negative durations: %+v", out.Adjusted)
	}
	if out.LatencyMinutes < 5 {
		t.Fatalf("latency below floor: %v", out.LatencyMinutes)
	}
}

func TestConfigurationClamping(t *testing.T) {
	c := Configuration{Age: -3, Alcohol: 99, Caffeine: -1, CaffeineTime: -2, SDBSeverity: 42, Nocturia: -7}
	n := c.normalized()
	if n.Age != 0 || n.Alcohol != 10 || n.Caffeine != 0 || n.CaffeineTime != 0 || n.SDBSeverity != 10 || n.Nocturia != 0 {
		t.Fatalf("clamping failed: %+v", n)
	}
	if n.Gender != GenderOther || n.Chronotype != ChronotypeNormal || n.CaffeineMetabolism != MetabolismNormal {
		t.Fatalf("enum fallback failed: %+v", n)
	}
}
