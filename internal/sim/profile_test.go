package sim

import (
	"math"
	"testing"
)

func TestResolveProfileFractionsSumToOne(t *testing.T) {
	for age := 0; age <= 100; age++ {
		p := ResolveProfile(age)
		sum := p.N3Fraction + p.REMFraction + p.N1Fraction + p.N2Fraction
		if math.Abs(sum-1.0) > 1e-9 {
			t.Fatalf("age=%d fractions sum to %v", age, sum)
		}
		for name, f := range map[string]float64{
			"n3": p.N3Fraction, "rem": p.REMFraction, "n1": p.N1Fraction, "n2": p.N2Fraction,
		} {
			if f < 0 {
				t.Fatalf("age=%d %s fraction negative: %v", age, name, f)
			}
		}
		if p.N2Fraction <= 0 {
			t.Fatalf("age=%d n2 fraction not strictly positive: %v", age, p.N2Fraction)
		}
		if p.TotalSleepTarget <= 0 || p.WASOTarget < 0 {
			t.Fatalf("age=%d bad durations: tst=%v waso=%v", age, p.TotalSleepTarget, p.WASOTarget)
		}
	}
}

func TestResolveProfileAdultBaseline(t *testing.T) {
	p := ResolveProfile(25)
	if p.TotalSleepTarget != 476 {
		t.Fatalf("age-25 total sleep target = %v, want 476", p.TotalSleepTarget)
	}
	if p.N3Fraction < 0.20 || p.N3Fraction > 0.25 {
		t.Fatalf("age-25 n3 fraction = %v, want within [0.20, 0.25]", p.N3Fraction)
	}
	if p.REMFraction < 0.18 || p.REMFraction > 0.26 {
		t.Fatalf("age-25 rem fraction = %v", p.REMFraction)
	}
}

func TestResolveProfileFlatExtrapolation(t *testing.T) {
	if got, want := ResolveProfile(-5), ResolveProfile(0); got != want {
		t.Fatalf("negative age should clamp to the first breakpoint: %+v vs %+v", got, want)
	}
	// Past the last breakpoint every curve holds its final value.
	if got, want := ResolveProfile(100), ResolveProfile(120); got != want {
		t.Fatalf("flat extrapolation above 100 violated: %+v vs %+v", got, want)
	}
}

func TestResolveProfileAgeTrends(t *testing.T) {
	infant := ResolveProfile(0)
	child := ResolveProfile(6)
	adult := ResolveProfile(30)
	elder := ResolveProfile(80)

	if !(infant.TotalSleepTarget > child.TotalSleepTarget && child.TotalSleepTarget > adult.TotalSleepTarget && adult.TotalSleepTarget > elder.TotalSleepTarget) {
		t.Fatalf("total sleep should fall with age: %v %v %v %v",
			infant.TotalSleepTarget, child.TotalSleepTarget, adult.TotalSleepTarget, elder.TotalSleepTarget)
	}
	if !(child.N3Fraction > adult.N3Fraction && adult.N3Fraction > elder.N3Fraction) {
		t.Fatalf("n3 should decay past childhood: %v %v %v", child.N3Fraction, adult.N3Fraction, elder.N3Fraction)
	}
	if elder.N3Fraction <= 0 {
		t.Fatalf("n3 must never reach zero, got %v", elder.N3Fraction)
	}
	if infant.REMFraction < 0.4 {
		t.Fatalf("infant rem fraction = %v, want very high", infant.REMFraction)
	}
	if !(elder.WASOTarget > adult.WASOTarget) {
		t.Fatalf("waso should rise with age: %v vs %v", adult.WASOTarget, elder.WASOTarget)
	}
	if !(elder.N1Fraction > adult.N1Fraction) {
		t.Fatalf("n1 should rise with age: %v vs %v", adult.N1Fraction, elder.N1Fraction)
	}
}

func TestInterpolateBetweenBreakpoints(t *testing.T) {
	curve := []keyframe{{10, 100}, {20, 200}}
	if got := interpolate(curve, 15); got != 150 {
		t.Fatalf("interpolate(15) = %v, want 150", got)
	}
	if got := interpolate(curve, 5); got != 100 {
		t.Fatalf("interpolate below first breakpoint = %v, want 100", got)
	}
	if got := interpolate(curve, 25); got != 200 {
		t.Fatalf("interpolate above last breakpoint = %v, want 200", got)
	}
}
