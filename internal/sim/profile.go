package sim

// keyframe is one breakpoint of a piecewise-linear age curve.
type keyframe struct {
	age   float64
	value float64
}

// The five baseline curves below follow the published age trends: total sleep
// falls from ~16h in infancy to a 5.5-6h floor in old age, N3 peaks in
// childhood and decays without ever reaching zero, REM is very high in
// infancy and settles around 20-25%, WASO and N1 both rise with age.
var (
	totalSleepCurve = []keyframe{
		{0, 960}, {1, 840}, {3, 720}, {6, 650}, {10, 580}, {14, 530},
		{18, 500}, {25, 476}, {35, 460}, {45, 440}, {55, 420}, {65, 400},
		{75, 380}, {85, 350}, {100, 330},
	}
	n3Curve = []keyframe{
		{0, 0.10}, {3, 0.28}, {6, 0.30}, {10, 0.27}, {14, 0.24},
		{18, 0.22}, {25, 0.21}, {35, 0.17}, {45, 0.13}, {55, 0.10},
		{65, 0.08}, {75, 0.06}, {85, 0.05}, {100, 0.04},
	}
	remCurve = []keyframe{
		{0, 0.50}, {1, 0.40}, {3, 0.30}, {6, 0.25}, {10, 0.23},
		{18, 0.22}, {25, 0.22}, {45, 0.21}, {65, 0.19}, {75, 0.18},
		{100, 0.17},
	}
	wasoCurve = []keyframe{
		{0, 20}, {10, 16}, {18, 18}, {25, 22}, {35, 28}, {45, 35},
		{55, 44}, {65, 54}, {75, 66}, {85, 78}, {100, 90},
	}
	n1Curve = []keyframe{
		{0, 0.02}, {10, 0.03}, {25, 0.04}, {45, 0.06}, {65, 0.08},
		{85, 0.10}, {100, 0.12},
	}
)

// interpolate evaluates a curve at age with flat extrapolation past both
// endpoints and linear interpolation between bracketing breakpoints.
func interpolate(curve []keyframe, age float64) float64 {
	if age <= curve[0].age {
		return curve[0].value
	}
	last := curve[len(curve)-1]
	if age >= last.age {
		return last.value
	}
	for i := 1; i < len(curve); i++ {
		if age < curve[i].age {
			lo, hi := curve[i-1], curve[i]
			t := (age - lo.age) / (hi.age - lo.age)
			return lo.value + t*(hi.value-lo.value)
		}
	}
	return last.value
}

// ResolveProfile maps an age in years to its baseline sleep architecture.
// N2 is always the remainder, so the four fractions sum to exactly 1.0. If
// the three explicit curves ever sum past 0.95 the trio is rescaled and N2
// floored at 0.05, keeping N2 strictly positive.
func ResolveProfile(age int) AgeProfile {
	a := float64(clampInt(age, 0, 120))

	p := AgeProfile{
		TotalSleepTarget: interpolate(totalSleepCurve, a),
		N3Fraction:       interpolate(n3Curve, a),
		REMFraction:      interpolate(remCurve, a),
		N1Fraction:       interpolate(n1Curve, a),
		WASOTarget:       interpolate(wasoCurve, a),
	}

	sum := p.N3Fraction + p.REMFraction + p.N1Fraction
	if rem := 1 - sum; rem < 0.05 {
		scale := 0.95 / sum
		p.N3Fraction *= scale
		p.REMFraction *= scale
		p.N1Fraction *= scale
		p.N2Fraction = 0.05
	} else {
		p.N2Fraction = rem
	}
	return p
}
