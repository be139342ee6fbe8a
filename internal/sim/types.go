package sim

import "errors"

// Stage is a scored sleep stage. WAKE covers latency and WASO blocks; the
// remaining stages are the standard AASM non-REM depths plus REM.
type Stage string

const (
	StageWake Stage = "WAKE"
	StageN1   Stage = "N1"
	StageN2   Stage = "N2"
	StageN3   Stage = "N3"
	StageREM  Stage = "REM"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type Chronotype string

const (
	ChronotypeLark   Chronotype = "lark"
	ChronotypeNormal Chronotype = "normal"
	ChronotypeOwl    Chronotype = "owl"
)

type CaffeineMetabolism string

const (
	MetabolismFast   CaffeineMetabolism = "fast"
	MetabolismNormal CaffeineMetabolism = "normal"
	MetabolismSlow   CaffeineMetabolism = "slow"
)

// Configuration is the full input to one simulation run. Units: Age in years,
// CaffeineTime in hours before intended bedtime, Alcohol/Caffeine in standard
// drinks / cup-equivalents, SDBSeverity on a 0-10 index.
//
// The engine clamps out-of-range numeric fields into their documented ranges
// instead of rejecting them; enum fields fall back to their neutral value.
type Configuration struct {
	Age                int                `json:"age" yaml:"age"`
	Gender             Gender             `json:"gender" yaml:"gender"`
	Alcohol            int                `json:"alcohol" yaml:"alcohol"`
	Caffeine           int                `json:"caffeine" yaml:"caffeine"`
	CaffeineTime       float64            `json:"caffeine_time" yaml:"caffeine_time"`
	CaffeineMetabolism CaffeineMetabolism `json:"caffeine_metabolism" yaml:"caffeine_metabolism"`
	SDBSeverity        int                `json:"sdb_severity" yaml:"sdb_severity"`
	Nocturia           int                `json:"nocturia" yaml:"nocturia"`
	Chronotype         Chronotype         `json:"chronotype" yaml:"chronotype"`
	SocialJetLag       bool               `json:"social_jet_lag" yaml:"social_jet_lag"`
	BlueLight          bool               `json:"blue_light" yaml:"blue_light"`
	IsMenopausal       bool               `json:"is_menopausal" yaml:"is_menopausal"`
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// normalized returns a copy with every field forced into its documented range.
func (c Configuration) normalized() Configuration {
	c.Age = clampInt(c.Age, 0, 120)
	c.Alcohol = clampInt(c.Alcohol, 0, 10)
	c.Caffeine = clampInt(c.Caffeine, 0, 10)
	c.CaffeineTime = clampFloat(c.CaffeineTime, 0, 24)
	c.SDBSeverity = clampInt(c.SDBSeverity, 0, 10)
	c.Nocturia = clampInt(c.Nocturia, 0, 10)
	switch c.Gender {
	case GenderMale, GenderFemale, GenderOther:
	default:
		c.Gender = GenderOther
	}
	switch c.Chronotype {
	case ChronotypeLark, ChronotypeNormal, ChronotypeOwl:
	default:
		c.Chronotype = ChronotypeNormal
	}
	switch c.CaffeineMetabolism {
	case MetabolismFast, MetabolismNormal, MetabolismSlow:
	default:
		c.CaffeineMetabolism = MetabolismNormal
	}
	return c
}

// AgeProfile is the baseline sleep architecture for one age, before any
// lifestyle modifier is applied. Fractions always sum to exactly 1.0.
type AgeProfile struct {
	TotalSleepTarget float64 `json:"total_sleep_target"`
	N3Fraction       float64 `json:"n3_fraction"`
	REMFraction      float64 `json:"rem_fraction"`
	N1Fraction       float64 `json:"n1_fraction"`
	N2Fraction       float64 `json:"n2_fraction"`
	WASOTarget       float64 `json:"waso_target"`
}

// AdjustedTargets is the same shape after the modifier pipeline has run.
type AdjustedTargets struct {
	TotalSleepTarget float64
	N3Fraction       float64
	REMFraction      float64
	N1Fraction       float64
	N2Fraction       float64
	WASOTarget       float64
}

// StageBlock is one timed interval of the hypnogram. Start is minutes from
// the 18:00 reference origin once the anchor/chronotype shift is applied.
type StageBlock struct {
	Stage    Stage   `json:"stage"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// WakeEvent is a brief micro-arousal marker drawn over the hypnogram. It is
// a rendering overlay only and never participates in sleep/time-in-bed
// accounting.
type WakeEvent struct {
	Time     float64 `json:"time"`
	Duration float64 `json:"duration"`
}

type ResultParams struct {
	Chronotype       Chronotype `json:"chronotype"`
	StartTimeOffset  float64    `json:"start_time_offset"`
	ActualTotalSleep float64    `json:"actual_total_sleep"`
	TimeInBed        float64    `json:"time_in_bed"`
}

type ResultStats struct {
	N3Fraction             float64 `json:"n3_fraction"`
	REMFraction            float64 `json:"rem_fraction"`
	N1Fraction             float64 `json:"n1_fraction"`
	N2Fraction             float64 `json:"n2_fraction"`
	WASOMinutes            float64 `json:"waso_minutes"`
	ActualTotalSleep       float64 `json:"actual_total_sleep"`
	TimeInBed              float64 `json:"time_in_bed"`
	SleepEfficiencyPercent float64 `json:"sleep_efficiency_percent"`
	LatencyMinutes         float64 `json:"latency_minutes"`
}

// SimulationResult is created fresh on every Generate call and never mutated
// afterwards.
type SimulationResult struct {
	Blocks     []StageBlock `json:"blocks"`
	WakeEvents []WakeEvent  `json:"wake_events"`
	Params     ResultParams `json:"params"`
	Stats      ResultStats  `json:"stats"`
}

// ErrZeroTimeInBed is returned instead of NaN statistics when a run produced
// no elapsed time at all.
var ErrZeroTimeInBed = errors.New("sim: time in bed is zero, efficiency undefined")
