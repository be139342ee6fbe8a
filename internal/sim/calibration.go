package sim

// Calibration collects every tunable constant of the sleep model. Defaults
// follow the current model revision; any field can be overridden from service
// config for side-by-side recalibration.
type Calibration struct {
	// FractionCeiling caps N3+REM+N1 so N2 can never go negative.
	FractionCeiling float64 `json:"fraction_ceiling" yaml:"fraction_ceiling"`

	// CycleMinutes is the nominal length of one sleep cycle.
	CycleMinutes float64 `json:"cycle_minutes" yaml:"cycle_minutes"`

	// WASOChunkMinutes is the approximate size of one scheduled WASO chunk.
	WASOChunkMinutes float64 `json:"waso_chunk_minutes" yaml:"waso_chunk_minutes"`

	// Alcohol effects. Floors are fractions of the unmodified value.
	AlcoholWASOPerDrink float64 `json:"alcohol_waso_per_drink" yaml:"alcohol_waso_per_drink"`
	AlcoholN3Floor      float64 `json:"alcohol_n3_floor" yaml:"alcohol_n3_floor"`
	AlcoholREMFloor     float64 `json:"alcohol_rem_floor" yaml:"alcohol_rem_floor"`

	// MaleN3Factor defaults to 1.0; set 0.7 to reproduce the older model.
	MaleN3Factor float64 `json:"male_n3_factor" yaml:"male_n3_factor"`

	// Menopause effects.
	MenopauseWASO     float64 `json:"menopause_waso" yaml:"menopause_waso"`
	MenopauseN3Factor float64 `json:"menopause_n3_factor" yaml:"menopause_n3_factor"`

	// Sleep-disordered-breathing effects, all scaled by severity/10.
	SDBN3ReductionMax    float64 `json:"sdb_n3_reduction_max" yaml:"sdb_n3_reduction_max"`
	SDBREMReductionMax   float64 `json:"sdb_rem_reduction_max" yaml:"sdb_rem_reduction_max"`
	SDBWASOMax           float64 `json:"sdb_waso_max" yaml:"sdb_waso_max"`
	SDBN1Max             float64 `json:"sdb_n1_max" yaml:"sdb_n1_max"`
	SDBTotalSleepLossMax float64 `json:"sdb_total_sleep_loss_max" yaml:"sdb_total_sleep_loss_max"`

	SocialJetLagN3Factor float64 `json:"social_jet_lag_n3_factor" yaml:"social_jet_lag_n3_factor"`

	// Micro-arousal overlay sizing. The count is a pointer so an explicit 0
	// (no severity-driven arousals) is distinguishable from "keep the
	// default".
	MicroArousalsPerSDBPoint *int    `json:"micro_arousals_per_sdb_point" yaml:"micro_arousals_per_sdb_point"`
	MicroArousalMaxDuration  float64 `json:"micro_arousal_max_duration" yaml:"micro_arousal_max_duration"`
}

// withDefaults fills every zero-valued field from DefaultCalibration so a
// partial override table is always usable.
func (c Calibration) withDefaults() Calibration {
	def := DefaultCalibration()
	fill := func(v *float64, d float64) {
		if *v <= 0 {
			*v = d
		}
	}
	fill(&c.FractionCeiling, def.FractionCeiling)
	fill(&c.CycleMinutes, def.CycleMinutes)
	fill(&c.WASOChunkMinutes, def.WASOChunkMinutes)
	fill(&c.AlcoholWASOPerDrink, def.AlcoholWASOPerDrink)
	fill(&c.AlcoholN3Floor, def.AlcoholN3Floor)
	fill(&c.AlcoholREMFloor, def.AlcoholREMFloor)
	fill(&c.MaleN3Factor, def.MaleN3Factor)
	fill(&c.MenopauseWASO, def.MenopauseWASO)
	fill(&c.MenopauseN3Factor, def.MenopauseN3Factor)
	fill(&c.SDBN3ReductionMax, def.SDBN3ReductionMax)
	fill(&c.SDBREMReductionMax, def.SDBREMReductionMax)
	fill(&c.SDBWASOMax, def.SDBWASOMax)
	fill(&c.SDBN1Max, def.SDBN1Max)
	fill(&c.SDBTotalSleepLossMax, def.SDBTotalSleepLossMax)
	fill(&c.SocialJetLagN3Factor, def.SocialJetLagN3Factor)
	fill(&c.MicroArousalMaxDuration, def.MicroArousalMaxDuration)
	if c.MicroArousalsPerSDBPoint == nil {
		c.MicroArousalsPerSDBPoint = intp(*def.MicroArousalsPerSDBPoint)
	}
	return c
}

func intp(v int) *int { return &v }

// DefaultCalibration returns the current model constants.
func DefaultCalibration() Calibration {
	return Calibration{
		FractionCeiling:          0.95,
		CycleMinutes:             90,
		WASOChunkMinutes:         15,
		AlcoholWASOPerDrink:      20,
		AlcoholN3Floor:           0.5,
		AlcoholREMFloor:          0.6,
		MaleN3Factor:             1.0,
		MenopauseWASO:            40,
		MenopauseN3Factor:        0.85,
		SDBN3ReductionMax:        0.8,
		SDBREMReductionMax:       0.3,
		SDBWASOMax:               70,
		SDBN1Max:                 0.18,
		SDBTotalSleepLossMax:     60,
		SocialJetLagN3Factor:     0.85,
		MicroArousalsPerSDBPoint: intp(5),
		MicroArousalMaxDuration:  13,
	}
}
