package mix

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidParameter is returned for inputs outside the calculator's domain.
var ErrInvalidParameter = errors.New("invalid parameter")

const (
	// BaseWaterKgM3 is the fixed free-water demand. It does not depend on slump
	// or aggregate size.
	BaseWaterKgM3 = 186.0

	FineAggFraction   = 0.35
	CoarseAggFraction = 0.65

	DefaultDensityKgM3 = 2400.0
)

type Rates struct {
	Cement    float64 `json:"cement" yaml:"cement"`
	FineAgg   float64 `json:"fine_agg" yaml:"fine_agg"`
	CoarseAgg float64 `json:"coarse_agg" yaml:"coarse_agg"`
	Water     float64 `json:"water" yaml:"water"` // per litre, 1 kg = 1 L
	Admixture float64 `json:"admixture" yaml:"admixture"`
	SCM       float64 `json:"scm" yaml:"scm"`
}

type Params struct {
	CementType         string  `json:"cement_type"`
	MaxAggregateSizeMM float64 `json:"max_aggregate_size_mm"`
	Exposure           string  `json:"exposure"`
	SlumpMM            float64 `json:"slump_mm"`
	DensityKgM3        float64 `json:"density_kg_m3"`
	MoistureFA         float64 `json:"moisture_fa"`
	AbsorptionFA       float64 `json:"absorption_fa"`
	MoistureCA         float64 `json:"moisture_ca"`
	AbsorptionCA       float64 `json:"absorption_ca"`
	UseAdmixture       bool    `json:"use_admixture"`
	AdmixtureType      string  `json:"admixture_type"`
	AdmixtureDosage    float64 `json:"admixture_dosage"` // % of cement mass
	Costs              Rates   `json:"costs"`
	CO2                Rates   `json:"co2"`
}

type Result struct {
	CementKg         float64 `json:"cement_kg"`
	SCMKg            float64 `json:"scm_kg"`
	WaterKg          float64 `json:"water_kg"`
	FineAggKg        float64 `json:"fine_agg_kg"`
	CoarseAggKg      float64 `json:"coarse_agg_kg"`
	AdmixtureKg      float64 `json:"admixture_kg"`
	TotalCost        float64 `json:"total_cost"`
	TotalCO2Kg       float64 `json:"total_co2_kg"`
	WaterCementRatio float64 `json:"water_cement_ratio"`
	SCMPercent       float64 `json:"scm_percent"`
}

// Compute evaluates one mix for the given water-cement ratio and SCM
// replacement percentage.
func Compute(waterCementRatio, scmPercent float64, p Params) (Result, error) {
	if math.IsNaN(waterCementRatio) || waterCementRatio <= 0 {
		return Result{}, fmt.Errorf("%w: water-cement ratio must be positive, got %g", ErrInvalidParameter, waterCementRatio)
	}
	if math.IsNaN(scmPercent) || scmPercent < 0 || scmPercent >= 100 {
		return Result{}, fmt.Errorf("%w: scm percent must be in [0, 100), got %g", ErrInvalidParameter, scmPercent)
	}
	if math.IsNaN(p.DensityKgM3) || p.DensityKgM3 <= 0 {
		return Result{}, fmt.Errorf("%w: density must be positive, got %g", ErrInvalidParameter, p.DensityKgM3)
	}
	if p.UseAdmixture && (math.IsNaN(p.AdmixtureDosage) || p.AdmixtureDosage < 0) {
		return Result{}, fmt.Errorf("%w: admixture dosage must be non-negative, got %g", ErrInvalidParameter, p.AdmixtureDosage)
	}

	cement := round1(BaseWaterKgM3 / waterCementRatio)
	scm := 0.0
	if scmPercent > 0 {
		scm = round1(cement * scmPercent / 100.0)
		cement -= scm
	}

	admixture := 0.0
	if p.UseAdmixture {
		admixture = cement * p.AdmixtureDosage / 100.0
	}

	fine := round1(FineAggFraction * p.DensityKgM3)
	coarse := round1(CoarseAggFraction * p.DensityKgM3)

	// Surface moisture adds free water; absorption takes it away.
	extraFA := fine * (p.MoistureFA - p.AbsorptionFA) / 100.0
	extraCA := coarse * (p.MoistureCA - p.AbsorptionCA) / 100.0
	water := round1(BaseWaterKgM3 + extraFA + extraCA)

	r := Result{
		CementKg:         cement,
		SCMKg:            scm,
		WaterKg:          water,
		FineAggKg:        fine,
		CoarseAggKg:      coarse,
		AdmixtureKg:      admixture,
		WaterCementRatio: waterCementRatio,
		SCMPercent:       scmPercent,
	}
	r.TotalCost = r.weigh(p.Costs)
	r.TotalCO2Kg = r.weigh(p.CO2)
	return r, nil
}

func (r Result) weigh(rates Rates) float64 {
	return r.CementKg*rates.Cement +
		r.FineAggKg*rates.FineAgg +
		r.CoarseAggKg*rates.CoarseAgg +
		r.WaterKg*rates.Water +
		r.AdmixtureKg*rates.Admixture +
		r.SCMKg*rates.SCM
}

// round1 rounds the exact binary value of v to one decimal place. Only true
// ties go to even, so 4.65 (stored just above) becomes 4.7.
func round1(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	return r
}
