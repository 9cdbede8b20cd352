package recommend

import (
	"fmt"

	mix "MixLab/internal/calc/mix"
)

type Limits struct {
	MinCementKg    float64 `json:"min_cement_kg"`
	MaxWaterCement float64 `json:"max_water_cement"`
}

// Durability limits for reinforced concrete by exposure class.
var exposures = map[string]Limits{
	"Mild":        {MinCementKg: 300, MaxWaterCement: 0.55},
	"Moderate":    {MinCementKg: 300, MaxWaterCement: 0.50},
	"Severe":      {MinCementKg: 320, MaxWaterCement: 0.45},
	"Very Severe": {MinCementKg: 340, MaxWaterCement: 0.45},
	"Extreme":     {MinCementKg: 360, MaxWaterCement: 0.40},
}

func LookupExposure(name string) (Limits, error) {
	l, ok := exposures[name]
	if !ok {
		return Limits{}, fmt.Errorf("%w: unknown exposure %q", mix.ErrInvalidParameter, name)
	}
	return l, nil
}

type ExposureInput struct {
	Exposure         string  `json:"exposure"`
	WaterCementRatio float64 `json:"water_cement_ratio"`
	CementKg         float64 `json:"cement_kg"`
}

type ExposureResult struct {
	Exposure      string `json:"exposure"`
	Limits        Limits `json:"limits"`
	OKWaterCement bool   `json:"ok_water_cement"`
	OKCement      bool   `json:"ok_cement"`
	Notes         string `json:"notes"`
}

// Check compares a proposed w/c and cement content against the exposure
// class limits. It is advisory and never changes a computed mix.
func Check(in ExposureInput) (ExposureResult, error) {
	l, err := LookupExposure(in.Exposure)
	if err != nil {
		return ExposureResult{}, err
	}
	if in.WaterCementRatio <= 0 || in.CementKg < 0 {
		return ExposureResult{}, fmt.Errorf("%w: water-cement ratio must be positive and cement non-negative", mix.ErrInvalidParameter)
	}
	return ExposureResult{
		Exposure:      in.Exposure,
		Limits:        l,
		OKWaterCement: in.WaterCementRatio <= l.MaxWaterCement,
		OKCement:      in.CementKg >= l.MinCementKg,
		Notes:         "Durability limits for reinforced concrete.",
	}, nil
}
