package optimize

import (
	"math"

	mix "MixLab/internal/calc/mix"
)

const (
	MinRatio  = 0.3
	MaxRatio  = 0.7
	RatioStep = 0.01
)

// SCMGrid is the fixed set of replacement percentages tried by the search.
var SCMGrid = []float64{0, 10, 20, 30, 40, 50}

type Point struct {
	WaterCementRatio float64 `json:"water_cement_ratio"`
	SCMPercent       float64 `json:"scm_percent"`
}

type Constraints struct {
	MinCementKg    float64 `json:"min_cement_kg"`
	MaxWaterCement float64 `json:"max_water_cement"`
}

func DefaultConstraints() Constraints {
	return Constraints{MinCementKg: 300, MaxWaterCement: 0.6}
}

func (c Constraints) Feasible(r mix.Result) bool {
	return r.CementKg >= c.MinCementKg && r.WaterCementRatio <= c.MaxWaterCement
}

// Ratios returns base±1 and ±2 steps in ascending order, dropping values
// outside [MinRatio, MaxRatio]. Only accumulated float noise is rounded away,
// so a base off the 0.01 step keeps its own decimals.
func Ratios(base float64) []float64 {
	out := make([]float64, 0, 5)
	for k := -2; k <= 2; k++ {
		v := math.Round((base+float64(k)*RatioStep)*1e9) / 1e9
		if v < MinRatio || v > MaxRatio {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Grid enumerates ratios (outer) by SCM percentages (inner).
func Grid(base float64) []Point {
	ratios := Ratios(base)
	out := make([]Point, 0, len(ratios)*len(SCMGrid))
	for _, wc := range ratios {
		for _, scm := range SCMGrid {
			out = append(out, Point{WaterCementRatio: wc, SCMPercent: scm})
		}
	}
	return out
}

// Optimize returns the cheapest feasible mix on the grid around base. ok is
// false when no grid point is feasible.
func Optimize(base float64, p mix.Params) (best mix.Result, ok bool, err error) {
	return DefaultConstraints().Optimize(base, p)
}

func (c Constraints) Optimize(base float64, p mix.Params) (best mix.Result, ok bool, err error) {
	for _, pt := range Grid(base) {
		res, err := mix.Compute(pt.WaterCementRatio, pt.SCMPercent, p)
		if err != nil {
			return mix.Result{}, false, err
		}
		if !c.Feasible(res) {
			continue
		}
		if !ok || res.TotalCost < best.TotalCost {
			best, ok = res, true
		}
	}
	return best, ok, nil
}

type Input struct {
	WaterCementRatio float64    `json:"water_cement_ratio"`
	SCMPercent       float64    `json:"scm_percent"`
	Params           mix.Params `json:"params"`
}

type Output struct {
	mix.Summary
	Optimized bool   `json:"optimized"`
	Notes     string `json:"notes"`
}

// Run searches the grid and falls back to a direct evaluation at the
// caller's own inputs when nothing is feasible.
func Run(in Input) (Output, error) {
	best, ok, err := Optimize(in.WaterCementRatio, in.Params)
	if err != nil {
		return Output{}, err
	}
	if ok {
		return Output{
			Optimized: true,
			Summary:   mix.Summarize(best, in.Params),
			Notes:     "Cheapest feasible mix on the w/c and SCM grid.",
		}, nil
	}
	res, err := mix.Compute(in.WaterCementRatio, in.SCMPercent, in.Params)
	if err != nil {
		return Output{}, err
	}
	return Output{
		Optimized: false,
		Summary:   mix.Summarize(res, in.Params),
		Notes:     "No feasible mix on the grid; showing the unoptimized mix.",
	}, nil
}
