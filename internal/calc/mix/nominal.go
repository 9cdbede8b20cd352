package mix

import (
	"fmt"
	"strconv"
	"strings"
)

// DryVolumeFactor converts wet volume to dry volume of materials.
const DryVolumeFactor = 1.54

// Proportion is a nominal C : FA : CA ratio by parts.
type Proportion struct {
	Cement float64 `json:"cement"`
	Fine   float64 `json:"fine"`
	Coarse float64 `json:"coarse"`
}

func (p Proportion) Total() float64 {
	return p.Cement + p.Fine + p.Coarse
}

func (p Proportion) String() string {
	return fmt.Sprintf("%s : %s : %s", formatPart(p.Cement), formatPart(p.Fine), formatPart(p.Coarse))
}

func formatPart(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var grades = map[string]Proportion{
	"M15": {1, 2, 4},
	"M20": {1, 1.5, 3},
	"M25": {1, 1, 2},
	"M30": {1, 0.8, 1.6},
	"M35": {1, 0.6, 1.2},
	"M40": {1, 0.5, 1},
}

// Grades returns the supported grade names in ascending strength.
func Grades() []string {
	return []string{"M15", "M20", "M25", "M30", "M35", "M40"}
}

func LookupGrade(grade string) (Proportion, error) {
	p, ok := grades[grade]
	if !ok {
		return Proportion{}, fmt.Errorf("%w: unknown grade %q, want one of %s", ErrInvalidParameter, grade, strings.Join(Grades(), ", "))
	}
	return p, nil
}

type NominalInput struct {
	Grade            string  `json:"grade"`
	WaterCementRatio float64 `json:"water_cement_ratio"`
	CementContent    float64 `json:"cement_content"`
}

type NominalResult struct {
	Grade       string     `json:"grade"`
	Ratio       string     `json:"ratio"`
	Proportion  Proportion `json:"proportion"`
	CementKg    float64    `json:"cement_kg"`
	WaterKg     float64    `json:"water_kg"`
	FineAggKg   float64    `json:"fine_agg_kg"`
	CoarseAggKg float64    `json:"coarse_agg_kg"`
	Notes       string     `json:"notes"`
}

// Nominal estimates quantities from the grade's nominal ratio and a given
// cement content.
func Nominal(in NominalInput) (NominalResult, error) {
	prop, err := LookupGrade(in.Grade)
	if err != nil {
		return NominalResult{}, err
	}
	if in.WaterCementRatio <= 0 || in.CementContent <= 0 {
		return NominalResult{}, fmt.Errorf("%w: water-cement ratio and cement content must be positive", ErrInvalidParameter)
	}
	total := prop.Total()
	cement := in.CementContent
	return NominalResult{
		Grade:       in.Grade,
		Ratio:       prop.String(),
		Proportion:  prop,
		CementKg:    cement,
		WaterKg:     round1(cement * in.WaterCementRatio),
		FineAggKg:   round1(cement * DryVolumeFactor * prop.Fine / total),
		CoarseAggKg: round1(cement * DryVolumeFactor * prop.Coarse / total),
		Notes:       "Simplified nominal-mix estimate. Lab trials are necessary for structural design.",
	}, nil
}
