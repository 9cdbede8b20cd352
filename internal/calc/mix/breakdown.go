package mix

// Item is one labelled value of a per-material table.
type Item struct {
	Material string  `json:"material"`
	Value    float64 `json:"value"`
}

const (
	MaterialCement    = "Cement"
	MaterialFineAgg   = "Fine Aggregate"
	MaterialCoarseAgg = "Coarse Aggregate"
	MaterialWater     = "Water"
	MaterialAdmixture = "Admixture"
	MaterialSCM       = "SCM"
)

func (r Result) masses() [6]float64 {
	return [6]float64{r.CementKg, r.FineAggKg, r.CoarseAggKg, r.WaterKg, r.AdmixtureKg, r.SCMKg}
}

func (rt Rates) values() [6]float64 {
	return [6]float64{rt.Cement, rt.FineAgg, rt.CoarseAgg, rt.Water, rt.Admixture, rt.SCM}
}

var materials = [6]string{MaterialCement, MaterialFineAgg, MaterialCoarseAgg, MaterialWater, MaterialAdmixture, MaterialSCM}

// Composition lists the mass of each material in kg/m³.
func Composition(r Result) []Item {
	return table(r.masses(), [6]float64{1, 1, 1, 1, 1, 1})
}

func CostBreakdown(r Result, p Params) []Item {
	return table(r.masses(), p.Costs.values())
}

func CO2Breakdown(r Result, p Params) []Item {
	return table(r.masses(), p.CO2.values())
}

func table(masses, rates [6]float64) []Item {
	out := make([]Item, 0, len(materials))
	for i, name := range materials {
		out = append(out, Item{Material: name, Value: masses[i] * rates[i]})
	}
	return out
}

// Summary is what the calc endpoints hand back to the UI.
type Summary struct {
	Result      Result `json:"result"`
	Composition []Item `json:"composition"`
	Cost        []Item `json:"cost_breakdown"`
	CO2         []Item `json:"co2_breakdown"`
}

func Summarize(r Result, p Params) Summary {
	return Summary{
		Result:      r,
		Composition: Composition(r),
		Cost:        CostBreakdown(r, p),
		CO2:         CO2Breakdown(r, p),
	}
}
