package mix

// PriceBook holds default unit costs and CO₂ factors, used when a request
// does not carry its own.
type PriceBook struct {
	Costs Rates `json:"costs" yaml:"costs"`
	CO2   Rates `json:"co2" yaml:"co2"`
}

func DefaultPriceBook() PriceBook {
	return PriceBook{
		Costs: Rates{Cement: 7.0, FineAgg: 0.9, CoarseAgg: 0.8, Water: 0.05, Admixture: 120, SCM: 3.5},
		CO2:   Rates{Cement: 0.9, FineAgg: 0.005, CoarseAgg: 0.0075, Water: 0.0003, Admixture: 1.5, SCM: 0.1},
	}
}

// Fill copies the book's rates into p where p has none.
func (b PriceBook) Fill(p Params) Params {
	if p.Costs == (Rates{}) {
		p.Costs = b.Costs
	}
	if p.CO2 == (Rates{}) {
		p.CO2 = b.CO2
	}
	return p
}

func (r Rates) Negative() bool {
	for _, v := range r.values() {
		if v < 0 {
			return true
		}
	}
	return false
}
