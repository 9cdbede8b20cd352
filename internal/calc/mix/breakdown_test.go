package mix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakdowns_OrderAndTotals(t *testing.T) {
	p := testParams()
	p.UseAdmixture = true
	p.AdmixtureDosage = 1
	res, err := Compute(0.45, 30, p)
	require.NoError(t, err)

	wantOrder := []string{MaterialCement, MaterialFineAgg, MaterialCoarseAgg, MaterialWater, MaterialAdmixture, MaterialSCM}

	sum := func(items []Item) float64 {
		total := 0.0
		for _, it := range items {
			total += it.Value
		}
		return total
	}
	names := func(items []Item) []string {
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.Material
		}
		return out
	}

	cost := CostBreakdown(res, p)
	co2 := CO2Breakdown(res, p)
	comp := Composition(res)

	assert.Equal(t, wantOrder, names(cost))
	assert.Equal(t, wantOrder, names(co2))
	assert.Equal(t, wantOrder, names(comp))
	assert.InDelta(t, res.TotalCost, sum(cost), 1e-9)
	assert.InDelta(t, res.TotalCO2Kg, sum(co2), 1e-9)
	assert.Equal(t, res.CementKg, comp[0].Value)
	assert.Equal(t, res.SCMKg, comp[5].Value)
	assert.InDelta(t, res.SCMKg*3.5, cost[5].Value, 1e-9)
}

func TestPriceBookFill(t *testing.T) {
	book := DefaultPriceBook()

	filled := book.Fill(Params{DensityKgM3: 2400})
	assert.Equal(t, book.Costs, filled.Costs)
	assert.Equal(t, book.CO2, filled.CO2)

	own := Rates{Cement: 9}
	kept := book.Fill(Params{Costs: own})
	assert.Equal(t, own, kept.Costs, "caller rates win")
	assert.Equal(t, book.CO2, kept.CO2)
}

func TestRatesNegative(t *testing.T) {
	assert.False(t, DefaultPriceBook().Costs.Negative())
	assert.True(t, Rates{Water: -0.1}.Negative())
}
