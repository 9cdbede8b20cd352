package mix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() Params {
	return Params{
		CementType:         "OPC 53",
		MaxAggregateSizeMM: 20,
		Exposure:           "Moderate",
		SlumpMM:            100,
		DensityKgM3:        2400,
		MoistureFA:         2,
		AbsorptionFA:       1,
		MoistureCA:         1,
		AbsorptionCA:       0.5,
		Costs:              Rates{Cement: 7, FineAgg: 0.9, CoarseAgg: 0.8, Water: 0.05, Admixture: 120, SCM: 3.5},
		CO2:                Rates{Cement: 0.9, FineAgg: 0.005, CoarseAgg: 0.0075, Water: 0.0003, Admixture: 1.5, SCM: 0.1},
	}
}

func TestCompute_ReferenceMix(t *testing.T) {
	res, err := Compute(0.5, 0, testParams())
	require.NoError(t, err)

	assert.Equal(t, 372.0, res.CementKg)
	assert.Equal(t, 0.0, res.SCMKg)
	assert.InDelta(t, 840.0, res.FineAggKg, 1e-9)
	assert.InDelta(t, 1560.0, res.CoarseAggKg, 1e-9)
	// 186 + 840*1% + 1560*0.5%
	assert.InDelta(t, 202.2, res.WaterKg, 1e-9)
	assert.Equal(t, 0.0, res.AdmixtureKg)
	assert.Equal(t, 0.5, res.WaterCementRatio)
	assert.Equal(t, 0.0, res.SCMPercent)
}

func TestCompute_CostAndCO2AreWeightedSums(t *testing.T) {
	p := testParams()
	res, err := Compute(0.5, 20, p)
	require.NoError(t, err)

	wantCost := res.CementKg*7 + res.FineAggKg*0.9 + res.CoarseAggKg*0.8 + res.WaterKg*0.05 + res.SCMKg*3.5
	wantCO2 := res.CementKg*0.9 + res.FineAggKg*0.005 + res.CoarseAggKg*0.0075 + res.WaterKg*0.0003 + res.SCMKg*0.1
	assert.InDelta(t, wantCost, res.TotalCost, 1e-9)
	assert.InDelta(t, wantCO2, res.TotalCO2Kg, 1e-9)
}

func TestCompute_SCMCarvedOutOfCement(t *testing.T) {
	res, err := Compute(0.5, 20, testParams())
	require.NoError(t, err)

	assert.InDelta(t, 74.4, res.SCMKg, 1e-9)
	assert.InDelta(t, 297.6, res.CementKg, 1e-9)
	assert.InDelta(t, 372.0, res.CementKg+res.SCMKg, 1e-9)
}

func TestCompute_ZeroSCMKeepsCementExact(t *testing.T) {
	for _, wc := range []float64{0.3, 0.37, 0.45, 0.5, 0.62, 0.7} {
		res, err := Compute(wc, 0, testParams())
		require.NoError(t, err)
		assert.Equal(t, 0.0, res.SCMKg)
		assert.Equal(t, round1(BaseWaterKgM3/wc), res.CementKg, "wc=%g", wc)
	}
}

func TestCompute_Admixture(t *testing.T) {
	p := testParams()
	p.UseAdmixture = true
	p.AdmixtureType = "Superplasticizer"
	p.AdmixtureDosage = 1.0

	res, err := Compute(0.5, 0, p)
	require.NoError(t, err)
	assert.InDelta(t, 3.72, res.AdmixtureKg, 1e-9)

	p.UseAdmixture = false
	res, err = Compute(0.5, 0, p)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.AdmixtureKg, "dosage ignored when admixture is off")
}

func TestCompute_AbsorptionReducesWater(t *testing.T) {
	p := testParams()
	p.MoistureFA, p.AbsorptionFA = 0, 1
	p.MoistureCA, p.AbsorptionCA = 0, 0.5

	res, err := Compute(0.5, 0, p)
	require.NoError(t, err)
	assert.InDelta(t, 186-8.4-7.8, res.WaterKg, 1e-9)
}

func TestCompute_AggregatesIndependentOfRatioAndSCM(t *testing.T) {
	a, err := Compute(0.35, 0, testParams())
	require.NoError(t, err)
	b, err := Compute(0.65, 40, testParams())
	require.NoError(t, err)

	assert.Equal(t, a.FineAggKg, b.FineAggKg)
	assert.Equal(t, a.CoarseAggKg, b.CoarseAggKg)
}

func TestCompute_PositiveOverValidRange(t *testing.T) {
	for wc := 0.3; wc <= 0.7; wc += 0.01 {
		for _, scm := range []float64{0, 15, 30, 60, 95} {
			res, err := Compute(wc, scm, testParams())
			require.NoError(t, err)
			assert.Greater(t, res.CementKg, 0.0)
			assert.Greater(t, res.WaterKg, 0.0)
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	p := testParams()
	p.UseAdmixture = true
	p.AdmixtureDosage = 0.8

	a, err := Compute(0.47, 25, p)
	require.NoError(t, err)
	b, err := Compute(0.47, 25, p)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCompute_MoreSCMMeansLessCement(t *testing.T) {
	prev, err := Compute(0.45, 0, testParams())
	require.NoError(t, err)
	for scm := 5.0; scm < 100; scm += 5 {
		res, err := Compute(0.45, scm, testParams())
		require.NoError(t, err)
		assert.Less(t, res.CementKg, prev.CementKg, "scm=%g", scm)
		prev = res
	}
}

func TestCompute_InvalidParameters(t *testing.T) {
	tests := []struct {
		name  string
		wc    float64
		scm   float64
		patch func(*Params)
	}{
		{name: "zero ratio", wc: 0, scm: 0},
		{name: "negative ratio", wc: -0.5, scm: 0},
		{name: "negative scm", wc: 0.5, scm: -1},
		{name: "scm 100", wc: 0.5, scm: 100},
		{name: "zero density", wc: 0.5, patch: func(p *Params) { p.DensityKgM3 = 0 }},
		{name: "negative dosage", wc: 0.5, patch: func(p *Params) {
			p.UseAdmixture = true
			p.AdmixtureDosage = -1
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			if tt.patch != nil {
				tt.patch(&p)
			}
			_, err := Compute(tt.wc, tt.scm, p)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 372.0, round1(372.04))
	assert.Equal(t, 357.7, round1(357.6923))
	assert.Equal(t, 0.2, round1(0.25))
	assert.Equal(t, -7.8, round1(-7.8))
	// Decided on the stored binary value, not on v*10.
	assert.Equal(t, 4.7, round1(4.65))
	assert.Equal(t, 251.3, round1(502.7*50/100))
	assert.Equal(t, 0.1, round1(0.15))
}

func TestCompute_SCMRoundsStoredValue(t *testing.T) {
	res, err := Compute(0.37, 50, testParams())
	require.NoError(t, err)
	assert.Equal(t, 251.3, res.SCMKg)
	assert.InDelta(t, 251.4, res.CementKg, 1e-9)

	res, err = Compute(0.4, 1, testParams())
	require.NoError(t, err)
	assert.Equal(t, 4.7, res.SCMKg)
	assert.InDelta(t, 460.3, res.CementKg, 1e-9)
}
