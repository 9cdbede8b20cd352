package batch

import (
	"fmt"

	mix "MixLab/internal/calc/mix"
)

type Item struct {
	Label            string     `json:"label"`
	WaterCementRatio float64    `json:"water_cement_ratio"`
	SCMPercent       float64    `json:"scm_percent"`
	Params           mix.Params `json:"params"`
}

type MixBatchInput struct {
	Items []Item `json:"items"`
}

type LabeledResult struct {
	Label  string     `json:"label"`
	Result mix.Result `json:"result"`
}

type MixBatchResult struct {
	Results []LabeledResult `json:"results"`
}

func Calculate(in MixBatchInput) (MixBatchResult, error) {
	if len(in.Items) == 0 {
		return MixBatchResult{}, fmt.Errorf("%w: no items", mix.ErrInvalidParameter)
	}
	out := MixBatchResult{Results: make([]LabeledResult, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := mix.Compute(item.WaterCementRatio, item.SCMPercent, item.Params)
		if err != nil {
			return MixBatchResult{}, fmt.Errorf("item %d: %w", i, err)
		}
		out.Results = append(out.Results, LabeledResult{Label: item.Label, Result: res})
	}
	return out, nil
}
