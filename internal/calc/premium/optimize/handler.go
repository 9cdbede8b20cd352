package optimize

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	mix "MixLab/internal/calc/mix"
	"MixLab/internal/handlers"
	"MixLab/internal/observability"
)

type Handler struct {
	PriceBook mix.PriceBook
}

func (h *Handler) Optimize(w http.ResponseWriter, r *http.Request) {
	log := observability.LoggerFromContext(r.Context())
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	input.Params = h.PriceBook.Fill(input.Params)
	out, err := Run(input)
	if err != nil {
		observability.ObserveComputation("optimize", observability.OutcomeInvalid)
		log.Warn("optimization rejected", zap.Error(err))
		handlers.WriteError(w, mix.HTTPStatus(err), err.Error())
		return
	}
	observability.ObserveComputation("optimize", observability.OutcomeOK)
	observability.ObserveOptimizer(out.Optimized)
	log.Info("optimization finished",
		zap.Bool("optimized", out.Optimized),
		zap.Float64("water_cement_ratio", out.Result.WaterCementRatio),
		zap.Float64("scm_percent", out.Result.SCMPercent),
		zap.Float64("total_cost", out.Result.TotalCost),
	)
	handlers.WriteJSON(w, http.StatusOK, out)
}
