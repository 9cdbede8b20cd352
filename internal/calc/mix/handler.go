package mix

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"MixLab/internal/handlers"
	"MixLab/internal/observability"
)

type Request struct {
	WaterCementRatio float64 `json:"water_cement_ratio"`
	SCMPercent       float64 `json:"scm_percent"`
	Params           Params  `json:"params"`
}

type Handler struct {
	PriceBook PriceBook
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	log := observability.LoggerFromContext(r.Context())
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	params := h.PriceBook.Fill(req.Params)
	res, err := Compute(req.WaterCementRatio, req.SCMPercent, params)
	if err != nil {
		observability.ObserveComputation("calc", observability.OutcomeInvalid)
		log.Warn("mix rejected", zap.Error(err))
		handlers.WriteError(w, HTTPStatus(err), err.Error())
		return
	}
	observability.ObserveComputation("calc", observability.OutcomeOK)
	log.Info("mix computed",
		zap.Float64("water_cement_ratio", res.WaterCementRatio),
		zap.Float64("scm_percent", res.SCMPercent),
		zap.Float64("total_cost", res.TotalCost),
		zap.Float64("total_co2_kg", res.TotalCO2Kg),
	)
	handlers.WriteJSON(w, http.StatusOK, Summarize(res, params))
}

func (h *Handler) Nominal(w http.ResponseWriter, r *http.Request) {
	var input NominalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	res, err := Nominal(input)
	if err != nil {
		observability.ObserveComputation("nominal", observability.OutcomeInvalid)
		handlers.WriteError(w, HTTPStatus(err), err.Error())
		return
	}
	observability.ObserveComputation("nominal", observability.OutcomeOK)
	handlers.WriteJSON(w, http.StatusOK, res)
}

// HTTPStatus maps calculator errors onto HTTP status codes.
func HTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidParameter) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
