package recommend

import (
	"encoding/json"
	"net/http"

	mix "MixLab/internal/calc/mix"
	"MixLab/internal/handlers"
	"MixLab/internal/observability"
)

type Handler struct{}

func (h *Handler) Exposure(w http.ResponseWriter, r *http.Request) {
	var input ExposureInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	res, err := Check(input)
	if err != nil {
		observability.ObserveComputation("exposure", observability.OutcomeInvalid)
		handlers.WriteError(w, mix.HTTPStatus(err), err.Error())
		return
	}
	observability.ObserveComputation("exposure", observability.OutcomeOK)
	handlers.WriteJSON(w, http.StatusOK, res)
}
