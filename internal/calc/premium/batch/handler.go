package batch

import (
	"encoding/json"
	"net/http"

	mix "MixLab/internal/calc/mix"
	"MixLab/internal/handlers"
	"MixLab/internal/observability"
)

type Handler struct {
	PriceBook mix.PriceBook
}

func (h *Handler) Mix(w http.ResponseWriter, r *http.Request) {
	var input MixBatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	for i := range input.Items {
		input.Items[i].Params = h.PriceBook.Fill(input.Items[i].Params)
	}
	res, err := Calculate(input)
	if err != nil {
		observability.ObserveComputation("batch", observability.OutcomeInvalid)
		handlers.WriteError(w, mix.HTTPStatus(err), err.Error())
		return
	}
	observability.ObserveComputation("batch", observability.OutcomeOK)
	handlers.WriteJSON(w, http.StatusOK, res)
}
