package importer

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	mix "MixLab/internal/calc/mix"
	"MixLab/internal/handlers"
	"MixLab/internal/observability"
)

const maxUploadSize = 10 << 20 // 10MB

type Handler struct {
	PriceBook mix.PriceBook
}

func (h *Handler) Mix(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "File required")
		return
	}
	defer file.Close()

	var params mix.Params
	if raw := r.FormValue("params"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &params); err != nil {
			handlers.WriteError(w, http.StatusBadRequest, "Invalid params")
			return
		}
	}
	params = h.PriceBook.Fill(params)
	if params.DensityKgM3 <= 0 {
		params.DensityKgM3 = mix.DefaultDensityKgM3
	}

	res, err := Import(file, params)
	if err != nil {
		observability.ObserveComputation("import", observability.OutcomeInvalid)
		handlers.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	observability.ObserveComputation("import", observability.OutcomeOK)
	observability.LoggerFromContext(r.Context()).Info("workbook imported",
		zap.Int("count", res.Count),
		zap.Int("skipped", res.Skipped),
	)
	handlers.WriteJSON(w, http.StatusOK, res)
}
