package report

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	mix "MixLab/internal/calc/mix"
	"MixLab/internal/handlers"
	"MixLab/internal/observability"
)

type Handler struct {
	PriceBook mix.PriceBook
	Now       func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) evaluate(w http.ResponseWriter, r *http.Request) (Mix, bool) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return Mix{}, false
	}
	input.Params = h.PriceBook.Fill(input.Params)
	m, err := Evaluate(input, h.now())
	if err != nil {
		observability.ObserveComputation("report", observability.OutcomeInvalid)
		handlers.WriteError(w, mix.HTTPStatus(err), err.Error())
		return Mix{}, false
	}
	observability.ObserveComputation("report", observability.OutcomeOK)
	return m, true
}

func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	m, ok := h.evaluate(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := WritePDF(&buf, m); err != nil {
		observability.LoggerFromContext(r.Context()).Error("pdf report", zap.Error(err))
		handlers.WriteError(w, http.StatusInternalServerError, "Report generation error")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"mix-report.pdf\"")
	w.Write(buf.Bytes())
}

func (h *Handler) XLSX(w http.ResponseWriter, r *http.Request) {
	m, ok := h.evaluate(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, m); err != nil {
		observability.LoggerFromContext(r.Context()).Error("xlsx report", zap.Error(err))
		handlers.WriteError(w, http.StatusInternalServerError, "Report generation error")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"mix-report.xlsx\"")
	w.Write(buf.Bytes())
}
