package api

import (
	"net/http"

	"github.com/accordo-app/accordo/internal/repository"
)

type InstrumentHandler struct {
	instruments *repository.InstrumentRepository
}

func NewInstrumentHandler(instruments *repository.InstrumentRepository) *InstrumentHandler {
	return &InstrumentHandler{instruments: instruments}
}

func (h *InstrumentHandler) List(w http.ResponseWriter, r *http.Request) {
	instruments, err := h.instruments.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, instruments)
}
