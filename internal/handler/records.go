package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vaultpass/passforge-go/internal/middleware"
	"github.com/vaultpass/passforge-go/internal/model"
	"github.com/vaultpass/passforge-go/internal/repository"
)

// RecordHandler serves persisted password records.
type RecordHandler struct {
	store repository.Store
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(store repository.Store) *RecordHandler {
	return &RecordHandler{store: store}
}

// HandleList handles GET /api/v1/passwords requests.
func (h *RecordHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.List(r.Context())
	if err != nil {
		slog.Error("listing password records failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	sub, _ := middleware.SubjectFromContext(r.Context())
	slog.Info("password records listed", "subject", sub, "count", len(records))

	if records == nil {
		records = []model.PasswordRecord{}
	}
	writeJSON(w, http.StatusOK, model.RecordListResponse{Records: records})
}

// HandleGet handles GET /api/v1/passwords/{id} requests.
func (h *RecordHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid record id"))
		return
	}

	record, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		slog.Error("reading password record failed", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, record)
}
