package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vaultpass/passforge-go/internal/config"
	"github.com/vaultpass/passforge-go/internal/model"
	"github.com/vaultpass/passforge-go/internal/service"
)

// GeneratorHandler handles HTTP requests for batch password generation.
type GeneratorHandler struct {
	service  *service.GeneratorService
	defaults config.Defaults
}

// NewGeneratorHandler creates a new GeneratorHandler. defaults fill fields
// the request body leaves out.
func NewGeneratorHandler(svc *service.GeneratorService, defaults config.Defaults) *GeneratorHandler {
	return &GeneratorHandler{service: svc, defaults: defaults}
}

// HandleGenerate handles POST /api/v1/generate-passwords requests.
func (h *GeneratorHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if r.Body != nil {
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
		defer r.Body.Close()
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
				return
			}
			writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
			return
		}
	}

	result, err := h.service.Generate(r.Context(), service.ResolveRequest(req, h.defaults))
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusBadRequest, validationResponse(ve))
			return
		}
		slog.Error("password generation failed",
			"request_id", chimw.GetReqID(r.Context()),
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse("failed to generate passwords"))
		return
	}

	writeJSON(w, http.StatusOK, model.GenerateResponse{
		BatchID:            result.BatchID,
		GeneratedPasswords: result.Passwords,
		Notices:            result.Notices,
	})
}

type validationErrorResponse struct {
	Error  string               `json:"error"`
	Errors []service.FieldError `json:"errors"`
}

func validationResponse(ve *service.ValidationError) validationErrorResponse {
	return validationErrorResponse{Error: "invalid input data", Errors: ve.Fields}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}
