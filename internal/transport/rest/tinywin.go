package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/tinywin-backend/internal/domain"
	"github.com/heartmarshall/tinywin-backend/internal/service/tinywin"
	"github.com/heartmarshall/tinywin-backend/pkg/ctxutil"
)

// maxBodyBytes bounds the size of a create or update payload.
const maxBodyBytes = 1 << 20

// tinyWinService defines the minimal interface needed by TinyWinHandler.
type tinyWinService interface {
	List(ctx context.Context) ([]tinywin.Record, error)
	Get(ctx context.Context, id int64) (*tinywin.Record, error)
	Create(ctx context.Context, input tinywin.WinInput) (*tinywin.Record, error)
	Update(ctx context.Context, id int64, input tinywin.WinInput) (*tinywin.Record, error)
	Delete(ctx context.Context, id int64) (*tinywin.Record, error)
}

// TinyWinHandler serves the /api/tiny-win endpoints.
type TinyWinHandler struct {
	svc tinyWinService
	log *slog.Logger
}

// NewTinyWinHandler creates a TinyWinHandler.
func NewTinyWinHandler(svc tinyWinService, logger *slog.Logger) *TinyWinHandler {
	return &TinyWinHandler{svc: svc, log: logger.With("handler", "tinywin")}
}

// winRequest keeps every field raw so that a value of the wrong JSON type
// can be told apart from a missing one.
type winRequest struct {
	Title       json.RawMessage `json:"title"`
	Description json.RawMessage `json:"description"`
	Category    json.RawMessage `json:"category"`
	CompletedAt json.RawMessage `json:"completedAt"`
}

type deleteResponse struct {
	Success bool `json:"success"`
}

// List handles GET /api/tiny-win.
func (h *TinyWinHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// Get handles GET /api/tiny-win/{id}.
func (h *TinyWinHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseID(r.PathValue("id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	record, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// Create handles POST /api/tiny-win.
func (h *TinyWinHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	record, err := h.svc.Create(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// Update handles PUT /api/tiny-win/{id}.
func (h *TinyWinHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseID(r.PathValue("id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	record, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// Delete handles DELETE /api/tiny-win/{id}.
func (h *TinyWinHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseID(r.PathValue("id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if _, err := h.svc.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{Success: true})
}

func (h *TinyWinHandler) decodeInput(w http.ResponseWriter, r *http.Request) (tinywin.WinInput, bool) {
	var req winRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeInvalidBody)
		return tinywin.WinInput{}, false
	}

	return tinywin.WinInput{
		Title:       textOnly(req.Title),
		Description: textOnly(req.Description),
		Category:    textOnly(req.Category),
		CompletedAt: rawText(req.CompletedAt),
	}, true
}

// handleError maps service errors to HTTP responses.
func (h *TinyWinHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if code, ok := domain.ValidationCode(err); ok {
		writeError(w, http.StatusBadRequest, code)
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, domain.CodeNotFound)
	default:
		ctxutil.Logger(r.Context(), h.log).Error("tiny win request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// textOnly returns the value of a JSON string, or nil for anything else.
func textOnly(raw json.RawMessage) *string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return nil
	}
	return &s
}

// rawText returns the value of a JSON string, nil for a missing or null
// value, and the literal JSON text otherwise so that parsing rejects it.
// Numbers and booleans are never read as epoch milliseconds or as "now";
// they fail with invalid-completed-at.
func rawText(raw json.RawMessage) *string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if s := textOnly(raw); s != nil {
		return s
	}
	literal := string(raw)
	return &literal
}
