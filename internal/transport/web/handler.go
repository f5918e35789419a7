// Package web serves the server-rendered list page.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/heartmarshall/tinywin-backend/internal/service/tinywin"
	"github.com/heartmarshall/tinywin-backend/pkg/ctxutil"
)

type tinyWinLister interface {
	List(ctx context.Context) ([]tinywin.Record, error)
}

// Handler serves HTML pages.
type Handler struct {
	wins tinyWinLister
	log  *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(wins tinyWinLister, logger *slog.Logger) *Handler {
	return &Handler{wins: wins, log: logger.With("handler", "web")}
}

// Register mounts the pages on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.ListPage)
}

// ListPage handles GET /.
func (h *Handler) ListPage(w http.ResponseWriter, r *http.Request) {
	wins, err := h.wins.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	templ.Handler(ListPage(ListPageVModel{Wins: wins})).ServeHTTP(w, r)
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	attrs := []any{slog.Any("error", err)}
	if cause := errors.Unwrap(err); cause != nil {
		attrs = append(attrs, slog.Any("cause", cause))
	}
	ctxutil.Logger(r.Context(), h.log).Error("failed to load tiny wins", attrs...)

	page := ErrorPage(ErrorPageVModel{StatusCode: http.StatusInternalServerError})
	templ.Handler(page, templ.WithStatus(http.StatusInternalServerError)).ServeHTTP(w, r)
}
