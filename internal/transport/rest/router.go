package rest

import (
	"net/http"

	"github.com/heartmarshall/tinywin-backend/internal/transport/middleware"
)

// RegisterTinyWin mounts the tiny win API on mux. writes wraps the
// mutating routes and may be nil.
func RegisterTinyWin(mux *http.ServeMux, h *TinyWinHandler, writes middleware.Middleware) {
	guard := func(fn http.HandlerFunc) http.Handler {
		if writes == nil {
			return fn
		}
		return writes(fn)
	}

	mux.HandleFunc("GET /api/tiny-win", h.List)
	mux.Handle("POST /api/tiny-win", guard(h.Create))
	mux.HandleFunc("GET /api/tiny-win/{id}", h.Get)
	mux.Handle("PUT /api/tiny-win/{id}", guard(h.Update))
	mux.Handle("DELETE /api/tiny-win/{id}", guard(h.Delete))
}

// RegisterHealth mounts the liveness, readiness and health probes on mux.
func RegisterHealth(mux *http.ServeMux, h *HealthHandler) {
	mux.HandleFunc("GET /live", h.Live)
	mux.HandleFunc("GET /ready", h.Ready)
	mux.HandleFunc("GET /health", h.Health)
}
