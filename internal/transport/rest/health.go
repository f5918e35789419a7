package rest

import (
	"context"
	"net/http"
	"time"
)

const probeTimeout = 3 * time.Second

// storagePinger is satisfied by the pgx pool, the PostgREST client and the
// in-memory store.
type storagePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	storage storagePinger
	backend string
	version string
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler for the named storage backend.
func NewHealthHandler(storage storagePinger, backend, version string) *HealthHandler {
	return &HealthHandler{storage: storage, backend: backend, version: version, now: time.Now}
}

// HealthResponse is the JSON response for /live, /ready and /health.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Backend string `json:"backend,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.now()})
}

// Ready is the readiness probe: 200 when storage answers, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	comp := h.probe(r.Context())
	writeJSON(w, statusCode(comp), HealthResponse{Status: comp.Status, Timestamp: h.now()})
}

// Health reports storage status with latency and the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	comp := h.probe(r.Context())
	writeJSON(w, statusCode(comp), HealthResponse{
		Status:     comp.Status,
		Version:    h.version,
		Components: map[string]CompStatus{"storage": comp},
		Timestamp:  h.now(),
	})
}

func (h *HealthHandler) probe(ctx context.Context) CompStatus {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	start := time.Now()
	if err := h.storage.Ping(ctx); err != nil {
		return CompStatus{Status: "down", Backend: h.backend}
	}
	return CompStatus{Status: "ok", Backend: h.backend, Latency: time.Since(start).String()}
}

func statusCode(c CompStatus) int {
	if c.Status != "ok" {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
