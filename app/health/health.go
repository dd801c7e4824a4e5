package health

import (
	"encoding/json"
	"net/http"
	"time"
)

// Response is the body of both health endpoints.
type Response struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version,omitempty"`
	Uptime    string    `json:"uptime,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// ReadyFunc reports whether the service can do work. A non-empty detail explains why not.
type ReadyFunc func() (ready bool, detail string)

// Handler serves liveness and readiness.
type Handler struct {
	startTime time.Time
	version   string
	ready     ReadyFunc
	now       func() time.Time
}

// NewHandler creates a new health check handler. A nil ready func is always ready.
func NewHandler(version string, ready ReadyFunc) *Handler {
	if ready == nil {
		ready = func() (bool, string) { return true, "" }
	}
	return &Handler{
		startTime: time.Now(),
		version:   version,
		ready:     ready,
		now:       time.Now,
	}
}

// Register mounts /healthz and /readyz on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", h.Health)
	mux.HandleFunc("/readyz", h.Ready)
}

// Health reports that the process is alive.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	now := h.now()
	writeJSON(w, http.StatusOK, Response{
		Status:    "healthy",
		Timestamp: now,
		Version:   h.version,
		Uptime:    now.Sub(h.startTime).Round(time.Second).String(),
	})
}

// Ready returns 503 until the gateway session is ready.
func (h *Handler) Ready(w http.ResponseWriter, _ *http.Request) {
	ok, detail := h.ready()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, Response{Status: "not_ready", Timestamp: h.now(), Detail: detail})
		return
	}
	writeJSON(w, http.StatusOK, Response{Status: "ready", Timestamp: h.now()})
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
