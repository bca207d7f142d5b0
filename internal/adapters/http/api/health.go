package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/moviefront/pkg/metrics"
)

// UpstreamReporter reports the state of the recommendation engine link.
type UpstreamReporter interface {
	UpstreamState() string
}

// HealthHandler handles health and metrics requests.
type HealthHandler struct {
	upstream UpstreamReporter
	version  string
	metrics  http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(upstream UpstreamReporter, version string) *HealthHandler {
	return &HealthHandler{
		upstream: upstream,
		version:  version,
		metrics:  promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

type healthResponse struct {
	Status   string `json:"status"`
	Upstream string `json:"upstream"`
	Version  string `json:"version"`
}

// HandleMetrics handles GET /healthz by serving Prometheus metrics.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}

// HandleHealth handles GET /api/health. The service stays healthy while the
// engine is down because the offline mock keeps answering.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "healthy",
		Upstream: h.upstream.UpstreamState(),
		Version:  h.version,
	})
}
