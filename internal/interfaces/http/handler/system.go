package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// DependencyChecker reports whether a backing service is reachable
type DependencyChecker func() error

// SystemHandler handles health and system info endpoints
type SystemHandler struct {
	BaseHandler
	startTime time.Time
	version   string
	checks    map[string]DependencyChecker
}

// NewSystemHandler creates a new SystemHandler. checks maps a
// dependency name (e.g. "database") to its readiness probe.
func NewSystemHandler(version string, checks map[string]DependencyChecker) *SystemHandler {
	return &SystemHandler{
		startTime: time.Now(),
		version:   version,
		checks:    checks,
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Info handles GET /system/info
func (h *SystemHandler) Info(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "Whapy Budget Ledger API",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	h.Success(c, info)
}

// Health handles GET /health, a liveness probe
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Ready handles GET /ready, a readiness probe that pings each
// registered dependency
func (h *SystemHandler) Ready(c *gin.Context) {
	status := http.StatusOK
	results := make(map[string]string, len(h.checks))

	for name, check := range h.checks {
		if err := check(); err != nil {
			results[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	if status != http.StatusOK {
		c.JSON(status, dto.NewErrorResponse(dto.ErrCodeInternal, "One or more dependencies are unavailable"))
		return
	}

	h.Success(c, results)
}
