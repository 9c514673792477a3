package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docgen-api/internal/application/document"
	"docgen-api/internal/config"
	"docgen-api/internal/interfaces/http/dto"
)

// HealthHandler serves the banner and the health checks
type HealthHandler struct {
	cfg      *config.Config
	registry *document.Registry
}

func NewHealthHandler(cfg *config.Config, registry *document.Registry) *HealthHandler {
	return &HealthHandler{cfg: cfg, registry: registry}
}

// HealthResponse is the body of /health and /live
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type readinessCheck struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Root returns the service banner
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, dto.Banner{
		Message: "Legal Document Generation API",
		Version: h.cfg.App.Version,
		Docs:    DocsPrefix + "types",
	})
}

// Health
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Version: h.cfg.App.Version})
}

// Live
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready reports 503 without any document type. A missing narrative provider
// only degrades the service: template documents keep working.
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := map[string]*readinessCheck{
		"documents": {Status: "ok"},
		"narrative": {Status: "ok"},
	}
	resp := readinessResponse{Status: "ok", Checks: checks}

	if h.registry == nil || len(h.registry.Slugs()) == 0 {
		checks["documents"] = &readinessCheck{Status: "missing", Error: "no document types registered"}
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	if msg := h.narrativeProblem(); msg != "" {
		checks["narrative"] = &readinessCheck{Status: "degraded", Error: msg}
		resp.Status = "degraded"
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HealthHandler) narrativeProblem() string {
	name := h.cfg.NarrativeProvider()
	if name == "" {
		return "no narrative provider configured"
	}
	p, ok := h.cfg.LLM.Providers[name]
	if !ok {
		return "provider " + name + " not found in LLM config"
	}
	if strings.TrimSpace(p.APIKey) == "" {
		return "provider " + name + " has no api key"
	}
	return ""
}
