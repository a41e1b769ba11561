package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArthurRLA/dashboard-px/internal/config"
)

// ConfigResponse configuração exposta pela API
type ConfigResponse struct {
	Locale          string  `json:"locale"`
	DateFormat      string  `json:"dateFormat"`
	Tolerance       float64 `json:"tolerance"`
	CacheTTLSeconds int     `json:"cacheTtlSeconds"`
}

// UpdateConfigRequest atualização parcial da configuração
type UpdateConfigRequest struct {
	Updates map[string]interface{} `json:"updates"`
}

// configSnapshot cópia da configuração sob o lock do handler
func (h *Handler) configSnapshot() ConfigResponse {
	h.mu.Lock()
	defer h.mu.Unlock()
	return ConfigResponse{
		Locale:          h.cfg.Pipeline.Locale,
		DateFormat:      h.cfg.Pipeline.DateFormat,
		Tolerance:       h.cfg.Pipeline.Tolerance,
		CacheTTLSeconds: h.cfg.Cache.TTLSeconds,
	}
}

// GetConfig configuração atual do pipeline
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.configSnapshot())
}

// UpdateConfig atualização parcial da configuração, persistida em
// config.toml e aplicada ao serviço: a próxima carga já usa as novas
// opções de pipeline e TTL.
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo inválido"})
		return
	}

	h.mu.Lock()
	if v, ok := req.Updates["locale"].(string); ok {
		h.cfg.Pipeline.Locale = v
	}
	if v, ok := req.Updates["dateFormat"].(string); ok {
		h.cfg.Pipeline.DateFormat = v
	}
	if v, ok := req.Updates["tolerance"].(float64); ok {
		h.cfg.Pipeline.Tolerance = v
	}
	if v, ok := req.Updates["cacheTtlSeconds"].(float64); ok {
		h.cfg.Cache.TTLSeconds = int(v)
	}
	snapshot := *h.cfg
	h.mu.Unlock()

	pipeline := snapshot.Pipeline
	ttl := time.Duration(snapshot.Cache.TTLSeconds) * time.Second

	if err := config.SaveConfig(&snapshot); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.dashboard.UpdateOptions(pipeline, ttl)
	h.GetConfig(c)
}
